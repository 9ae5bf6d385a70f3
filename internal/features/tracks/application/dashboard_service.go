package application

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	catalogueapp "prepdash/internal/features/catalogue/application"
	"prepdash/internal/features/tracks/domain"
)

// DashboardService derives the dashboard from a learner's stored progress.
type DashboardService interface {
	BuildDashboard(progress domain.UserProgress) domain.Dashboard
	SelectTrack(req domain.SelectTrackRequest) (domain.Navigation, error)
}

// dashboardService is the implementation of DashboardService.
type dashboardService struct {
	catalogue catalogueapp.CatalogueService
	logger    *zap.Logger
}

// NewDashboardService creates a new instance of dashboardService.
func NewDashboardService(catalogue catalogueapp.CatalogueService, logger *zap.Logger) DashboardService {
	return &dashboardService{catalogue: catalogue, logger: logger}
}

func (s *dashboardService) BuildDashboard(progress domain.UserProgress) domain.Dashboard {
	snapshot := s.catalogue.Snapshot()
	matched := Match(progress, snapshot.AllTracks())

	views := make([]domain.TrackView, 0, len(matched))
	for _, t := range matched {
		views = append(views, domain.TrackView{
			ID:             t.ID,
			Domain:         t.Domain,
			DomainInfo:     snapshot.DomainInfo(t.Domain),
			Level:          t.Level,
			LanguageOrTech: t.LanguageOrTech,
			TotalTopics:    len(t.Topics),
			Completed:      completedIn(t, progress.CompletedTopicIDs),
			Completion:     TrackCompletion(t, progress.CompletedTopicIDs),
		})
	}

	s.logger.Debug("dashboard built",
		zap.Int("active_domains", len(progress.ActiveDomains)),
		zap.Int("matched_tracks", len(views)))

	return domain.Dashboard{
		Tracks:           views,
		GlobalCompletion: GlobalCompletion(matched, progress.CompletedTopicIDs),
	}
}

// SelectTrack resolves the route the UI navigates to for a track.
func (s *dashboardService) SelectTrack(req domain.SelectTrackRequest) (domain.Navigation, error) {
	if strings.TrimSpace(string(req.Domain)) == "" || strings.TrimSpace(req.LanguageOrTech) == "" {
		return domain.Navigation{}, fmt.Errorf("domain and language_or_tech are required")
	}
	level := req.Level
	if level == "" {
		level = domain.DefaultLevel
	}
	route := fmt.Sprintf("/learn/%s/%s/%s",
		url.PathEscape(string(req.Domain)),
		url.PathEscape(req.LanguageOrTech),
		url.PathEscape(level))
	s.logger.Info("track selected", zap.String("route", route))
	return domain.Navigation{Route: route}, nil
}
