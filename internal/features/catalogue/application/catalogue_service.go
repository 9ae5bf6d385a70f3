package application

import (
	"prepdash/internal/features/catalogue/domain"
)

// Source yields the catalogue snapshot to serve.
type Source interface {
	Current() *domain.Catalogue
}

// CatalogueService defines the lookup operations on the curriculum catalogue.
type CatalogueService interface {
	GetTracksByDomain() map[domain.Domain][]domain.CurriculumTrack
	GetDomainInfo(d domain.Domain) domain.DomainInfo
	Snapshot() *domain.Catalogue
}

// catalogueService is the implementation of CatalogueService.
type catalogueService struct {
	source Source
}

// NewCatalogueService creates a new instance of catalogueService.
func NewCatalogueService(source Source) CatalogueService {
	return &catalogueService{source: source}
}

func (s *catalogueService) GetTracksByDomain() map[domain.Domain][]domain.CurriculumTrack {
	return s.source.Current().TracksByDomain()
}

func (s *catalogueService) GetDomainInfo(d domain.Domain) domain.DomainInfo {
	return s.source.Current().DomainInfo(d)
}

// Snapshot returns the current catalogue. Callers should use one snapshot for
// a whole computation so a concurrent reload cannot mix two versions.
func (s *catalogueService) Snapshot() *domain.Catalogue {
	return s.source.Current()
}
