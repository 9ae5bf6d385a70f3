package application

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogueapp "prepdash/internal/features/catalogue/application"
	catalogue "prepdash/internal/features/catalogue/domain"
	catalogueinfra "prepdash/internal/features/catalogue/infrastructure"
	"prepdash/internal/features/tracks/domain"
)

func track(id string, d catalogue.Domain, level, tech string, topics ...string) catalogue.CurriculumTrack {
	t := catalogue.CurriculumTrack{ID: id, Domain: d, Level: level, LanguageOrTech: tech}
	for _, tp := range topics {
		t.Topics = append(t.Topics, catalogue.Topic{ID: tp})
	}
	return t
}

func ids(tracks []catalogue.CurriculumTrack) []string {
	var out []string
	for _, t := range tracks {
		out = append(out, t.ID)
	}
	return out
}

func progressFor(configs map[catalogue.Domain]domain.DomainConfig, active ...string) domain.UserProgress {
	return domain.UserProgress{
		ActiveDomains: domain.NewStringSet(active...),
		Preferences:   &domain.Preferences{Configs: configs},
	}
}

var testTracks = []catalogue.CurriculumTrack{
	track("web-js-b", catalogue.DomainWeb, "Beginner", "JavaScript", "w1", "w2"),
	track("web-py-b", catalogue.DomainWeb, "Beginner", "Python", "w3"),
	track("web-js-a", catalogue.DomainWeb, "Advanced", "JavaScript", "w4"),
	track("ml-tf-b", catalogue.DomainML, "Beginner", "TensorFlow", "m1", "m2"),
	track("ml-pt-b", catalogue.DomainML, "Beginner", "PyTorch", "m3"),
	track("dsa-cpp-b", catalogue.DomainDSA, "beginner", "C++", "d1"),
}

func TestMatchWithoutPreferences(t *testing.T) {
	p := domain.UserProgress{ActiveDomains: domain.NewStringSet("Web")}
	assert.Empty(t, Match(p, testTracks))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		progress domain.UserProgress
		want     []string
	}{
		{
			name: "language matches case-insensitively",
			progress: progressFor(map[catalogue.Domain]domain.DomainConfig{
				catalogue.DomainWeb: {Level: "beginner", Tech: domain.LanguageChoice{Language: "javascript"}},
			}, "Web"),
			want: []string{"web-js-b"},
		},
		{
			name: "empty level defaults to Beginner",
			progress: progressFor(map[catalogue.Domain]domain.DomainConfig{
				catalogue.DomainDSA: {Tech: domain.LanguageChoice{Language: "c++"}},
			}, "DSA"),
			want: []string{"dsa-cpp-b"},
		},
		{
			name: "inactive domain is ignored",
			progress: progressFor(map[catalogue.Domain]domain.DomainConfig{
				catalogue.DomainWeb: {Level: "Beginner", Tech: domain.LanguageChoice{Language: "JavaScript"}},
			}, "ML"),
			want: nil,
		},
		{
			name:     "active domain without config yields nothing",
			progress: progressFor(map[catalogue.Domain]domain.DomainConfig{}, "Web"),
			want:     nil,
		},
		{
			name: "empty language matches nothing",
			progress: progressFor(map[catalogue.Domain]domain.DomainConfig{
				catalogue.DomainWeb: {Level: "Beginner", Tech: domain.LanguageChoice{}},
			}, "Web"),
			want: nil,
		},
		{
			name: "ML uses library membership in catalogue order",
			progress: progressFor(map[catalogue.Domain]domain.DomainConfig{
				catalogue.DomainML: {Level: "Beginner", Tech: domain.LibraryChoice{Libraries: []string{"PyTorch", "TensorFlow"}}},
			}, "ML"),
			want: []string{"ml-tf-b", "ml-pt-b"},
		},
		{
			name: "ML library membership is case-sensitive",
			progress: progressFor(map[catalogue.Domain]domain.DomainConfig{
				catalogue.DomainML: {Level: "Beginner", Tech: domain.LibraryChoice{Libraries: []string{"pytorch"}}},
			}, "ML"),
			want: nil,
		},
		{
			name: "ML ignores language field",
			progress: progressFor(map[catalogue.Domain]domain.DomainConfig{
				catalogue.DomainML: domain.NewDomainConfig(catalogue.DomainML, "Beginner", "TensorFlow", nil),
			}, "ML"),
			want: nil,
		},
		{
			name: "unknown active domain contributes nothing",
			progress: progressFor(map[catalogue.Domain]domain.DomainConfig{
				catalogue.DomainWeb: {Level: "Advanced", Tech: domain.LanguageChoice{Language: "JavaScript"}},
				"Quantum":           {Level: "Beginner", Tech: domain.LanguageChoice{Language: "Qiskit"}},
			}, "Web", "Quantum"),
			want: []string{"web-js-a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Match(tt.progress, testTracks))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Match() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTrackCompletion(t *testing.T) {
	empty := track("e", catalogue.DomainWeb, "Beginner", "Go")
	assert.Equal(t, 0, TrackCompletion(empty, domain.NewStringSet("x")))

	three := track("t", catalogue.DomainWeb, "Beginner", "Go", "a", "b", "c")
	assert.Equal(t, 100, TrackCompletion(three, domain.NewStringSet("a", "b", "c")))
	assert.Equal(t, 67, TrackCompletion(three, domain.NewStringSet("a", "b")))
	assert.Equal(t, 33, TrackCompletion(three, domain.NewStringSet("a", "zzz")))
	assert.Equal(t, 0, TrackCompletion(three, nil))
}

func TestGlobalCompletion(t *testing.T) {
	assert.Equal(t, 0, GlobalCompletion(nil, domain.NewStringSet("w1")))

	matched := []catalogue.CurriculumTrack{testTracks[0], testTracks[3]}
	// 4 topics in total; w1 and m2 completed, d1 belongs to an unmatched track.
	assert.Equal(t, 50, GlobalCompletion(matched, domain.NewStringSet("w1", "m2", "d1")))

	odd := []catalogue.CurriculumTrack{testTracks[0], testTracks[1]}
	assert.Equal(t, 33, GlobalCompletion(odd, domain.NewStringSet("w3")))
}

func TestDashboardScenario(t *testing.T) {
	cat, err := catalogue.NewCatalogue(map[catalogue.Domain][]catalogue.CurriculumTrack{
		catalogue.DomainWeb: {track("web-js", catalogue.DomainWeb, "Beginner", "JavaScript", "t1", "t2")},
	}, map[catalogue.Domain]catalogue.DomainInfo{catalogue.DomainWeb: {Icon: "W", Title: "Web"}}, nil)
	require.NoError(t, err)

	svc := NewDashboardService(
		catalogueapp.NewCatalogueService(catalogueinfra.NewStaticSource(cat)),
		zap.NewNop(),
	)
	progress := progressFor(map[catalogue.Domain]domain.DomainConfig{
		catalogue.DomainWeb: {Level: "Beginner", Tech: domain.LanguageChoice{Language: "JavaScript"}},
	}, "Web")
	progress.CompletedTopicIDs = domain.NewStringSet("t1")

	got := svc.BuildDashboard(progress)
	want := domain.Dashboard{
		Tracks: []domain.TrackView{{
			ID:             "web-js",
			Domain:         catalogue.DomainWeb,
			DomainInfo:     catalogue.DomainInfo{Icon: "W", Title: "Web"},
			Level:          "Beginner",
			LanguageOrTech: "JavaScript",
			TotalTopics:    2,
			Completed:      1,
			Completion:     50,
		}},
		GlobalCompletion: 50,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildDashboard() mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectTrack(t *testing.T) {
	svc := NewDashboardService(
		catalogueapp.NewCatalogueService(catalogueinfra.NewStaticSource(catalogueinfra.Default())),
		zap.NewNop(),
	)

	nav, err := svc.SelectTrack(domain.SelectTrackRequest{Domain: catalogue.DomainDSA, LanguageOrTech: "C++"})
	require.NoError(t, err)
	assert.Equal(t, "/learn/DSA/C++/Beginner", nav.Route)

	nav, err = svc.SelectTrack(domain.SelectTrackRequest{Domain: catalogue.DomainWeb, LanguageOrTech: "Node JS", Level: "Advanced"})
	require.NoError(t, err)
	assert.Equal(t, "/learn/Web/Node%20JS/Advanced", nav.Route)

	_, err = svc.SelectTrack(domain.SelectTrackRequest{Domain: catalogue.DomainWeb})
	assert.Error(t, err)
}
