package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogueOrder(t *testing.T) {
	tracks := map[Domain][]CurriculumTrack{
		DomainDSA: {{ID: "dsa-1", Topics: []Topic{{ID: "d1"}}}},
		DomainWeb: {{ID: "web-1"}, {ID: "web-2"}},
		"Extra":   {{ID: "extra-1"}},
	}
	c, err := NewCatalogue(tracks, nil, []Domain{"Extra"})
	require.NoError(t, err)

	var ids []string
	for _, tr := range c.AllTracks() {
		ids = append(ids, tr.ID)
	}
	assert.Equal(t, []string{"web-1", "web-2", "dsa-1", "extra-1"}, ids)
	assert.Equal(t, DomainWeb, c.AllTracks()[0].Domain, "domain is filled from the catalogue key")
	assert.Equal(t, DomainInfo{Title: "Extra"}, c.DomainInfo("Extra"))
}

func TestNewCatalogueValidation(t *testing.T) {
	_, err := NewCatalogue(map[Domain][]CurriculumTrack{
		DomainWeb: {{ID: "a"}, {ID: "a"}},
	}, nil, nil)
	assert.ErrorIs(t, err, ErrDuplicateTrack)

	_, err = NewCatalogue(map[Domain][]CurriculumTrack{
		DomainWeb: {{ID: "a", Domain: DomainML}},
	}, nil, nil)
	assert.ErrorIs(t, err, ErrDomainMismatch)

	_, err = NewCatalogue(map[Domain][]CurriculumTrack{"Unlisted": {{ID: "a"}}}, nil, nil)
	assert.Error(t, err)
}

func TestTracksByDomainIsACopy(t *testing.T) {
	c, err := NewCatalogue(map[Domain][]CurriculumTrack{DomainWeb: {{ID: "a"}}}, nil, nil)
	require.NoError(t, err)

	m := c.TracksByDomain()
	m[DomainWeb][0].ID = "mutated"
	assert.Equal(t, "a", c.AllTracks()[0].ID)
}
