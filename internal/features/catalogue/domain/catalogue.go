package domain

import (
	"errors"
	"fmt"
)

// Domain is a specialization area a learner can activate.
type Domain string

const (
	DomainWeb    Domain = "Web"
	DomainML     Domain = "ML"
	DomainDSA    Domain = "DSA"
	DomainMobile Domain = "Mobile"
	DomainCloud  Domain = "Cloud"
)

// KnownDomains is the declared iteration order of the catalogue.
var KnownDomains = []Domain{DomainWeb, DomainML, DomainDSA, DomainMobile, DomainCloud}

// Topic is a single unit of a track.
type Topic struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// CurriculumTrack is a domain/level/technology-specific learning path.
type CurriculumTrack struct {
	ID             string  `json:"id" yaml:"id"`
	Domain         Domain  `json:"domain" yaml:"domain"`
	Level          string  `json:"level" yaml:"level"`
	LanguageOrTech string  `json:"language_or_tech" yaml:"language_or_tech"`
	Topics         []Topic `json:"topics" yaml:"topics"`
}

// DomainInfo is presentation metadata for a domain.
type DomainInfo struct {
	Icon  string `json:"icon" yaml:"icon"`
	Title string `json:"title" yaml:"title"`
}

// Catalogue is an immutable snapshot of the curriculum.
type Catalogue struct {
	order  []Domain
	tracks map[Domain][]CurriculumTrack
	info   map[Domain]DomainInfo
}

var (
	ErrDuplicateTrack = errors.New("duplicate track id")
	ErrDuplicateTopic = errors.New("duplicate topic id")
	ErrDomainMismatch = errors.New("track domain does not match its catalogue key")
)

// NewCatalogue validates and snapshots the given tracks. Domains listed in
// KnownDomains come first in declared order, any others follow in the order
// given by extraOrder.
func NewCatalogue(tracks map[Domain][]CurriculumTrack, info map[Domain]DomainInfo, extraOrder []Domain) (*Catalogue, error) {
	c := &Catalogue{
		tracks: make(map[Domain][]CurriculumTrack, len(tracks)),
		info:   make(map[Domain]DomainInfo, len(info)),
	}

	seen := make(map[Domain]bool)
	for _, d := range append(append([]Domain{}, KnownDomains...), extraOrder...) {
		if _, ok := tracks[d]; ok && !seen[d] {
			c.order = append(c.order, d)
			seen[d] = true
		}
	}
	for d := range tracks {
		if !seen[d] {
			return nil, fmt.Errorf("domain %q has no declared position", d)
		}
	}

	trackIDs := make(map[string]bool)
	topicIDs := make(map[string]bool)
	for _, d := range c.order {
		list := make([]CurriculumTrack, 0, len(tracks[d]))
		for _, t := range tracks[d] {
			if t.Domain == "" {
				t.Domain = d
			}
			if t.Domain != d {
				return nil, fmt.Errorf("%w: track %s has %q under %q", ErrDomainMismatch, t.ID, t.Domain, d)
			}
			if trackIDs[t.ID] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateTrack, t.ID)
			}
			trackIDs[t.ID] = true
			for _, tp := range t.Topics {
				if topicIDs[tp.ID] {
					return nil, fmt.Errorf("%w: %s (track %s)", ErrDuplicateTopic, tp.ID, t.ID)
				}
				topicIDs[tp.ID] = true
			}
			t.Topics = append([]Topic(nil), t.Topics...)
			list = append(list, t)
		}
		c.tracks[d] = list
	}
	for d, i := range info {
		c.info[d] = i
	}
	return c, nil
}

// TracksByDomain returns a copy of the domain -> tracks mapping.
func (c *Catalogue) TracksByDomain() map[Domain][]CurriculumTrack {
	out := make(map[Domain][]CurriculumTrack, len(c.tracks))
	for d, list := range c.tracks {
		out[d] = append([]CurriculumTrack(nil), list...)
	}
	return out
}

// AllTracks returns every track in catalogue order: domains in declared
// order, then tracks in the order they were supplied.
func (c *Catalogue) AllTracks() []CurriculumTrack {
	var out []CurriculumTrack
	for _, d := range c.order {
		out = append(out, c.tracks[d]...)
	}
	return out
}

// DomainInfo falls back to the bare domain name when no metadata exists.
func (c *Catalogue) DomainInfo(d Domain) DomainInfo {
	if i, ok := c.info[d]; ok {
		return i
	}
	return DomainInfo{Title: string(d)}
}

// Domains returns the catalogue's domains in iteration order.
func (c *Catalogue) Domains() []Domain {
	return append([]Domain(nil), c.order...)
}
