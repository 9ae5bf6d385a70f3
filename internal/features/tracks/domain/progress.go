package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	catalogue "prepdash/internal/features/catalogue/domain"
)

// DefaultLevel applies when a domain config carries no level.
const DefaultLevel = "Beginner"

// TechChoice is the technology half of a domain config. The concrete variant
// depends on the domain: LibraryChoice for ML, LanguageChoice otherwise.
type TechChoice interface {
	Accepts(languageOrTech string) bool
	isTechChoice()
}

// LanguageChoice accepts a single language, compared case-insensitively.
// An empty language accepts nothing.
type LanguageChoice struct {
	Language string
}

func (c LanguageChoice) Accepts(languageOrTech string) bool {
	return c.Language != "" && strings.EqualFold(languageOrTech, c.Language)
}

func (LanguageChoice) isTechChoice() {}

// LibraryChoice accepts any of the selected libraries, case-sensitively.
type LibraryChoice struct {
	Libraries []string
}

func (c LibraryChoice) Accepts(languageOrTech string) bool {
	for _, lib := range c.Libraries {
		if lib == languageOrTech {
			return true
		}
	}
	return false
}

func (LibraryChoice) isTechChoice() {}

// IsMultiSelect reports whether d chooses several libraries instead of one language.
func IsMultiSelect(d catalogue.Domain) bool {
	return d == catalogue.DomainML
}

// DomainConfig is the learner's preference for one domain.
type DomainConfig struct {
	Level string
	Tech  TechChoice
}

// EffectiveLevel is the configured level or DefaultLevel.
func (c DomainConfig) EffectiveLevel() string {
	if c.Level == "" {
		return DefaultLevel
	}
	return c.Level
}

// domainConfigWire is the JSON shape shared by every domain.
type domainConfigWire struct {
	Level     string   `json:"level,omitempty"`
	Language  string   `json:"language,omitempty"`
	Libraries []string `json:"libraries,omitempty"`
}

// Preferences maps each domain to its config.
type Preferences struct {
	Configs map[catalogue.Domain]DomainConfig
}

// NewDomainConfig builds the variant appropriate for d from wire fields.
func NewDomainConfig(d catalogue.Domain, level, language string, libraries []string) DomainConfig {
	if IsMultiSelect(d) {
		return DomainConfig{Level: level, Tech: LibraryChoice{Libraries: append([]string(nil), libraries...)}}
	}
	return DomainConfig{Level: level, Tech: LanguageChoice{Language: language}}
}

func (p *Preferences) UnmarshalJSON(data []byte) error {
	var wire struct {
		Configs map[catalogue.Domain]domainConfigWire `json:"configs"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	p.Configs = make(map[catalogue.Domain]DomainConfig, len(wire.Configs))
	for d, w := range wire.Configs {
		p.Configs[d] = NewDomainConfig(d, w.Level, w.Language, w.Libraries)
	}
	return nil
}

func (p Preferences) MarshalJSON() ([]byte, error) {
	configs := make(map[catalogue.Domain]domainConfigWire, len(p.Configs))
	for d, c := range p.Configs {
		w := domainConfigWire{Level: c.Level}
		switch tech := c.Tech.(type) {
		case LanguageChoice:
			w.Language = tech.Language
		case LibraryChoice:
			w.Libraries = tech.Libraries
		}
		configs[d] = w
	}
	return json.Marshal(struct {
		Configs map[catalogue.Domain]domainConfigWire `json:"configs"`
	}{configs})
}

// StringSet is a set of identifiers carried on the wire as a JSON array.
type StringSet map[string]struct{}

// NewStringSet builds a set from ids.
func NewStringSet(ids ...string) StringSet {
	s := make(StringSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s StringSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewStringSet(ids...)
	return nil
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return json.Marshal(ids)
}

// UserProgress is the learner state supplied by the caller. It is read-only
// to this service. A nil Preferences means the learner has not set any.
type UserProgress struct {
	ActiveDomains     StringSet    `json:"active_domains"`
	Preferences       *Preferences `json:"preferences,omitempty"`
	CompletedTopicIDs StringSet    `json:"completed_topic_ids"`
}

// IsActive reports whether d is among the active domains.
func (p UserProgress) IsActive(d catalogue.Domain) bool {
	return p.ActiveDomains.Has(string(d))
}
