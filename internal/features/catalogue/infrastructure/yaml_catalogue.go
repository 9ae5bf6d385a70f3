package infrastructure

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"prepdash/internal/features/catalogue/domain"
)

//go:embed default_catalogue.yaml
var defaultCatalogue []byte

// catalogueFile is the on-disk layout of a curriculum catalogue.
type catalogueFile struct {
	Domains []domainEntry `yaml:"domains"`
}

type domainEntry struct {
	Domain domain.Domain            `yaml:"domain"`
	Icon   string                   `yaml:"icon"`
	Title  string                   `yaml:"title"`
	Tracks []domain.CurriculumTrack `yaml:"tracks"`
}

// ParseYAML decodes and validates a catalogue document.
func ParseYAML(data []byte) (*domain.Catalogue, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalogue: %w", err)
	}
	if len(file.Domains) == 0 {
		return nil, fmt.Errorf("catalogue has no domains")
	}

	tracks := make(map[domain.Domain][]domain.CurriculumTrack, len(file.Domains))
	info := make(map[domain.Domain]domain.DomainInfo, len(file.Domains))
	order := make([]domain.Domain, 0, len(file.Domains))
	for _, entry := range file.Domains {
		if entry.Domain == "" {
			return nil, fmt.Errorf("catalogue entry without domain")
		}
		if _, dup := tracks[entry.Domain]; dup {
			return nil, fmt.Errorf("domain %q listed twice", entry.Domain)
		}
		tracks[entry.Domain] = entry.Tracks
		info[entry.Domain] = domain.DomainInfo{Icon: entry.Icon, Title: entry.Title}
		order = append(order, entry.Domain)
	}
	return domain.NewCatalogue(tracks, info, order)
}

// LoadYAML reads a catalogue from path.
func LoadYAML(path string) (*domain.Catalogue, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue file %s: %w", absPath, err)
	}
	c, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("catalogue %s: %w", absPath, err)
	}
	return c, nil
}

// Default returns the built-in catalogue.
func Default() *domain.Catalogue {
	c, err := ParseYAML(defaultCatalogue)
	if err != nil {
		panic(fmt.Sprintf("built-in catalogue is invalid: %v", err))
	}
	return c
}
