package ingest

import (
	"embed"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed config/sources.yaml
var sourcesYAML embed.FS

// Registry holds the configuration for all notice sources.
type Registry struct {
	Sources []SourceConfig `yaml:"sources"`
}

// FetchConfig defines HTTP fetching configuration for a source.
type FetchConfig struct {
	TimeoutSeconds int     `yaml:"timeout_seconds,omitempty"` // Default: 30
	MaxRetries     int     `yaml:"max_retries,omitempty"`     // Default: 3
	RateLimitRPS   float64 `yaml:"rate_limit_rps,omitempty"`  // Requests per second, default: 1.0
}

// SourceConfig defines a single notice source for ingestion.
type SourceConfig struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Strategy string   `yaml:"strategy"` // "api_sam_gov", "html_generic"
	BaseURL  string   `yaml:"base_url,omitempty"`
	APIKey   string   `yaml:"api_key,omitempty"`
	Seeds    []string `yaml:"seed_urls,omitempty"`
	Keyword  string   `yaml:"keyword,omitempty"`
	MaxPages int      `yaml:"max_pages,omitempty"`

	Fetch     FetchConfig    `yaml:"fetch,omitempty"`
	Selectors SelectorConfig `yaml:"selectors,omitempty"`
}

// SelectorConfig drives the generic HTML listing strategy.
type SelectorConfig struct {
	Container string `yaml:"container,omitempty"` // CSS selector for the list item wrapper
	Link      string `yaml:"link,omitempty"`
	Title     string `yaml:"title,omitempty"`
	Content   string `yaml:"content,omitempty"`
	NextPage  string `yaml:"next_page,omitempty"`
}

// LoadRegistry reads the embedded sources.yaml. A filesystem path can be given
// as an override for local development.
func LoadRegistry(path string) (*Registry, error) {
	data, err := sourcesYAML.ReadFile("config/sources.yaml")
	if err != nil {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	// Expand environment variables within the YAML content (e.g. ${SAM_API_KEY})
	expanded := os.ExpandEnv(string(data))

	var reg Registry
	if err := yaml.Unmarshal([]byte(expanded), &reg); err != nil {
		return nil, err
	}

	return &reg, nil
}
