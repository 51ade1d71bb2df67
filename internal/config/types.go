package config

import "time"

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
	// ProviderDemo forces the demo fallback provider regardless of credentials.
	ProviderDemo ProviderType = "demo"
)

// MemoryBackend selects where conversation history lives.
type MemoryBackend string

const (
	MemoryInProcess MemoryBackend = "memory"
	MemorySQLite    MemoryBackend = "sqlite"
)

// Timeouts holds per-dependency call deadlines, in seconds. Every external
// call gets exactly one attempt bounded by its timeout; exceeding it is an
// absence, not a request failure.
type Timeouts struct {
	LLMSeconds       int `yaml:"llm" koanf:"llm"`
	SearchSeconds    int `yaml:"search" koanf:"search"`
	SatelliteSeconds int `yaml:"satellite" koanf:"satellite"`
	TranslateSeconds int `yaml:"translate" koanf:"translate"`
	GeoSeconds       int `yaml:"geo" koanf:"geo"`
	// ResearchSeconds bounds the whole research fan-out for one request.
	ResearchSeconds int `yaml:"research" koanf:"research"`
}

// Config is the top-level rootsource configuration, corresponding to .rootsource.yml.
type Config struct {
	Host          string        `yaml:"host" koanf:"host"`
	Port          int           `yaml:"port" koanf:"port"`
	AllowOrigins  []string      `yaml:"allow_origins" koanf:"allow_origins"`
	Provider      ProviderType  `yaml:"provider" koanf:"provider"`
	Model         string        `yaml:"model" koanf:"model"`
	MemoryTurns   int           `yaml:"memory_turns" koanf:"memory_turns"`
	MemoryBackend MemoryBackend `yaml:"memory_backend" koanf:"memory_backend"`
	MemoryPath    string        `yaml:"memory_path" koanf:"memory_path"`
	StaticDir     string        `yaml:"static_dir" koanf:"static_dir"`
	Timeouts      Timeouts      `yaml:"timeouts" koanf:"timeouts"`
}

// LLMTimeout returns the model-call deadline as a duration.
func (c *Config) LLMTimeout() time.Duration { return seconds(c.Timeouts.LLMSeconds) }

// SearchTimeout returns the knowledge-search call deadline.
func (c *Config) SearchTimeout() time.Duration { return seconds(c.Timeouts.SearchSeconds) }

// SatelliteTimeout returns the satellite-data call deadline.
func (c *Config) SatelliteTimeout() time.Duration { return seconds(c.Timeouts.SatelliteSeconds) }

// TranslateTimeout returns the detection/translation call deadline.
func (c *Config) TranslateTimeout() time.Duration { return seconds(c.Timeouts.TranslateSeconds) }

// GeoTimeout returns the IP-geolocation call deadline.
func (c *Config) GeoTimeout() time.Duration { return seconds(c.Timeouts.GeoSeconds) }

// ResearchDeadline returns the overall research fan-out budget.
func (c *Config) ResearchDeadline() time.Duration { return seconds(c.Timeouts.ResearchSeconds) }

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }
