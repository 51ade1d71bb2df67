package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:          "0.0.0.0",
		Port:          8080,
		AllowOrigins:  []string{"*"},
		Provider:      ProviderGroq,
		Model:         "openai/gpt-oss-120b",
		MemoryTurns:   10,
		MemoryBackend: MemoryInProcess,
		MemoryPath:    "rootsource.db",
		StaticDir:     "web",
		Timeouts: Timeouts{
			LLMSeconds:       60,
			SearchSeconds:    8,
			SatelliteSeconds: 15,
			TranslateSeconds: 5,
			GeoSeconds:       5,
			ResearchSeconds:  20,
		},
	}
}
