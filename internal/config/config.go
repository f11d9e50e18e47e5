package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			URL: "http://localhost:8000",
		},
		Chat: ChatConfig{
			ItemHeight: 2,
			Overscan:   5,
			Archive:    true,
		},
		Quiz: QuizConfig{
			Difficulty: "intermediate",
			Count:      5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
