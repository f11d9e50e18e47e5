package config

import (
	"fmt"
	"net/url"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Server.URL == "" {
		issues = append(issues, ValidationIssue{
			Path:    "server.url",
			Message: "server URL is required",
		})
	} else if u, err := url.Parse(cfg.Server.URL); err != nil || u.Scheme == "" || u.Host == "" {
		issues = append(issues, ValidationIssue{
			Path:    "server.url",
			Message: fmt.Sprintf("must be an absolute http(s) URL, got %q", cfg.Server.URL),
		})
	}

	if cfg.Chat.ItemHeight < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "chat.itemHeight",
			Message: fmt.Sprintf("must be positive, got %d", cfg.Chat.ItemHeight),
		})
	}
	if cfg.Chat.Overscan < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "chat.overscan",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Chat.Overscan),
		})
	}

	validDifficulties := []string{"beginner", "intermediate", "advanced"}
	if cfg.Quiz.Difficulty != "" && !slices.Contains(validDifficulties, cfg.Quiz.Difficulty) {
		issues = append(issues, ValidationIssue{
			Path:    "quiz.difficulty",
			Message: fmt.Sprintf("must be one of %v, got %q", validDifficulties, cfg.Quiz.Difficulty),
		})
	}
	if cfg.Quiz.Count != 0 && (cfg.Quiz.Count < 3 || cfg.Quiz.Count > 10) {
		issues = append(issues, ValidationIssue{
			Path:    "quiz.count",
			Message: fmt.Sprintf("must be 3-10, got %d", cfg.Quiz.Count),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	return issues
}
