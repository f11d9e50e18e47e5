package config

import (
	"os"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults only. A .env file in the
// working directory is loaded first so it can feed both ${VAR} references
// and STUDYLINE_* overrides.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	cfg.Server.URL = expandEnvVars(cfg.Server.URL)
	return cfg, nil
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	def := Defaults()
	if cfg.Server.URL == "" {
		cfg.Server.URL = def.Server.URL
	}
	if cfg.Chat.ItemHeight == 0 {
		cfg.Chat.ItemHeight = def.Chat.ItemHeight
	}
	if cfg.Chat.Overscan == 0 {
		cfg.Chat.Overscan = def.Chat.Overscan
	}
	if cfg.Quiz.Difficulty == "" {
		cfg.Quiz.Difficulty = def.Quiz.Difficulty
	}
	if cfg.Quiz.Count == 0 {
		cfg.Quiz.Count = def.Quiz.Count
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}

// applyEnvOverrides lets STUDYLINE_* environment variables override the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STUDYLINE_SERVER_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("STUDYLINE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("STUDYLINE_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("STUDYLINE_QUIZ_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Quiz.Count = n
		}
	}
}

// Save writes a Config back to a YAML file.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
