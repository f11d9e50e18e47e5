package config

// Config is the root configuration for Studyline.
type Config struct {
	Server  ServerConfig  `yaml:"server,omitempty"`
	Chat    ChatConfig    `yaml:"chat,omitempty"`
	Quiz    QuizConfig    `yaml:"quiz,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// ServerConfig points the client at a tutoring API server.
type ServerConfig struct {
	URL string `yaml:"url,omitempty"` // base URL, e.g. https://tutor.example.com
}

// ChatConfig controls the interactive chat view.
type ChatConfig struct {
	// ItemHeight is the estimated rendered height of one message, in
	// terminal rows, used by the windowed transcript renderer.
	ItemHeight int `yaml:"itemHeight,omitempty"`
	// Overscan is how many extra messages to render on each side of the
	// visible window.
	Overscan int `yaml:"overscan,omitempty"`
	// Archive enables saving completed session transcripts locally.
	Archive bool `yaml:"archive,omitempty"`
}

// QuizConfig sets quiz defaults.
type QuizConfig struct {
	Difficulty string `yaml:"difficulty,omitempty"` // "beginner" | "intermediate" | "advanced"
	Count      int    `yaml:"count,omitempty"`      // questions per quiz (3-10)
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	File  string `yaml:"file,omitempty"`  // log file path; empty logs to console only
}
