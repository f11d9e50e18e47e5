package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".studyline"

// Paths holds resolved filesystem paths for Studyline data.
type Paths struct {
	Base        string // ~/.studyline
	Config      string // ~/.studyline/config.yaml
	Credentials string // ~/.studyline/credentials
	Logs        string // ~/.studyline/logs
	Data        string // ~/.studyline/data
}

// ResolvePaths computes all standard paths from the home directory.
// If STUDYLINE_HOME is set, it overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("STUDYLINE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:        base,
		Config:      filepath.Join(base, "config.yaml"),
		Credentials: filepath.Join(base, "credentials"),
		Logs:        filepath.Join(base, "logs"),
		Data:        filepath.Join(base, "data"),
	}, nil
}

// EnsureDirs creates all standard directories if they don't exist.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.Base, p.Credentials, p.Logs, p.Data}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return err
		}
	}
	return nil
}

// TokenFile is the primary persisted credential location.
func (p Paths) TokenFile() string {
	return filepath.Join(p.Credentials, "token.json")
}

// CookieFile is the secondary credential location, kept in the cookie
// format the companion web middleware reads. Cleared together with the
// token file on logout or session expiry.
func (p Paths) CookieFile() string {
	return filepath.Join(p.Credentials, "cookies.txt")
}

// HistoryDB is the local transcript archive database.
func (p Paths) HistoryDB() string {
	return filepath.Join(p.Data, "history.db")
}

// LogFile is the default log file path.
func (p Paths) LogFile() string {
	return filepath.Join(p.Logs, "studyline.log")
}
