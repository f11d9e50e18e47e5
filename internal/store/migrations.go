package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create archived sessions and messages",
		SQL: `
			CREATE TABLE archived_sessions (
				id           TEXT PRIMARY KEY,
				topic        TEXT NOT NULL,
				summary      TEXT NOT NULL DEFAULT '',
				next_topics  TEXT,
				archived_at  TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_archived_sessions_at ON archived_sessions (archived_at);

			CREATE TABLE archived_messages (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				session_id  TEXT NOT NULL REFERENCES archived_sessions(id) ON DELETE CASCADE,
				msg_id      TEXT NOT NULL,
				role        TEXT NOT NULL,
				content     TEXT NOT NULL,
				timestamp   TEXT NOT NULL DEFAULT '',
				wolfram     TEXT,
				multimedia  TEXT
			);

			CREATE INDEX idx_archived_messages_session ON archived_messages (session_id, id);
		`,
	},
}
