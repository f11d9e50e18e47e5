package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/soyeahso/studyline/internal/domain"
)

// ErrNotFound is returned when no archived session has the requested ID.
var ErrNotFound = errors.New("store: session not found")

// ArchiveStore persists completed session transcripts.
type ArchiveStore struct {
	db *DB
}

// NewArchiveStore creates an archive store using the given database.
func NewArchiveStore(db *DB) *ArchiveStore {
	return &ArchiveStore{db: db}
}

// ArchivedSession is a row in the archive listing.
type ArchivedSession struct {
	ID           string
	Topic        string
	Summary      string
	MessageCount int
	ArchivedAt   time.Time
}

// Archive stores a session snapshot. Re-archiving the same session
// replaces its previous record.
func (a *ArchiveStore) Archive(sess domain.Session) error {
	if sess.ID == "" {
		return errors.New("store: session has no id")
	}

	tx, err := a.db.sql.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	summary := ""
	var nextTopics sql.NullString
	if sess.Summary != nil {
		summary = sess.Summary.Summary
		if len(sess.Summary.NextTopics) > 0 {
			nextTopics = sql.NullString{String: strings.Join(sess.Summary.NextTopics, "\n"), Valid: true}
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO archived_sessions (id, topic, summary, next_topics, archived_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   topic = excluded.topic,
		   summary = excluded.summary,
		   next_topics = excluded.next_topics,
		   archived_at = excluded.archived_at`,
		sess.ID, sess.Topic, summary, nextTopics, time.Now().UTC().Format(time.DateTime),
	); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM archived_messages WHERE session_id = ?`, sess.ID); err != nil {
		return err
	}

	for _, msg := range sess.Messages {
		var wolfram, multimedia sql.NullString
		if msg.Wolfram != nil {
			if data, err := json.Marshal(msg.Wolfram); err == nil {
				wolfram = sql.NullString{String: string(data), Valid: true}
			}
		}
		if len(msg.Multimedia) > 0 {
			if data, err := json.Marshal(msg.Multimedia); err == nil {
				multimedia = sql.NullString{String: string(data), Valid: true}
			}
		}

		if _, err := tx.Exec(
			`INSERT INTO archived_messages (session_id, msg_id, role, content, timestamp, wolfram, multimedia)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sess.ID, msg.ID, msg.Role, msg.Content, msg.Timestamp, wolfram, multimedia,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Get loads an archived session with its full transcript.
func (a *ArchiveStore) Get(id string) (*domain.Session, error) {
	var sess domain.Session
	var summary string
	var nextTopics sql.NullString

	err := a.db.sql.QueryRow(
		`SELECT id, topic, summary, next_topics FROM archived_sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Topic, &summary, &nextTopics)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if summary != "" || nextTopics.Valid {
		sess.Summary = &domain.SessionSummary{Summary: summary}
		if nextTopics.Valid {
			sess.Summary.NextTopics = strings.Split(nextTopics.String, "\n")
		}
	}

	rows, err := a.db.sql.Query(
		`SELECT msg_id, role, content, timestamp, wolfram, multimedia
		 FROM archived_messages WHERE session_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var msg domain.Message
		var wolfram, multimedia sql.NullString
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &msg.Timestamp, &wolfram, &multimedia); err != nil {
			return nil, err
		}
		if wolfram.Valid {
			_ = json.Unmarshal([]byte(wolfram.String), &msg.Wolfram)
		}
		if multimedia.Valid {
			_ = json.Unmarshal([]byte(multimedia.String), &msg.Multimedia)
		}
		sess.Messages = append(sess.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &sess, nil
}

// List returns the most recently archived sessions, newest first.
func (a *ArchiveStore) List(limit int) ([]ArchivedSession, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := a.db.sql.Query(
		`SELECT s.id, s.topic, s.summary, s.archived_at,
		        (SELECT COUNT(*) FROM archived_messages m WHERE m.session_id = s.id)
		 FROM archived_sessions s
		 ORDER BY s.archived_at DESC, s.id
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArchivedSession
	for rows.Next() {
		var item ArchivedSession
		var archivedAt string
		if err := rows.Scan(&item.ID, &item.Topic, &item.Summary, &archivedAt, &item.MessageCount); err != nil {
			return nil, err
		}
		item.ArchivedAt, _ = time.Parse(time.DateTime, archivedAt)
		out = append(out, item)
	}
	return out, rows.Err()
}

// Delete removes an archived session and its messages.
func (a *ArchiveStore) Delete(id string) error {
	_, err := a.db.sql.Exec(`DELETE FROM archived_sessions WHERE id = ?`, id)
	return err
}
