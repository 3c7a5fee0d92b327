package store

import (
	"fmt"
	"time"

	"github.com/reteki/outreach/internal/outreach"
)

// InsertSent appends m to the sent log.
func (db *DB) InsertSent(m outreach.SentMessage) error {
	_, err := db.Exec(`
		INSERT INTO sent_messages (id, name, message, sent_at)
		VALUES (?, ?, ?, ?)
	`, m.ID, m.Name, m.Message, m.SentAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert sent message: %w", err)
	}
	return nil
}

// HasSent reports whether an entry with exactly this name and message exists.
func (db *DB) HasSent(name, message string) (bool, error) {
	var n int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sent_messages WHERE name = ? AND message = ?",
		name, message,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check sent message: %w", err)
	}
	return n > 0, nil
}

// ListSent returns every entry, newest first.
func (db *DB) ListSent() ([]outreach.SentMessage, error) {
	rows, err := db.Query(`
		SELECT id, name, message, sent_at FROM sent_messages
		ORDER BY sent_at DESC, seq DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sent messages: %w", err)
	}
	defer rows.Close()

	var out []outreach.SentMessage
	for rows.Next() {
		var m outreach.SentMessage
		var sentAt int64
		if err := rows.Scan(&m.ID, &m.Name, &m.Message, &sentAt); err != nil {
			return nil, fmt.Errorf("scan sent message: %w", err)
		}
		m.SentAt = time.UnixMilli(sentAt).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteSent removes one entry. It reports whether the entry existed.
func (db *DB) DeleteSent(id string) (bool, error) {
	res, err := db.Exec("DELETE FROM sent_messages WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete sent message: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ClearSent removes every entry and returns how many were removed.
func (db *DB) ClearSent() (int64, error) {
	res, err := db.Exec("DELETE FROM sent_messages")
	if err != nil {
		return 0, fmt.Errorf("clear sent messages: %w", err)
	}
	return res.RowsAffected()
}

// CountSent returns the number of entries in the log.
func (db *DB) CountSent() (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sent_messages").Scan(&n); err != nil {
		return 0, fmt.Errorf("count sent messages: %w", err)
	}
	return n, nil
}

// CountSentSince returns how many entries were sent at or after t.
func (db *DB) CountSentSince(t time.Time) (int, error) {
	var n int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sent_messages WHERE sent_at >= ?", t.UnixMilli(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sent messages: %w", err)
	}
	return n, nil
}
