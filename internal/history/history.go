// Package history keeps the log of drafts the user marked as sent.
package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reteki/outreach/internal/outreach"
)

// ErrNotFound is returned when deleting an id that is not in the log.
var ErrNotFound = errors.New("sent message not found")

// Backend is the durable storage the log lives in. *store.DB satisfies it.
type Backend interface {
	InsertSent(m outreach.SentMessage) error
	HasSent(name, message string) (bool, error)
	ListSent() ([]outreach.SentMessage, error)
	DeleteSent(id string) (bool, error)
	ClearSent() (int64, error)
	CountSent() (int, error)
	CountSentSince(t time.Time) (int, error)
}

// Sort fields.
const (
	SortByDate = "date"
	SortByName = "name"
)

// Query filters and orders a listing. Zero value lists everything newest first.
type Query struct {
	Search string
	SortBy string // "date" (default) or "name"
	Asc    bool
}

// Stats summarizes the log.
type Stats struct {
	Total     int `json:"total"`
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
}

// Log is the sent-message log.
type Log struct {
	backend Backend
	now     func() time.Time
}

// New creates a Log over backend.
func New(backend Backend) *Log {
	return &Log{backend: backend, now: func() time.Time { return time.Now().UTC() }}
}

// Add records a sent message. An entry with the same name and message is not
// duplicated: Add returns added=false and a zero SentMessage.
func (l *Log) Add(name, message string) (m outreach.SentMessage, added bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(message) == "" {
		return m, false, fmt.Errorf("name and message are required")
	}

	dup, err := l.backend.HasSent(name, message)
	if err != nil {
		return m, false, err
	}
	if dup {
		return m, false, nil
	}

	m = outreach.SentMessage{
		ID:      "msg_" + uuid.NewString(),
		Name:    name,
		Message: message,
		SentAt:  l.now(),
	}
	if err := l.backend.InsertSent(m); err != nil {
		return outreach.SentMessage{}, false, err
	}
	return m, true, nil
}

// List returns entries matching q.
func (l *Log) List(q Query) ([]outreach.SentMessage, error) {
	all, err := l.backend.ListSent()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]outreach.SentMessage, 0, len(all))
	for _, m := range all {
		if needle == "" ||
			strings.Contains(strings.ToLower(m.Name), needle) ||
			strings.Contains(strings.ToLower(m.Message), needle) {
			out = append(out, m)
		}
	}

	var less func(a, b outreach.SentMessage) bool
	switch q.SortBy {
	case SortByName:
		less = func(a, b outreach.SentMessage) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	default:
		less = func(a, b outreach.SentMessage) bool { return a.SentAt.Before(b.SentAt) }
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.Asc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out, nil
}

// Delete removes one entry.
func (l *Log) Delete(id string) error {
	ok, err := l.backend.DeleteSent(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (l *Log) Clear() (int64, error) {
	return l.backend.ClearSent()
}

// Stats counts all entries, those sent in the last 7 days and those sent in
// the last month.
func (l *Log) Stats() (Stats, error) {
	var s Stats
	var err error
	if s.Total, err = l.backend.CountSent(); err != nil {
		return Stats{}, err
	}

	now := l.now()
	if s.ThisWeek, err = l.backend.CountSentSince(now.AddDate(0, 0, -7)); err != nil {
		return Stats{}, err
	}
	if s.ThisMonth, err = l.backend.CountSentSince(now.AddDate(0, -1, 0)); err != nil {
		return Stats{}, err
	}
	return s, nil
}

// csvHeader is the export header row.
var csvHeader = []string{"Nombre", "Mensaje", "Fecha de Envío"}

// ExportCSV writes msgs as CSV. Dates are RFC 3339 in UTC.
func ExportCSV(w io.Writer, msgs []outreach.SentMessage) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, m := range msgs {
		row := []string{m.Name, m.Message, m.SentAt.UTC().Format(time.RFC3339)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
