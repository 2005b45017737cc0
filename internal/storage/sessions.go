// ABOUTME: Session store implementing the conversation-history collaborator
// ABOUTME: Supplies prior messages for a session and appends new ones
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pitcrewhq/pitcrew/internal/models"
)

// SessionStore handles session and message persistence
type SessionStore struct {
	db *DB
}

// SessionInfo is a summary row for listing sessions
type SessionInfo struct {
	ID           string
	CustomerID   string
	VehicleID    string
	MessageCount int
	UpdatedAt    time.Time
}

// NewSessionStore creates a SessionStore on an open database
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// EnsureSession creates the session row if it does not already exist
func (s *SessionStore) EnsureSession(sessionID, customerID, vehicleID string) error {
	now := time.Now().UTC()
	_, err := s.db.conn.Exec(`
		INSERT INTO sessions (id, customer_id, vehicle_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at
	`, sessionID, customerID, vehicleID, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

// AppendMessage adds one message to a session's history. Confidence may be
// nil; it is recorded only for assistant messages that carry one.
func (s *SessionStore) AppendMessage(sessionID string, msg models.Message, confidence *float64) error {
	if !msg.Role.IsValid() {
		return fmt.Errorf("invalid message role %q", msg.Role)
	}

	var conf sql.NullFloat64
	if confidence != nil {
		conf = sql.NullFloat64{Float64: *confidence, Valid: true}
	}

	_, err := s.db.conn.Exec(`
		INSERT INTO messages (session_id, role, content, confidence, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, string(msg.Role), msg.Text, conf, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// History returns a session's messages in insertion order
func (s *SessionStore) History(sessionID string) ([]models.Message, error) {
	rows, err := s.db.conn.Query(`
		SELECT role, content FROM messages
		WHERE session_id = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var msgs []models.Message
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msgs = append(msgs, models.Message{Role: models.Role(role), Text: content})
	}
	return msgs, rows.Err()
}

// LastConfidence returns the confidence recorded with the most recent
// assistant message, or false when the session has none
func (s *SessionStore) LastConfidence(sessionID string) (float64, bool, error) {
	var conf sql.NullFloat64
	err := s.db.conn.QueryRow(`
		SELECT confidence FROM messages
		WHERE session_id = ? AND role = ? AND confidence IS NOT NULL
		ORDER BY id DESC LIMIT 1
	`, sessionID, string(models.RoleAssistant)).Scan(&conf)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query confidence: %w", err)
	}
	return conf.Float64, conf.Valid, nil
}

// RecentSessions lists the most recently active sessions
func (s *SessionStore) RecentSessions(limit int) ([]SessionInfo, error) {
	rows, err := s.db.conn.Query(`
		SELECT s.id, COALESCE(s.customer_id, ''), COALESCE(s.vehicle_id, ''), s.updated_at,
		       (SELECT COUNT(*) FROM messages m WHERE m.session_id = s.id)
		FROM sessions s
		ORDER BY s.updated_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []SessionInfo
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.CustomerID, &info.VehicleID, &info.UpdatedAt, &info.MessageCount); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}
