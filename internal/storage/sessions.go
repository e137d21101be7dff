package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubie"
)

// SessionRecord represents a session in the database.
type SessionRecord struct {
	SessionID    string
	StartedAt    time.Time
	EndedAt      *time.Time
	DurationMs   *int64
	ScrambleText *string
	Notes        *string
	FinalState   *string
	FinalPhase   *string
}

// Snapshot decodes the final state stored when the session ended.
// ok is false for sessions that have not ended.
func (s *SessionRecord) Snapshot() (state cubie.CubeState, ok bool, err error) {
	if s.FinalState == nil {
		return cubie.CubeState{}, false, nil
	}
	state, err = cubie.ParseState(*s.FinalState)
	if err != nil {
		return cubie.CubeState{}, false, fmt.Errorf("failed to decode snapshot of session %s: %w", s.SessionID, err)
	}
	return state, true, nil
}

// Scramble parses the stored scramble notation. It returns nil for sessions
// started from solved.
func (s *SessionRecord) Scramble() ([]cubie.Move, error) {
	if s.ScrambleText == nil {
		return nil, nil
	}
	moves, err := cubie.ParseMoves(*s.ScrambleText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scramble of session %s: %w", s.SessionID, err)
	}
	return moves, nil
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session and returns its ID.
func (r *SessionRepository) Create(notes, scramble string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	var notesPtr, scramblePtr *string
	if notes != "" {
		notesPtr = &notes
	}
	if scramble != "" {
		scramblePtr = &scramble
	}

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at, notes, scramble_text)
		VALUES (?, ?, ?, ?)
	`, id, startedAt.Format(time.RFC3339), notesPtr, scramblePtr)

	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	r.db.log.WithField("session", id).Debug("created session")
	return id, nil
}

// End marks a session as complete and stores the final state snapshot.
func (r *SessionRepository) End(sessionID string, final cubie.CubeState) error {
	if err := final.Verify(); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	endedAt := time.Now().UTC()

	// Get start time to calculate duration
	var startedAtStr string
	err := r.db.QueryRow("SELECT started_at FROM sessions WHERE session_id = ?", sessionID).Scan(&startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to get session start time: %w", err)
	}

	startedAt, err := time.Parse(time.RFC3339, startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to parse start time: %w", err)
	}

	durationMs := endedAt.Sub(startedAt).Milliseconds()
	phase := final.Phase().String()

	_, err = r.db.Exec(`
		UPDATE sessions
		SET ended_at = ?, duration_ms = ?, final_state = ?, final_phase = ?
		WHERE session_id = ?
	`, endedAt.Format(time.RFC3339), durationMs, final.Encode(), phase, sessionID)

	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	r.db.log.WithFields(logrus.Fields{
		"session":     sessionID,
		"duration_ms": durationMs,
		"phase":       phase,
	}).Debug("ended session")
	return nil
}

const sessionColumns = `session_id, started_at, ended_at, duration_ms, scramble_text, notes, final_state, final_phase`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*SessionRecord, error) {
	var s SessionRecord
	var startedAtStr string
	var endedAtStr sql.NullString

	err := row.Scan(
		&s.SessionID, &startedAtStr, &endedAtStr,
		&s.DurationMs, &s.ScrambleText, &s.Notes,
		&s.FinalState, &s.FinalPhase,
	)
	if err != nil {
		return nil, err
	}

	s.StartedAt, _ = time.Parse(time.RFC3339, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(time.RFC3339, endedAtStr.String)
		s.EndedAt = &t
	}

	return &s, nil
}

// Get retrieves a session by ID. It returns nil, nil if there is no such
// session.
func (r *SessionRepository) Get(sessionID string) (*SessionRecord, error) {
	s, err := scanSession(r.db.QueryRow(`
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE session_id = ?
	`, sessionID))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return s, nil
}

// GetLast retrieves the most recent session.
func (r *SessionRepository) GetLast() (*SessionRecord, error) {
	s, err := scanSession(r.db.QueryRow(`
		SELECT ` + sessionColumns + `
		FROM sessions
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1
	`))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last session: %w", err)
	}

	return s, nil
}

// List retrieves recent sessions, newest first.
func (r *SessionRepository) List(limit int) ([]SessionRecord, error) {
	rows, err := r.db.Query(`
		SELECT `+sessionColumns+`
		FROM sessions
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionRecord
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

// Delete deletes a session and its moves (cascading).
func (r *SessionRepository) Delete(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
