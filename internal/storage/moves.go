package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cubie"
)

// MoveRecord represents a move in the database.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	MoveIndex int
	TsMs      int64
	Code      int
	Notation  string
}

// Move converts the stored code back to a cubie.Move.
func (m MoveRecord) Move() (cubie.Move, error) {
	return cubie.MoveFromCode(m.Code)
}

// TimedMove is a move with its offset from the session start.
type TimedMove struct {
	Move cubie.Move
	TsMs int64
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

const insertMove = `
	INSERT INTO moves (session_id, move_index, ts_ms, code, notation)
	VALUES (?, ?, ?, ?, ?)
`

// Create creates a new move and returns its ID.
func (r *MoveRepository) Create(sessionID string, moveIndex int, tsMs int64, move cubie.Move) (int64, error) {
	if !move.Valid() {
		return 0, fmt.Errorf("failed to create move: %w: %d", cubie.ErrInvalidMove, move)
	}

	result, err := r.db.Exec(insertMove, sessionID, moveIndex, tsMs, move.Code(), move.Notation())
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}

	return id, nil
}

// CreateBatch creates multiple moves in a single transaction. Nothing is
// written if any move is invalid.
func (r *MoveRepository) CreateBatch(sessionID string, moves []TimedMove, startIndex int) error {
	for i, m := range moves {
		if !m.Move.Valid() {
			return fmt.Errorf("failed to create move %d: %w: %d", startIndex+i, cubie.ErrInvalidMove, m.Move)
		}
	}

	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, m := range moves {
			_, err := tx.Exec(insertMove, sessionID, startIndex+i, m.TsMs, m.Move.Code(), m.Move.Notation())
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all moves for a session in order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, move_index, ts_ms, code, notation
		FROM moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.MoveIndex, &m.TsMs, &m.Code, &m.Notation)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}

	return moves, nil
}

// Count returns the number of moves in a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get move count: %w", err)
	}
	return count, nil
}

// ToMoves converts move records to cubie moves.
func ToMoves(records []MoveRecord) ([]cubie.Move, error) {
	moves := make([]cubie.Move, len(records))
	for i, rec := range records {
		m, err := rec.Move()
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", rec.MoveIndex, err)
		}
		moves[i] = m
	}
	return moves, nil
}
