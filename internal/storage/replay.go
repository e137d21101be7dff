package storage

import (
	"fmt"

	"github.com/SeamusWaldron/cubie"
)

// Replay applies moves to a solved cube and returns the resulting state.
func Replay(moves []cubie.Move) (cubie.CubeState, error) {
	s := cubie.Solved()
	if err := s.Apply(moves...); err != nil {
		return cubie.CubeState{}, fmt.Errorf("failed to replay: %w", err)
	}
	return s, nil
}

// ReplayResult is a stored session rebuilt from its scramble and move log.
type ReplayResult struct {
	Session  *SessionRecord
	Scramble []cubie.Move
	Moves    []cubie.Move
	State    cubie.CubeState

	// Snapshot is the final state stored by End, if the session ended.
	Snapshot    cubie.CubeState
	HasSnapshot bool
}

// Matches reports whether the replayed state equals the stored snapshot.
// Sessions without a snapshot always match.
func (r *ReplayResult) Matches() bool {
	return !r.HasSnapshot || r.State == r.Snapshot
}

// LoadReplay rebuilds a session from the database. It returns nil, nil if
// there is no such session.
func LoadReplay(db *DB, sessionID string) (*ReplayResult, error) {
	sess, err := NewSessionRepository(db).Get(sessionID)
	if err != nil || sess == nil {
		return nil, err
	}

	scramble, err := sess.Scramble()
	if err != nil {
		return nil, err
	}

	records, err := NewMoveRepository(db).GetBySession(sessionID)
	if err != nil {
		return nil, err
	}
	moves, err := ToMoves(records)
	if err != nil {
		return nil, fmt.Errorf("failed to load moves of session %s: %w", sessionID, err)
	}

	all := make([]cubie.Move, 0, len(scramble)+len(moves))
	all = append(all, scramble...)
	all = append(all, moves...)
	state, err := Replay(all)
	if err != nil {
		return nil, err
	}

	snapshot, ok, err := sess.Snapshot()
	if err != nil {
		return nil, err
	}

	return &ReplayResult{
		Session:     sess,
		Scramble:    scramble,
		Moves:       moves,
		State:       state,
		Snapshot:    snapshot,
		HasSnapshot: ok,
	}, nil
}
