package cubie

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Session owns a CubeState on behalf of an interactive front end.
//
// Every move is applied under a write lock, so concurrent readers only
// ever see the state between moves. Callbacks run after the lock is
// released and may call back into the Session.
//
//	s := cubie.NewSession()
//	s.OnMove(func(m cubie.Move, st cubie.CubeState) {
//	    fmt.Println("Move:", m.Notation())
//	})
//	s.ApplyNotation("R U R' U'")
type Session struct {
	mu           sync.RWMutex
	state        CubeState
	moveHistory  []Move
	highestPhase Phase // Monotonic - never goes backwards
	config       *config
	log          *logrus.Entry

	// Callbacks
	onMove        func(Move, CubeState)
	onPhaseChange func(Phase)
	onSolved      func()
}

// NewSession creates a session starting from the solved state unless
// WithStartState says otherwise.
func NewSession(opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Session{
		state:       cfg.start,
		moveHistory: make([]Move, 0),
		config:      cfg,
		log:         cfg.logger.WithField("component", "session"),
	}
	return s
}

// OnMove sets the callback fired after each applied move with the new state.
func (s *Session) OnMove(fn func(Move, CubeState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMove = fn
}

// OnPhaseChange sets the callback fired when a move reaches a phase higher
// than any reached before in this session.
func (s *Session) OnPhaseChange(fn func(Phase)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPhaseChange = fn
}

// OnSolved sets the callback fired when a move leaves the cube solved.
func (s *Session) OnSolved(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSolved = fn
}

// ApplyMove applies one move. An invalid move returns ErrInvalidMove and
// changes nothing.
func (s *Session) ApplyMove(m Move) error {
	return s.apply(m, true)
}

// ApplyCode applies a raw integer move code.
func (s *Session) ApplyCode(code int) error {
	m, err := MoveFromCode(code)
	if err != nil {
		return err
	}
	return s.ApplyMove(m)
}

// Apply applies moves in order. All moves are validated first, so an
// invalid move leaves the session unchanged.
func (s *Session) Apply(moves ...Move) error {
	for _, m := range moves {
		if !m.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidMove, m)
		}
	}
	for _, m := range moves {
		if err := s.ApplyMove(m); err != nil {
			return err
		}
	}
	return nil
}

// ApplyNotation parses and applies a move sequence such as "R U R' U'".
// Nothing is applied if the notation does not parse.
func (s *Session) ApplyNotation(notation string) error {
	moves, err := ParseMoves(notation)
	if err != nil {
		return err
	}
	return s.Apply(moves...)
}

// Undo reverts the most recent move. It returns false when there is no
// history to undo.
func (s *Session) Undo() (Move, bool) {
	s.mu.Lock()
	n := len(s.moveHistory)
	if n == 0 {
		s.mu.Unlock()
		return 0, false
	}
	last := s.moveHistory[n-1]
	s.moveHistory = s.moveHistory[:n-1]
	ev, err := s.commitLocked(last.Inverse(), false)
	s.mu.Unlock()
	if err != nil {
		// History only ever holds valid moves.
		panic(err)
	}

	s.fire(ev)
	return last, true
}

// moveEvent carries what the callbacks need out of the critical section.
type moveEvent struct {
	move          Move
	state         CubeState
	phase         Phase
	phaseUp       bool
	onMove        func(Move, CubeState)
	onPhaseChange func(Phase)
	onSolved      func()
}

func (s *Session) apply(m Move, record bool) error {
	s.mu.Lock()
	ev, err := s.commitLocked(m, record)
	s.mu.Unlock()
	if err != nil {
		s.log.WithError(err).Debug("rejected move")
		return err
	}

	s.fire(ev)
	return nil
}

// commitLocked applies m to the state. The caller holds s.mu.
func (s *Session) commitLocked(m Move, record bool) (moveEvent, error) {
	if err := s.state.ApplyMove(m); err != nil {
		return moveEvent{}, err
	}
	if s.config.invariantChecks {
		if err := s.state.Verify(); err != nil {
			panic(fmt.Sprintf("cubie: move %s broke an invariant: %v", m, err))
		}
	}
	if record && s.config.moveHistory {
		s.moveHistory = append(s.moveHistory, m)
	}

	ev := moveEvent{
		move:          m,
		state:         s.state,
		phase:         s.state.Phase(),
		onMove:        s.onMove,
		onPhaseChange: s.onPhaseChange,
		onSolved:      s.onSolved,
	}
	if ev.phase > s.highestPhase {
		s.highestPhase = ev.phase
		ev.phaseUp = true
	}
	return ev, nil
}

func (s *Session) fire(ev moveEvent) {
	s.log.WithFields(logrus.Fields{
		"move":  ev.move.Notation(),
		"code":  ev.move.Code(),
		"phase": ev.phase.String(),
	}).Debug("applied move")

	if ev.onMove != nil {
		ev.onMove(ev.move, ev.state)
	}
	if ev.phaseUp && ev.onPhaseChange != nil {
		ev.onPhaseChange(ev.phase)
	}
	if ev.phase == PhaseSolved && ev.onSolved != nil {
		ev.onSolved()
	}
}

// Reset returns the cube to solved and clears the history.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Solved()
	s.moveHistory = s.moveHistory[:0]
	s.highestPhase = PhaseScrambled // Start at lowest phase
	s.log.Debug("reset to solved")
}

// State returns a copy of the current state.
func (s *Session) State() CubeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Facelets returns the decoded sticker colors of the current state.
func (s *Session) Facelets() Facelets {
	st := s.State()
	return Decode(&st)
}

// Moves returns a copy of the move history.
func (s *Session) Moves() []Move {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Move, len(s.moveHistory))
	copy(out, s.moveHistory)
	return out
}

// MoveCount returns the number of moves in the history.
func (s *Session) MoveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.moveHistory)
}

// IsSolved returns true if the cube is solved.
func (s *Session) IsSolved() bool {
	st := s.State()
	return st.IsSolved()
}

// Phase returns the phase of the current state. It can go backwards.
func (s *Session) Phase() Phase {
	st := s.State()
	return st.Phase()
}

// HighestPhase returns the highest phase reached by a move since the
// session started or was last reset. It never goes backwards.
func (s *Session) HighestPhase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highestPhase
}

// String returns the unfolded net of the current state.
func (s *Session) String() string {
	return s.Facelets().String()
}
