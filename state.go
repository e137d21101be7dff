package cubie

import "fmt"

// CubeState is the cubie-level state of a 3x3 Rubik's cube.
//
// CornerPerm[p] is the corner piece sitting at position p and
// CornerOrient[p] its twist (0..2). EdgePerm and EdgeOrient do the same for
// the edges, with flips in 0..1. A piece with orientation o shows, in the
// i-th visible slot of its position, the color at index (i+o) of its
// reference colors.
//
// CubeState is a value type: assignment copies it and == compares all four
// vectors.
type CubeState struct {
	CornerPerm   [NumCorners]Corner
	CornerOrient [NumCorners]uint8
	EdgePerm     [NumEdges]Edge
	EdgeOrient   [NumEdges]uint8
}

// Solved returns the identity state.
func Solved() CubeState {
	var s CubeState
	for i := range s.CornerPerm {
		s.CornerPerm[i] = Corner(i)
	}
	for i := range s.EdgePerm {
		s.EdgePerm[i] = Edge(i)
	}
	return s
}

// NewCubeState creates a solved cube state.
func NewCubeState() *CubeState {
	s := Solved()
	return &s
}

// Clone creates a copy of the state.
func (s *CubeState) Clone() *CubeState {
	c := *s
	return &c
}

// Reset returns the state to solved.
func (s *CubeState) Reset() {
	*s = Solved()
}

// IsSolved returns true if every piece is home and unrotated.
func (s *CubeState) IsSolved() bool {
	return *s == Solved()
}

// ApplyMove applies a move to the state.
// Returns ErrInvalidMove without touching the state if m is out of range.
func (s *CubeState) ApplyMove(m Move) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMove, m)
	}

	s.turn(m)
	return nil
}

// ApplyCode applies a raw integer move code, as sent by UI controllers.
func (s *CubeState) ApplyCode(code int) error {
	m, err := MoveFromCode(code)
	if err != nil {
		return err
	}
	return s.ApplyMove(m)
}

// Apply applies moves in order. All moves are validated first, so an
// invalid move leaves the state unchanged.
func (s *CubeState) Apply(moves ...Move) error {
	for _, m := range moves {
		if !m.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidMove, m)
		}
	}
	for _, m := range moves {
		s.turn(m)
	}
	return nil
}

// ApplyNotation parses and applies a space-separated move sequence.
func (s *CubeState) ApplyNotation(notation string) error {
	moves, err := ParseMoves(notation)
	if err != nil {
		return err
	}
	return s.Apply(moves...)
}

// turn applies a validated move as one to three clockwise quarter turns.
func (s *CubeState) turn(m Move) {
	t := &faceTurns[m.Face()]
	for i := 0; i < m.Turn().quarters(); i++ {
		s.quarterTurn(t)
	}
}

// quarterTurn moves the pieces of one face a clockwise quarter turn.
func (s *CubeState) quarterTurn(t *faceTurn) {
	c := t.corners
	cp, co := s.CornerPerm[c[3]], s.CornerOrient[c[3]]
	for k := 3; k > 0; k-- {
		s.CornerPerm[c[k]] = s.CornerPerm[c[k-1]]
		s.CornerOrient[c[k]] = (s.CornerOrient[c[k-1]] + t.cornerTwist[k]) % 3
	}
	s.CornerPerm[c[0]] = cp
	s.CornerOrient[c[0]] = (co + t.cornerTwist[0]) % 3

	e := t.edges
	ep, eo := s.EdgePerm[e[3]], s.EdgeOrient[e[3]]
	for k := 3; k > 0; k-- {
		s.EdgePerm[e[k]] = s.EdgePerm[e[k-1]]
		s.EdgeOrient[e[k]] = (s.EdgeOrient[e[k-1]] + t.edgeFlip[k]) % 2
	}
	s.EdgePerm[e[0]] = ep
	s.EdgeOrient[e[0]] = (eo + t.edgeFlip[0]) % 2
}

// CornerParity returns 0 if the corner permutation is even, 1 if odd.
func (s *CubeState) CornerParity() int {
	var p [NumCorners]int
	for i, c := range s.CornerPerm {
		p[i] = int(c)
	}
	return parity(p[:])
}

// EdgeParity returns 0 if the edge permutation is even, 1 if odd.
func (s *CubeState) EdgeParity() int {
	var p [NumEdges]int
	for i, e := range s.EdgePerm {
		p[i] = int(e)
	}
	return parity(p[:])
}

// parity counts inversions mod 2.
func parity(p []int) int {
	n := 0
	for i := 0; i < len(p); i++ {
		for j := i + 1; j < len(p); j++ {
			if p[i] > p[j] {
				n++
			}
		}
	}
	return n % 2
}

// Verify checks the invariants of a reachable state: both permutations are
// bijective, orientations are in range, corner twists sum to 0 mod 3, edge
// flips sum to 0 mod 2, and the two permutations have equal parity.
func (s *CubeState) Verify() error {
	var seenC [NumCorners]bool
	twist := 0
	for p, c := range s.CornerPerm {
		if int(c) >= NumCorners || seenC[c] {
			return fmt.Errorf("%w: corner permutation not bijective at position %d", ErrInvalidState, p)
		}
		seenC[c] = true
		if s.CornerOrient[p] > 2 {
			return fmt.Errorf("%w: corner orientation %d at position %d", ErrInvalidState, s.CornerOrient[p], p)
		}
		twist += int(s.CornerOrient[p])
	}
	if twist%3 != 0 {
		return fmt.Errorf("%w: corner twist sum %d not divisible by 3", ErrInvalidState, twist)
	}

	var seenE [NumEdges]bool
	flip := 0
	for p, e := range s.EdgePerm {
		if int(e) >= NumEdges || seenE[e] {
			return fmt.Errorf("%w: edge permutation not bijective at position %d", ErrInvalidState, p)
		}
		seenE[e] = true
		if s.EdgeOrient[p] > 1 {
			return fmt.Errorf("%w: edge orientation %d at position %d", ErrInvalidState, s.EdgeOrient[p], p)
		}
		flip += int(s.EdgeOrient[p])
	}
	if flip%2 != 0 {
		return fmt.Errorf("%w: edge flip sum %d is odd", ErrInvalidState, flip)
	}

	if s.CornerParity() != s.EdgeParity() {
		return fmt.Errorf("%w: corner and edge permutation parities differ", ErrInvalidState)
	}

	return nil
}

// String returns the unfolded facelet net of the state.
func (s *CubeState) String() string {
	f := Decode(s)
	return f.String()
}
