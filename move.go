package cubie

import (
	"fmt"
	"strings"
)

// Face identifies one of the six faces. The numeric values are part of the
// move encoding and of the renderer contract: U=0, R=1, F=2, D=3, L=4, B=5.
type Face uint8

const (
	FaceU Face = iota // Up
	FaceR             // Right
	FaceF             // Front
	FaceD             // Down
	FaceL             // Left
	FaceB             // Back
)

// NumFaces is the number of cube faces.
const NumFaces = 6

func (f Face) String() string {
	switch f {
	case FaceU:
		return "U"
	case FaceR:
		return "R"
	case FaceF:
		return "F"
	case FaceD:
		return "D"
	case FaceL:
		return "L"
	case FaceB:
		return "B"
	default:
		return "?"
	}
}

// Opposite returns the face on the other side of the cube.
func (f Face) Opposite() Face {
	return (f + 3) % NumFaces
}

// Turn is the variant of a face turn.
type Turn uint8

const (
	CW     Turn = iota // Clockwise (90 degrees)
	CCW                // Counter-clockwise (90 degrees)
	Double             // Half turn (180 degrees)
)

// quarters returns how many clockwise quarter turns the variant amounts to.
func (t Turn) quarters() int {
	switch t {
	case CW:
		return 1
	case CCW:
		return 3
	default:
		return 2
	}
}

// Move is an integer move code in [0, 17]: face*3 + turn.
// Codes 0, 3 and 6 are U, R and F clockwise.
type Move uint8

// NumMoves is the number of distinct move codes.
const NumMoves = NumFaces * 3

// NewMove builds the move code for a face and turn.
func NewMove(f Face, t Turn) Move {
	return Move(uint8(f)*3 + uint8(t))
}

// MoveFromCode converts a raw integer code into a Move.
// Returns ErrInvalidMove if the code is outside [0, 17].
func MoveFromCode(code int) (Move, error) {
	if code < 0 || code >= NumMoves {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMove, code)
	}
	return Move(code), nil
}

// Valid reports whether m is one of the 18 move codes.
func (m Move) Valid() bool {
	return m < NumMoves
}

// Face returns the face turned by m.
func (m Move) Face() Face {
	return Face(m / 3)
}

// Turn returns the turn variant of m.
func (m Move) Turn() Turn {
	return Turn(m % 3)
}

// Code returns m as a plain integer.
func (m Move) Code() int {
	return int(m)
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	if !m.Valid() {
		return "?"
	}
	suffix := ""
	switch m.Turn() {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return m.Face().String() + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	switch m.Turn() {
	case CW:
		return NewMove(m.Face(), CCW)
	case CCW:
		return NewMove(m.Face(), CW)
	}
	return m
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, U, U', U2
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 0, fmt.Errorf("%w: empty move", ErrInvalidNotation)
	}

	var face Face
	switch s[0] {
	case 'U', 'u':
		face = FaceU
	case 'R', 'r':
		face = FaceR
	case 'F', 'f':
		face = FaceF
	case 'D', 'd':
		face = FaceD
	case 'L', 'l':
		face = FaceL
	case 'B', 'b':
		face = FaceB
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	turn := CW
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`", "3":
			turn = CCW
		case "2", "2'", "2`":
			turn = Double
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
	}

	return NewMove(face, turn), nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// The first invalid token aborts parsing.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// Invert returns the sequence that undoes moves.
func Invert(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}

// Simplify merges adjacent turns of the same face and drops turns that
// cancel out. The result has the same effect on any state as moves.
func Simplify(moves []Move) []Move {
	out := make([]Move, 0, len(moves))
	for _, m := range moves {
		if len(out) == 0 || out[len(out)-1].Face() != m.Face() {
			out = append(out, m)
			continue
		}

		last := out[len(out)-1]
		out = out[:len(out)-1]
		if merged, ok := merge(last, m); ok {
			out = append(out, merged)
		}
	}
	return out
}

// merge combines two same-face moves. ok is false if they cancel out.
func merge(a, b Move) (Move, bool) {
	q := (a.Turn().quarters() + b.Turn().quarters()) % 4
	switch q {
	case 1:
		return NewMove(a.Face(), CW), true
	case 2:
		return NewMove(a.Face(), Double), true
	case 3:
		return NewMove(a.Face(), CCW), true
	}
	return 0, false
}
