package cubie

import (
	"fmt"
	"strings"
)

const hexDigits = "0123456789ab"

// MarshalText encodes the state as four slash-separated digit groups:
// corner permutation, corner orientation, edge permutation (hex) and edge
// orientation. The solved state is
//
//	01234567/00000000/0123456789ab/000000000000
//
// Labels or orientations outside their ranges return ErrInvalidState.
func (s CubeState) MarshalText() ([]byte, error) {
	var b strings.Builder
	b.Grow(NumCorners*2 + NumEdges*2 + 3)

	groups := []struct {
		name   string
		values []uint8
		limit  int
	}{
		{"corner label", cornerLabels(s.CornerPerm), NumCorners},
		{"corner orientation", s.CornerOrient[:], 3},
		{"edge label", edgeLabels(s.EdgePerm), NumEdges},
		{"edge orientation", s.EdgeOrient[:], 2},
	}

	for g, group := range groups {
		if g > 0 {
			b.WriteByte('/')
		}
		for i, v := range group.values {
			if int(v) >= group.limit {
				return nil, fmt.Errorf("%w: %s %d at position %d", ErrInvalidState, group.name, v, i)
			}
			b.WriteByte(hexDigits[v])
		}
	}

	return []byte(b.String()), nil
}

func cornerLabels(p [NumCorners]Corner) []uint8 {
	out := make([]uint8, NumCorners)
	for i, c := range p {
		out[i] = uint8(c)
	}
	return out
}

func edgeLabels(p [NumEdges]Edge) []uint8 {
	out := make([]uint8, NumEdges)
	for i, e := range p {
		out[i] = uint8(e)
	}
	return out
}

// UnmarshalText decodes the MarshalText form. The decoded state must pass
// Verify; otherwise the receiver is left unchanged.
func (s *CubeState) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), "/")
	if len(parts) != 4 ||
		len(parts[0]) != NumCorners || len(parts[1]) != NumCorners ||
		len(parts[2]) != NumEdges || len(parts[3]) != NumEdges {
		return fmt.Errorf("%w: malformed encoding %q", ErrInvalidState, text)
	}

	var out CubeState
	for i := 0; i < NumCorners; i++ {
		p, err := digit(parts[0][i])
		if err != nil {
			return err
		}
		o, err := digit(parts[1][i])
		if err != nil {
			return err
		}
		out.CornerPerm[i] = Corner(p)
		out.CornerOrient[i] = o
	}
	for i := 0; i < NumEdges; i++ {
		p, err := digit(parts[2][i])
		if err != nil {
			return err
		}
		o, err := digit(parts[3][i])
		if err != nil {
			return err
		}
		out.EdgePerm[i] = Edge(p)
		out.EdgeOrient[i] = o
	}

	if err := out.Verify(); err != nil {
		return err
	}

	*s = out
	return nil
}

func digit(c byte) (uint8, error) {
	i := strings.IndexByte(hexDigits, c)
	if i < 0 {
		return 0, fmt.Errorf("%w: bad digit %q", ErrInvalidState, c)
	}
	return uint8(i), nil
}

// ParseState decodes the MarshalText form into a new state.
func ParseState(text string) (CubeState, error) {
	var s CubeState
	err := s.UnmarshalText([]byte(text))
	return s, err
}

// Encode returns the MarshalText form as a string, or "" if a label or
// orientation is out of range.
func (s CubeState) Encode() string {
	b, _ := s.MarshalText()
	return string(b)
}
