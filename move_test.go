package cubie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveEncoding(t *testing.T) {
	assert.Equal(t, 0, U.Code())
	assert.Equal(t, 3, R.Code())
	assert.Equal(t, 6, F.Code())
	assert.Equal(t, 9, D.Code())
	assert.Equal(t, 12, L.Code())
	assert.Equal(t, 15, B.Code())

	for code := 0; code < NumMoves; code++ {
		m, err := MoveFromCode(code)
		require.NoError(t, err)
		assert.Equal(t, Face(code/3), m.Face())
		assert.Equal(t, Turn(code%3), m.Turn())
		assert.Equal(t, m, NewMove(m.Face(), m.Turn()))
	}
}

func TestMoveFromCodeRejectsOutOfRange(t *testing.T) {
	for _, code := range []int{-1, 18, 19, 256} {
		_, err := MoveFromCode(code)
		assert.ErrorIs(t, err, ErrInvalidMove, "code %d", code)
	}
}

func TestMoveNotation(t *testing.T) {
	tests := []struct {
		move Move
		want string
	}{
		{U, "U"},
		{UPrime, "U'"},
		{U2, "U2"},
		{R, "R"},
		{FPrime, "F'"},
		{D2, "D2"},
		{LPrime, "L'"},
		{B, "B"},
		{Move(18), "?"},
	}

	for _, tt := range tests {
		if got := tt.move.Notation(); got != tt.want {
			t.Errorf("Move(%d).Notation() = %q, want %q", tt.move, got, tt.want)
		}
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"R", R},
		{"r", R},
		{"R'", RPrime},
		{"R`", RPrime},
		{"R3", RPrime},
		{"R2", R2},
		{"R2'", R2},
		{" U ", U},
		{"b'", BPrime},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMove(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMoveErrors(t *testing.T) {
	for _, in := range []string{"", "X", "R4", "RR", "M", "R''"} {
		_, err := ParseMove(in)
		assert.ErrorIs(t, err, ErrInvalidNotation, "input %q", in)
	}
}

func TestParseAndFormatMoves(t *testing.T) {
	moves, err := ParseMoves("R U R' U'")
	require.NoError(t, err)
	assert.Equal(t, SexyMove, moves)
	assert.Equal(t, "R U R' U'", FormatMoves(moves))

	moves, err = ParseMoves("   ")
	require.NoError(t, err)
	assert.Empty(t, moves)
	assert.Equal(t, "", FormatMoves(nil))

	_, err = ParseMoves("R U Q")
	assert.ErrorIs(t, err, ErrInvalidNotation)
}

func TestMoveInverse(t *testing.T) {
	assert.Equal(t, RPrime, R.Inverse())
	assert.Equal(t, R, RPrime.Inverse())
	assert.Equal(t, R2, R2.Inverse())

	for code := 0; code < NumMoves; code++ {
		m := Move(code)
		assert.Equal(t, m, m.Inverse().Inverse())
		assert.Equal(t, m.Face(), m.Inverse().Face())
	}
}

func TestInvert(t *testing.T) {
	assert.Equal(t, []Move{U, R, UPrime, RPrime}, Invert(SexyMove))
	assert.Empty(t, Invert(nil))
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"R R", "R2"},
		{"R R'", ""},
		{"R2 R", "R'"},
		{"R2 R2", ""},
		{"R R R", "R'"},
		{"R U U' R'", ""},
		{"R L R", "R L R"},
		{"F U2 U2 F", "F2"},
		{"R U R' U'", "R U R' U'"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			moves, err := ParseMoves(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatMoves(Simplify(moves)))
		})
	}
}

func TestSimplifyPreservesEffect(t *testing.T) {
	moves, err := ParseMoves("R R U U U F' F' F' L2 L D D' B")
	require.NoError(t, err)

	a := NewCubeState()
	require.NoError(t, a.Apply(moves...))
	b := NewCubeState()
	require.NoError(t, b.Apply(Simplify(moves)...))
	assert.Equal(t, *a, *b)
}

func TestFaceOpposite(t *testing.T) {
	assert.Equal(t, FaceD, FaceU.Opposite())
	assert.Equal(t, FaceL, FaceR.Opposite())
	assert.Equal(t, FaceB, FaceF.Opposite())
	for _, f := range allFaces {
		assert.Equal(t, f, f.Opposite().Opposite())
	}
}
