package cubie

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allFaces = []Face{FaceU, FaceR, FaceF, FaceD, FaceL, FaceB}

// randomState returns the state reached from solved by n random moves.
func randomState(t *testing.T, r *rand.Rand, n int) CubeState {
	t.Helper()
	s := Solved()
	require.NoError(t, s.Apply(Scramble(r, n)...))
	return s
}

func TestNewCubeIsSolved(t *testing.T) {
	c := NewCubeState()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
	for i := 0; i < NumCorners; i++ {
		assert.Equal(t, Corner(i), c.CornerPerm[i])
		assert.Zero(t, c.CornerOrient[i])
	}
	for i := 0; i < NumEdges; i++ {
		assert.Equal(t, Edge(i), c.EdgePerm[i])
		assert.Zero(t, c.EdgeOrient[i])
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	for code := 0; code < NumMoves; code++ {
		c := NewCubeState()
		require.NoError(t, c.ApplyCode(code))
		if c.IsSolved() {
			t.Errorf("Cube should not be solved after %s", Move(code))
		}
	}
}

func TestRR_ReturnsToSolved_AllFaces(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for _, face := range allFaces {
		start := randomState(t, r, 25)
		c := start
		m := NewMove(face, CW)
		for i := 0; i < 4; i++ {
			require.NoError(t, c.ApplyMove(m))
		}
		if c != start {
			t.Errorf("%v x 4 should return to the starting state", face)
			t.Log(c.String())
		}
	}
}

func TestInverseCancellation(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for _, face := range allFaces {
		start := randomState(t, r, 25)

		c := start
		require.NoError(t, c.Apply(NewMove(face, CW), NewMove(face, CCW)))
		assert.Equal(t, start, c, "%v then %v'", face, face)

		c = start
		require.NoError(t, c.Apply(NewMove(face, CCW), NewMove(face, CW)))
		assert.Equal(t, start, c, "%v' then %v", face, face)
	}
}

func TestR2R2_ReturnsToSolved(t *testing.T) {
	c := NewCubeState()
	require.NoError(t, c.Apply(R2, R2))
	if !c.IsSolved() {
		t.Error("R2 R2 should return to solved")
		t.Log(c.String())
	}
}

func TestHalfTurnEqualsTwoQuarterTurns(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for _, face := range allFaces {
		start := randomState(t, r, 25)

		half := start
		require.NoError(t, half.ApplyMove(NewMove(face, Double)))

		quarters := start
		require.NoError(t, quarters.Apply(NewMove(face, CW), NewMove(face, CW)))

		assert.Equal(t, quarters, half, "%v2 should equal %v %v", face, face, face)
	}
}

func TestOppositeFacesCommute(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	for _, face := range []Face{FaceU, FaceR, FaceF} {
		for ta := CW; ta <= Double; ta++ {
			for tb := CW; tb <= Double; tb++ {
				start := randomState(t, r, 20)
				a := NewMove(face, ta)
				b := NewMove(face.Opposite(), tb)

				ab := start
				require.NoError(t, ab.Apply(a, b))
				ba := start
				require.NoError(t, ba.Apply(b, a))

				assert.Equal(t, ab, ba, "%v %v vs %v %v", a, b, b, a)
			}
		}
	}
}

func TestInvariantsHoldAfterEveryMove(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 10))
	for seq := 0; seq < 50; seq++ {
		c := Solved()
		for i := 0; i < 100; i++ {
			m := Move(r.IntN(NumMoves))
			require.NoError(t, c.ApplyMove(m))
			require.NoError(t, c.Verify(), "sequence %d move %d (%s)", seq, i, m)
			require.Equal(t, c.CornerParity(), c.EdgeParity())
		}
	}
}

func TestQuarterTurnIsOddOnBothPieceSets(t *testing.T) {
	for code := 0; code < NumMoves; code++ {
		c := NewCubeState()
		require.NoError(t, c.ApplyCode(code))
		want := 1
		if Move(code).Turn() == Double {
			want = 0
		}
		assert.Equal(t, want, c.CornerParity(), "corner parity after %s", Move(code))
		assert.Equal(t, want, c.EdgeParity(), "edge parity after %s", Move(code))
	}
}

func TestMoveTouchesOnlyItsFace(t *testing.T) {
	for _, face := range allFaces {
		c := NewCubeState()
		require.NoError(t, c.ApplyMove(NewMove(face, CW)))

		onFace := map[int]bool{}
		for _, p := range faceTurns[face].corners {
			onFace[int(p)] = true
		}
		for p := 0; p < NumCorners; p++ {
			if onFace[p] {
				assert.NotEqual(t, Corner(p), c.CornerPerm[p], "%v should move corner position %d", face, p)
			} else {
				assert.Equal(t, Corner(p), c.CornerPerm[p], "%v should not move corner position %d", face, p)
				assert.Zero(t, c.CornerOrient[p])
			}
		}

		onFace = map[int]bool{}
		for _, p := range faceTurns[face].edges {
			onFace[int(p)] = true
		}
		for p := 0; p < NumEdges; p++ {
			if onFace[p] {
				assert.NotEqual(t, Edge(p), c.EdgePerm[p], "%v should move edge position %d", face, p)
			} else {
				assert.Equal(t, Edge(p), c.EdgePerm[p], "%v should not move edge position %d", face, p)
				assert.Zero(t, c.EdgeOrient[p])
			}
		}
	}
}

func TestInvalidMoveLeavesStateUnchanged(t *testing.T) {
	c := NewCubeState()
	require.NoError(t, c.Apply(R, U))
	before := *c

	for _, code := range []int{-1, 18, 255, 1000} {
		err := c.ApplyCode(code)
		assert.True(t, errors.Is(err, ErrInvalidMove), "code %d", code)
		assert.Equal(t, before, *c)
	}

	err := c.ApplyMove(Move(18))
	assert.ErrorIs(t, err, ErrInvalidMove)

	err = c.Apply(F, Move(40), B)
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, before, *c, "Apply should validate every move before turning")
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	// (R U R' U') x 6 = identity
	c := NewCubeState()
	for i := 0; i < 6; i++ {
		require.NoError(t, c.Apply(SexyMove...))
		if i < 5 && c.IsSolved() {
			t.Fatalf("Sexy move x %d should not be solved", i+1)
		}
	}
	if !c.IsSolved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(c.String())
	}
}

func TestTPermHasOrderTwo(t *testing.T) {
	c := NewCubeState()
	require.NoError(t, c.Apply(TPerm...))
	assert.False(t, c.IsSolved())
	assert.Equal(t, URF, c.CornerPerm[UBR], "T-perm swaps the right-hand U corners")
	assert.Equal(t, UBR, c.CornerPerm[URF])
	require.NoError(t, c.Apply(TPerm...))
	assert.True(t, c.IsSolved())
}

func TestScrambleAndReverse(t *testing.T) {
	c := NewCubeState()
	scramble, err := ParseMoves("R U R' U' F D L2 B' D2")
	require.NoError(t, err)

	require.NoError(t, c.Apply(scramble...))
	if c.IsSolved() {
		t.Error("Cube should be scrambled after moves")
	}

	require.NoError(t, c.Apply(Invert(scramble)...))
	if !c.IsSolved() {
		t.Error("Cube should be solved after reversing scramble")
		t.Log(c.String())
	}
}

func TestVerifyRejectsUnreachableStates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *CubeState)
	}{
		{"single twisted corner", func(s *CubeState) { s.CornerOrient[URF] = 1 }},
		{"single flipped edge", func(s *CubeState) { s.EdgeOrient[UF] = 1 }},
		{"two corners swapped", func(s *CubeState) { s.CornerPerm[URF], s.CornerPerm[UFL] = UFL, URF }},
		{"two edges swapped", func(s *CubeState) { s.EdgePerm[UR], s.EdgePerm[UF] = UF, UR }},
		{"duplicate corner", func(s *CubeState) { s.CornerPerm[UFL] = URF }},
		{"duplicate edge", func(s *CubeState) { s.EdgePerm[BR] = UR }},
		{"corner label out of range", func(s *CubeState) { s.CornerPerm[DRB] = 9 }},
		{"orientation out of range", func(s *CubeState) { s.CornerOrient[URF], s.CornerOrient[UFL] = 3, 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Solved()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Verify(), ErrInvalidState)
		})
	}
}

func TestVerifyAcceptsTwistedPairs(t *testing.T) {
	s := Solved()
	s.CornerOrient[URF] = 1
	s.CornerOrient[DRB] = 2
	s.EdgeOrient[UF] = 1
	s.EdgeOrient[BL] = 1
	assert.NoError(t, s.Verify())
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewCubeState()
	clone := c.Clone()
	require.NoError(t, clone.ApplyMove(F))
	assert.True(t, c.IsSolved())
	assert.False(t, clone.IsSolved())

	clone.Reset()
	assert.True(t, clone.IsSolved())
}

func TestApplyNotation(t *testing.T) {
	a := NewCubeState()
	require.NoError(t, a.ApplyNotation("R U R' U'"))

	b := NewCubeState()
	require.NoError(t, b.Apply(SexyMove...))
	assert.Equal(t, *b, *a)

	before := *a
	err := a.ApplyNotation("R X")
	assert.ErrorIs(t, err, ErrInvalidNotation)
	assert.Equal(t, before, *a)
}
