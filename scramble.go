package cubie

import "math/rand/v2"

// axis groups opposite faces: U/D, R/L, F/B.
func (f Face) axis() Face {
	return f % 3
}

// Scramble returns n random moves. No face is turned twice in a row and no
// axis is turned three times in a row, so the sequence has no trivial
// cancellations.
func Scramble(r *rand.Rand, n int) []Move {
	moves := make([]Move, 0, n)
	for len(moves) < n {
		face := Face(r.IntN(NumFaces))
		if k := len(moves); k > 0 {
			last := moves[k-1].Face()
			if face == last {
				continue
			}
			if k > 1 && face.axis() == last.axis() && moves[k-2].Face().axis() == last.axis() {
				continue
			}
		}
		moves = append(moves, NewMove(face, Turn(r.IntN(3))))
	}
	return moves
}
