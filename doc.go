// Package cubie provides a cubie-level model of the 3x3 Rubik's cube: the
// permutation and orientation of its 8 corners and 12 edges, the 18 face
// turns that act on them, and a decoder from that state to sticker colors.
//
// # Features
//
//   - Compact CubeState value type with fixed move tables
//   - Integer move codes (face*3 + turn) and standard notation
//   - Sticker decoding for renderers (Decode, Paint)
//   - Invariant checking for reachable states (Verify)
//   - Layer-by-layer progress detection
//   - Session type for interactive, event-driven front ends
//
// # Quick Start
//
//	state := cubie.NewCubeState()
//
//	// Apply moves using predefined constants
//	state.Apply(cubie.R, cubie.U, cubie.RPrime, cubie.UPrime)
//
//	// Or from notation
//	state.ApplyNotation("F B2 L' D")
//
//	// Or from raw move codes: 0, 3 and 6 are U, R and F clockwise
//	state.ApplyCode(6)
//
//	fmt.Println(state) // unfolded net
//
// # Move Encoding
//
// A move code is face*3 + turn with faces U=0, R=1, F=2, D=3, L=4, B=5
// and turns CW=0, CCW=1, Double=2. Codes outside [0, 17] are rejected with
// ErrInvalidMove before the state is touched.
//
// # Colors
//
// The solved cube shows Orange on U, Blue on R, White on F, Red on D,
// Green on L and Yellow on B.
package cubie
