package cubie

// Predefined moves for convenience.
// Use these instead of calling NewMove manually.
//
// Example:
//
//	state.Apply(cubie.R, cubie.U, cubie.RPrime, cubie.UPrime)
var (
	// Up face moves
	U      = NewMove(FaceU, CW)     // Up clockwise
	UPrime = NewMove(FaceU, CCW)    // Up counter-clockwise
	U2     = NewMove(FaceU, Double) // Up 180

	// Right face moves
	R      = NewMove(FaceR, CW)     // Right clockwise
	RPrime = NewMove(FaceR, CCW)    // Right counter-clockwise
	R2     = NewMove(FaceR, Double) // Right 180

	// Front face moves
	F      = NewMove(FaceF, CW)     // Front clockwise
	FPrime = NewMove(FaceF, CCW)    // Front counter-clockwise
	F2     = NewMove(FaceF, Double) // Front 180

	// Down face moves
	D      = NewMove(FaceD, CW)     // Down clockwise
	DPrime = NewMove(FaceD, CCW)    // Down counter-clockwise
	D2     = NewMove(FaceD, Double) // Down 180

	// Left face moves
	L      = NewMove(FaceL, CW)     // Left clockwise
	LPrime = NewMove(FaceL, CCW)    // Left counter-clockwise
	L2     = NewMove(FaceL, Double) // Left 180

	// Back face moves
	B      = NewMove(FaceB, CW)     // Back clockwise
	BPrime = NewMove(FaceB, CCW)    // Back counter-clockwise
	B2     = NewMove(FaceB, Double) // Back 180
)

// Sexy move: R U R' U' - one of the most common algorithms
var SexyMove = []Move{R, U, RPrime, UPrime}

// Inverse sexy move: U R U' R'
var InverseSexyMove = []Move{U, R, UPrime, RPrime}

// T-perm algorithm
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}
