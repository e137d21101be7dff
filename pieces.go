package cubie

// Corner labels a corner piece (and, by the same index, its home position).
type Corner uint8

const (
	URF Corner = iota
	UFL
	ULB
	UBR
	DFR
	DLF
	DBL
	DRB
)

// NumCorners is the number of corner pieces.
const NumCorners = 8

var cornerNames = [NumCorners]string{"URF", "UFL", "ULB", "UBR", "DFR", "DLF", "DBL", "DRB"}

func (c Corner) String() string {
	if int(c) < NumCorners {
		return cornerNames[c]
	}
	return "?"
}

// Edge labels an edge piece (and, by the same index, its home position).
type Edge uint8

const (
	UR Edge = iota
	UF
	UL
	UB
	DR
	DF
	DL
	DB
	FR
	FL
	BL
	BR
)

// NumEdges is the number of edge pieces.
const NumEdges = 12

var edgeNames = [NumEdges]string{"UR", "UF", "UL", "UB", "DR", "DF", "DL", "DB", "FR", "FL", "BL", "BR"}

func (e Edge) String() string {
	if int(e) < NumEdges {
		return edgeNames[e]
	}
	return "?"
}

// faceTurn is the fixed definition of a clockwise quarter turn of one face.
// The piece at corners[k] moves to corners[(k+1)%4] and the piece arriving
// at corners[k] has cornerTwist[k] added to its orientation. Edges follow
// the same rule with edgeFlip.
type faceTurn struct {
	corners     [4]Corner
	cornerTwist [4]uint8
	edges       [4]Edge
	edgeFlip    [4]uint8
}

var faceTurns = [NumFaces]faceTurn{
	FaceU: {
		corners: [4]Corner{URF, UFL, ULB, UBR},
		edges:   [4]Edge{UR, UF, UL, UB},
	},
	FaceR: {
		corners:     [4]Corner{URF, UBR, DRB, DFR},
		cornerTwist: [4]uint8{1, 2, 1, 2},
		edges:       [4]Edge{UR, BR, DR, FR},
	},
	FaceF: {
		corners:     [4]Corner{URF, DFR, DLF, UFL},
		cornerTwist: [4]uint8{2, 1, 2, 1},
		edges:       [4]Edge{UF, FR, DF, FL},
		edgeFlip:    [4]uint8{1, 1, 1, 1},
	},
	FaceD: {
		corners: [4]Corner{DFR, DRB, DBL, DLF},
		edges:   [4]Edge{DR, DB, DL, DF},
	},
	FaceL: {
		corners:     [4]Corner{UFL, DLF, DBL, ULB},
		cornerTwist: [4]uint8{2, 1, 2, 1},
		edges:       [4]Edge{UL, FL, DL, BL},
	},
	FaceB: {
		corners:     [4]Corner{ULB, DBL, DRB, UBR},
		cornerTwist: [4]uint8{2, 1, 2, 1},
		edges:       [4]Edge{UB, BL, DB, BR},
		edgeFlip:    [4]uint8{1, 1, 1, 1},
	},
}
