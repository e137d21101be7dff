package cubie

import "strings"

// Color is a sticker color. None marks a cell face that shows no sticker.
type Color uint8

const (
	None Color = iota
	Orange
	Blue
	White
	Red
	Green
	Yellow
)

func (c Color) String() string {
	switch c {
	case Orange:
		return "O"
	case Blue:
		return "B"
	case White:
		return "W"
	case Red:
		return "R"
	case Green:
		return "G"
	case Yellow:
		return "Y"
	default:
		return "."
	}
}

// Name returns the lowercase color name.
func (c Color) Name() string {
	switch c {
	case Orange:
		return "orange"
	case Blue:
		return "blue"
	case White:
		return "white"
	case Red:
		return "red"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	default:
		return "none"
	}
}

// faceColors is the color each face shows when solved.
var faceColors = [NumFaces]Color{
	FaceU: Orange,
	FaceR: Blue,
	FaceF: White,
	FaceD: Red,
	FaceL: Green,
	FaceB: Yellow,
}

// SolvedColor returns the color of a face when solved.
func SolvedColor(f Face) Color {
	if int(f) < NumFaces {
		return faceColors[f]
	}
	return None
}

// Cell coordinates run x left to right, y top to bottom, z back to front.
type cell struct{ x, y, z int }

var cornerCells = [NumCorners]cell{
	URF: {2, 0, 2},
	UFL: {0, 0, 2},
	ULB: {0, 0, 0},
	UBR: {2, 0, 0},
	DFR: {2, 2, 2},
	DLF: {0, 2, 2},
	DBL: {0, 2, 0},
	DRB: {2, 2, 0},
}

// cornerFaces lists the visible faces of each corner position in slot
// order. Read by piece label, it is also the reference color order of the
// piece.
var cornerFaces = [NumCorners][3]Face{
	URF: {FaceU, FaceR, FaceF},
	UFL: {FaceU, FaceF, FaceL},
	ULB: {FaceU, FaceL, FaceB},
	UBR: {FaceU, FaceB, FaceR},
	DFR: {FaceD, FaceF, FaceR},
	DLF: {FaceD, FaceL, FaceF},
	DBL: {FaceD, FaceB, FaceL},
	DRB: {FaceD, FaceR, FaceB},
}

var edgeCells = [NumEdges]cell{
	UR: {2, 0, 1},
	UF: {1, 0, 2},
	UL: {0, 0, 1},
	UB: {1, 0, 0},
	DR: {2, 2, 1},
	DF: {1, 2, 2},
	DL: {0, 2, 1},
	DB: {1, 2, 0},
	FR: {2, 1, 2},
	FL: {0, 1, 2},
	BL: {0, 1, 0},
	BR: {2, 1, 0},
}

var edgeFaces = [NumEdges][2]Face{
	UR: {FaceU, FaceR},
	UF: {FaceU, FaceF},
	UL: {FaceU, FaceL},
	UB: {FaceU, FaceB},
	DR: {FaceD, FaceR},
	DF: {FaceD, FaceF},
	DL: {FaceD, FaceL},
	DB: {FaceD, FaceB},
	FR: {FaceF, FaceR},
	FL: {FaceF, FaceL},
	BL: {FaceB, FaceL},
	BR: {FaceB, FaceR},
}

var centerCells = [NumFaces]cell{
	FaceU: {1, 0, 1},
	FaceR: {2, 1, 1},
	FaceF: {1, 1, 2},
	FaceD: {1, 2, 1},
	FaceL: {0, 1, 1},
	FaceB: {1, 1, 0},
}

// CellPainter is the renderer side of the decoder: something that owns the
// 27 cells of a 3x3x3 grid and can color one face of one cell.
type CellPainter interface {
	SetFaceColor(x, y, z int, face Face, c Color)
}

// Paint clears every face of all 27 cells to None and then colors the 54
// visible stickers of s. The interior cell is never colored.
func Paint(s *CubeState, p CellPainter) {
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				for f := Face(0); f < NumFaces; f++ {
					p.SetFaceColor(x, y, z, f, None)
				}
			}
		}
	}
	paintStickers(s, p.SetFaceColor)
}

// paintStickers visits the 54 stickers of s: corners, then edges, then
// centers.
func paintStickers(s *CubeState, set func(x, y, z int, face Face, c Color)) {
	for pos := 0; pos < NumCorners; pos++ {
		piece := s.CornerPerm[pos]
		orient := int(s.CornerOrient[pos])
		at := cornerCells[pos]
		for i := 0; i < 3; i++ {
			set(at.x, at.y, at.z, cornerFaces[pos][i], faceColors[cornerFaces[piece][(i+orient)%3]])
		}
	}

	for pos := 0; pos < NumEdges; pos++ {
		piece := s.EdgePerm[pos]
		orient := int(s.EdgeOrient[pos])
		at := edgeCells[pos]
		for i := 0; i < 2; i++ {
			set(at.x, at.y, at.z, edgeFaces[pos][i], faceColors[edgeFaces[piece][(i+orient)%2]])
		}
	}

	for f := Face(0); f < NumFaces; f++ {
		at := centerCells[f]
		set(at.x, at.y, at.z, f, faceColors[f])
	}
}

// Cells is an in-memory CellPainter: Cells[x][y][z][face].
type Cells [3][3][3][NumFaces]Color

// SetFaceColor implements CellPainter.
func (c *Cells) SetFaceColor(x, y, z int, face Face, color Color) {
	c[x][y][z][face] = color
}

// Facelets holds the 54 sticker colors, Facelets[face][index], faces in
// U, R, F, D, L, B order. Each face is indexed row-major as it appears in
// the unfolded net:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// U is seen from above with F below it, D from below with F above it, and
// L, F, R, B side by side.
type Facelets [NumFaces][9]Color

// Decode maps a state to its sticker colors. It never modifies s.
func Decode(s *CubeState) Facelets {
	var f Facelets
	paintStickers(s, func(x, y, z int, face Face, c Color) {
		f[face][faceletIndex(face, x, y, z)] = c
	})
	return f
}

// faceletIndex projects a cell on the surface of face onto that face's
// row-major net index.
func faceletIndex(face Face, x, y, z int) int {
	switch face {
	case FaceU:
		return z*3 + x
	case FaceD:
		return (2-z)*3 + x
	case FaceF:
		return y*3 + x
	case FaceB:
		return y*3 + (2 - x)
	case FaceR:
		return y*3 + (2 - z)
	default: // FaceL
		return y*3 + z
	}
}

// Count returns how many stickers of face show color c.
func (f Facelets) Count(face Face, c Color) int {
	n := 0
	for _, got := range f[face] {
		if got == c {
			n++
		}
	}
	return n
}

// Row returns one row (0 = top) of a face in the net.
func (f Facelets) Row(face Face, row int) [3]Color {
	return [3]Color{f[face][row*3], f[face][row*3+1], f[face][row*3+2]}
}

// String returns a text representation of the unfolded net.
func (f Facelets) String() string {
	var b strings.Builder

	// U face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(f[FaceU][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, face := range []Face{FaceL, FaceF, FaceR, FaceB} {
			for col := 0; col < 3; col++ {
				b.WriteString(f[face][row*3+col].String() + " ")
			}
		}
		b.WriteString("\n")
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(f[FaceD][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	return b.String()
}
