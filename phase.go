package cubie

// Phase represents how far a state is through the layer-by-layer method,
// with the U layer built first. Phases progress from Scrambled (0) to
// Solved (7), allowing comparison with < and > operators.
type Phase int

const (
	// PhaseScrambled indicates no phase is complete.
	PhaseScrambled Phase = iota

	// PhaseUpCross indicates the 4 U edges are home and unflipped.
	PhaseUpCross

	// PhaseUpLayer indicates the 4 U corners are also home and untwisted.
	PhaseUpLayer

	// PhaseMiddleLayer indicates the 4 middle layer edges are home and
	// unflipped.
	PhaseMiddleLayer

	// PhaseDownCross indicates the 4 D edges show the D color on the D face.
	// They may still be in the wrong slots.
	PhaseDownCross

	// PhaseDownCornersPositioned indicates the 4 D corners are home
	// (may be twisted).
	PhaseDownCornersPositioned

	// PhaseDownCornersOriented indicates the D corners are also untwisted.
	PhaseDownCornersOriented

	// PhaseSolved indicates the cube is completely solved.
	PhaseSolved
)

// String returns a short identifier for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseUpCross:
		return "up_cross"
	case PhaseUpLayer:
		return "up_layer"
	case PhaseMiddleLayer:
		return "middle_layer"
	case PhaseDownCross:
		return "down_cross"
	case PhaseDownCornersPositioned:
		return "down_corners_positioned"
	case PhaseDownCornersOriented:
		return "down_corners_oriented"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseScrambled:
		return "Scrambled"
	case PhaseUpCross:
		return "Up Cross"
	case PhaseUpLayer:
		return "Up Layer"
	case PhaseMiddleLayer:
		return "Middle Layer"
	case PhaseDownCross:
		return "Down Cross"
	case PhaseDownCornersPositioned:
		return "Down Corners Positioned"
	case PhaseDownCornersOriented:
		return "Down Corners Oriented"
	case PhaseSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// Progress reports which phases are complete. Each phase requires the
// ones before it.
type Progress struct {
	UpCross               bool
	UpLayer               bool
	MiddleLayer           bool
	DownCross             bool
	DownCornersPositioned bool
	DownCornersOriented   bool
	Solved                bool
}

func (s *CubeState) edgesHome(edges ...Edge) bool {
	for _, e := range edges {
		if s.EdgePerm[e] != e || s.EdgeOrient[e] != 0 {
			return false
		}
	}
	return true
}

func (s *CubeState) cornersHome(twisted bool, corners ...Corner) bool {
	for _, c := range corners {
		if s.CornerPerm[c] != c {
			return false
		}
		if !twisted && s.CornerOrient[c] != 0 {
			return false
		}
	}
	return true
}

// downCross checks that every D edge position holds a D edge showing its
// D color downward.
func (s *CubeState) downCross() bool {
	for _, pos := range []Edge{DR, DF, DL, DB} {
		e := s.EdgePerm[pos]
		if e < DR || e > DB || s.EdgeOrient[pos] != 0 {
			return false
		}
	}
	return true
}

// Progress returns the current progress through all phases.
func (s *CubeState) Progress() Progress {
	var p Progress
	p.UpCross = s.edgesHome(UR, UF, UL, UB)
	p.UpLayer = p.UpCross && s.cornersHome(false, URF, UFL, ULB, UBR)
	p.MiddleLayer = p.UpLayer && s.edgesHome(FR, FL, BL, BR)
	p.DownCross = p.MiddleLayer && s.downCross()
	p.DownCornersPositioned = p.DownCross && s.cornersHome(true, DFR, DLF, DBL, DRB)
	p.DownCornersOriented = p.DownCornersPositioned && s.cornersHome(false, DFR, DLF, DBL, DRB)
	p.Solved = s.IsSolved()
	return p
}

// Phase returns the highest complete phase of the state.
func (s *CubeState) Phase() Phase {
	p := s.Progress()
	switch {
	case p.Solved:
		return PhaseSolved
	case p.DownCornersOriented:
		return PhaseDownCornersOriented
	case p.DownCornersPositioned:
		return PhaseDownCornersPositioned
	case p.DownCross:
		return PhaseDownCross
	case p.MiddleLayer:
		return PhaseMiddleLayer
	case p.UpLayer:
		return PhaseUpLayer
	case p.UpCross:
		return PhaseUpCross
	default:
		return PhaseScrambled
	}
}
