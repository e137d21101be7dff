package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubie"
)

var applyCmd = &cobra.Command{
	Use:   "apply [notation...]",
	Short: "Apply moves to a solved cube and print the result",
	Long: `Apply a move sequence to a solved cube and print the unfolded net.

Moves can be given in standard notation or as raw move codes
(face*3 + turn, faces U R F D L B, turns CW CCW double).

Examples:
  cubie apply R U "R'" "U'"
  cubie apply "R U R' U'" --state
  cubie apply --codes 3,0,4,1 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApply(cmd.OutOrStdout(), args, applyCodes, applyJSON, applyState)
	},
}

var (
	applyCodes string
	applyJSON  bool
	applyState bool
)

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringVar(&applyCodes, "codes", "", "Comma-separated move codes in [0,17], applied after any notation")
	applyCmd.Flags().BoolVar(&applyJSON, "json", false, "Print the result as JSON")
	applyCmd.Flags().BoolVar(&applyState, "state", false, "Also print the cubie state encoding")
}

// applyResult is the JSON output of the apply command.
type applyResult struct {
	Moves    []string          `json:"moves"`
	Codes    []int             `json:"codes"`
	State    cubie.CubeState   `json:"state"`
	Phase    string            `json:"phase"`
	Solved   bool              `json:"solved"`
	Facelets map[string]string `json:"facelets"`
}

func runApply(w io.Writer, args []string, codes string, asJSON, showState bool) error {
	moves, err := cubie.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}

	extra, err := parseCodes(codes)
	if err != nil {
		return err
	}
	moves = append(moves, extra...)

	s := cubie.Solved()
	if err := s.Apply(moves...); err != nil {
		return err
	}
	logger.WithField("moves", len(moves)).Debug("applied sequence")

	f := cubie.Decode(&s)

	if asJSON {
		res := applyResult{
			Moves:    make([]string, len(moves)),
			Codes:    make([]int, len(moves)),
			State:    s,
			Phase:    s.Phase().String(),
			Solved:   s.IsSolved(),
			Facelets: make(map[string]string, cubie.NumFaces),
		}
		for i, m := range moves {
			res.Moves[i] = m.Notation()
			res.Codes[i] = m.Code()
		}
		for face := cubie.Face(0); face < cubie.NumFaces; face++ {
			var b strings.Builder
			for _, c := range f[face] {
				b.WriteString(c.String())
			}
			res.Facelets[face.String()] = b.String()
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if len(moves) > 0 {
		fmt.Fprintf(w, "Moves: %s\n\n", cubie.FormatMoves(moves))
	}
	fmt.Fprint(w, f.String())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Phase: %s\n", s.Phase().DisplayName())
	if showState {
		fmt.Fprintf(w, "State: %s\n", s.Encode())
	}

	return nil
}

// parseCodes parses "0,3,6" into moves.
func parseCodes(s string) ([]cubie.Move, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	moves := make([]cubie.Move, 0, len(parts))
	for _, p := range parts {
		code, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", cubie.ErrInvalidMove, p)
		}
		m, err := cubie.MoveFromCode(code)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}
