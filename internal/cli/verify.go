package cli

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubie"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Self-check the move engine",
	Long: `Run the algebraic properties of the move engine against random states:
four quarter turns are the identity, a turn and its inverse cancel, a half
turn equals two quarter turns, opposite faces commute, and every state
reached by moves passes the invariant check and decodes to 9 stickers of
each color.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(cmd.OutOrStdout(), verifySequences, verifyLength, verifySeed)
	},
}

var (
	verifySequences int
	verifyLength    int
	verifySeed      uint64
)

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().IntVar(&verifySequences, "sequences", 100, "Number of random move sequences")
	verifyCmd.Flags().IntVar(&verifyLength, "length", 50, "Moves per sequence")
	verifyCmd.Flags().Uint64Var(&verifySeed, "seed", 1, "Random seed")
}

// checker counts checks and collects failures.
type checker struct {
	checks   int
	failures []string
}

func (c *checker) check(ok bool, format string, args ...any) {
	c.checks++
	if !ok {
		c.failures = append(c.failures, fmt.Sprintf(format, args...))
	}
}

// apply applies moves to s and records a failed check if any is rejected.
func (c *checker) apply(s *cubie.CubeState, moves ...cubie.Move) bool {
	err := s.Apply(moves...)
	c.check(err == nil, "applying %v: %v", moves, err)
	return err == nil
}

func runVerify(w io.Writer, sequences, length int, seed uint64) error {
	if sequences < 0 || length < 0 {
		return fmt.Errorf("--sequences and --length must not be negative")
	}

	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	c := &checker{}

	for seq := 0; seq < sequences; seq++ {
		s := cubie.Solved()
		for i := 0; i < length; i++ {
			m := cubie.Move(r.IntN(cubie.NumMoves))
			if err := s.ApplyMove(m); err != nil {
				c.check(false, "sequence %d move %d: %v", seq, i, err)
				break
			}
			err := s.Verify()
			c.check(err == nil, "sequence %d move %d (%s): %v", seq, i, m, err)
		}
		checkAlgebra(c, s, r)
		checkColors(c, s, seq)
	}

	logger.WithField("checks", c.checks).Debug("verify finished")

	for _, f := range c.failures {
		fmt.Fprintln(w, errorStyle.Render("FAIL "+f))
	}
	if len(c.failures) > 0 {
		return fmt.Errorf("%d of %d checks failed", len(c.failures), c.checks)
	}
	fmt.Fprintf(w, "%d checks passed (%d sequences of %d moves, seed %d)\n", c.checks, sequences, length, seed)
	return nil
}

// checkAlgebra checks the move identities starting from s.
func checkAlgebra(c *checker, s cubie.CubeState, r *rand.Rand) {
	for f := cubie.Face(0); f < cubie.NumFaces; f++ {
		cw := cubie.NewMove(f, cubie.CW)
		ccw := cubie.NewMove(f, cubie.CCW)
		half := cubie.NewMove(f, cubie.Double)

		t := s
		if c.apply(&t, cw, cw, cw, cw) {
			c.check(t == s, "%v four times is not the identity", f)
		}

		t = s
		if c.apply(&t, cw, ccw) {
			c.check(t == s, "%v then %v does not cancel", cw, ccw)
		}

		t = s
		if c.apply(&t, ccw, cw) {
			c.check(t == s, "%v then %v does not cancel", ccw, cw)
		}

		a, b := s, s
		if c.apply(&a, half) && c.apply(&b, cw, cw) {
			c.check(a == b, "%v differs from %v %v", half, cw, cw)
		}
	}

	for f := cubie.FaceU; f <= cubie.FaceF; f++ {
		ma := cubie.NewMove(f, cubie.Turn(r.IntN(3)))
		mb := cubie.NewMove(f.Opposite(), cubie.Turn(r.IntN(3)))
		a, b := s, s
		if c.apply(&a, ma, mb) && c.apply(&b, mb, ma) {
			c.check(a == b, "%v and %v do not commute", ma, mb)
		}
	}
}

// checkColors checks that s decodes to 9 stickers of each color with fixed
// centers.
func checkColors(c *checker, s cubie.CubeState, seq int) {
	f := cubie.Decode(&s)
	counts := map[cubie.Color]int{}
	for face := cubie.Face(0); face < cubie.NumFaces; face++ {
		for _, col := range f[face] {
			counts[col]++
		}
		c.check(f[face][4] == cubie.SolvedColor(face), "sequence %d: center of %v moved", seq, face)
	}
	for face := cubie.Face(0); face < cubie.NumFaces; face++ {
		col := cubie.SolvedColor(face)
		c.check(counts[col] == 9, "sequence %d: %d %s stickers", seq, counts[col], col.Name())
	}
}
