package cli

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubie"
	"github.com/SeamusWaldron/cubie/internal/config"
	"github.com/SeamusWaldron/cubie/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Turn a cube interactively in the terminal",
	Long: `Start an interactive TUI showing the unfolded cube.

Keyboard shortcuts:
  u r f d l b  - Turn the face clockwise
  U R F D L B  - Turn the face counter-clockwise
  2            - Make the next face turn a half turn
  z            - Undo the last move
  s            - Apply a random scramble
  x            - Reset to solved
  q/Esc        - Quit

With --save, the session and every move are stored in the database.`,
	RunE: runPlay,
}

var (
	playSave     bool
	playScramble int
	playNotes    string
)

const (
	recentMoves    = 20
	scrambleLength = 20
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVar(&playSave, "save", false, "Save the session and its moves to the database")
	playCmd.Flags().IntVar(&playScramble, "scramble", 0, "Start from a random scramble of this many moves")
	playCmd.Flags().StringVar(&playNotes, "notes", "", "Notes stored with a saved session")
}

// recorder persists a play session. A nil recorder saves nothing.
type recorder struct {
	sessions *storage.SessionRepository
	moves    *storage.MoveRepository
	notes    string

	sessionID string
	started   time.Time
	count     int
}

func (r *recorder) start(scramble []cubie.Move) error {
	if r == nil {
		return nil
	}
	id, err := r.sessions.Create(r.notes, cubie.FormatMoves(scramble))
	if err != nil {
		return err
	}
	r.sessionID = id
	r.started = time.Now()
	r.count = 0
	return nil
}

func (r *recorder) record(m cubie.Move) error {
	if r == nil || r.sessionID == "" {
		return nil
	}
	tsMs := time.Since(r.started).Milliseconds()
	if _, err := r.moves.Create(r.sessionID, r.count, tsMs, m); err != nil {
		return err
	}
	r.count++
	return nil
}

func (r *recorder) finish(final cubie.CubeState) error {
	if r == nil || r.sessionID == "" {
		return nil
	}
	err := r.sessions.End(r.sessionID, final)
	r.sessionID = ""
	return err
}

// playModel is the Bubble Tea model for the play command.
type playModel struct {
	session  *cubie.Session
	rng      *rand.Rand
	styles   stickerStyles
	rec      *recorder
	log      *logrus.Entry
	half     bool
	solvedAt int
	savedIDs []string
	err      error
	quitting bool
}

func newPlayModel(start []cubie.Move, rng *rand.Rand, palette [cubie.NumFaces]string, rec *recorder, log *logrus.Logger) (*playModel, error) {
	state := cubie.Solved()
	if err := state.Apply(start...); err != nil {
		return nil, err
	}

	m := &playModel{
		session: cubie.NewSession(
			cubie.WithStartState(state),
			cubie.WithInvariantChecks(true),
			cubie.WithLogger(log),
		),
		rng:    rng,
		styles: newStickerStyles(palette),
		rec:    rec,
		log:    log.WithField("component", "play"),
	}

	m.session.OnMove(func(mv cubie.Move, _ cubie.CubeState) {
		m.setErr(m.rec.record(mv))
	})
	m.session.OnSolved(func() {
		m.solvedAt = m.session.MoveCount()
		m.log.WithField("moves", m.solvedAt).Info("solved")
	})

	if err := m.rec.start(start); err != nil {
		return nil, err
	}
	m.trackSession()
	return m, nil
}

// setErr keeps the first error until the model is done.
func (m *playModel) setErr(err error) {
	if err != nil && m.err == nil {
		m.err = err
	}
}

func (m *playModel) trackSession() {
	if m.rec != nil && m.rec.sessionID != "" {
		m.savedIDs = append(m.savedIDs, m.rec.sessionID)
	}
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

// faceKeys maps lowercase keys to faces.
var faceKeys = map[rune]cubie.Face{
	'u': cubie.FaceU,
	'r': cubie.FaceR,
	'f': cubie.FaceF,
	'd': cubie.FaceD,
	'l': cubie.FaceL,
	'b': cubie.FaceB,
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		m.setErr(m.rec.finish(m.session.State()))
		return m, tea.Quit

	case "2":
		m.half = !m.half

	case "z":
		m.half = false
		if mv, ok := m.session.Undo(); ok {
			m.log.WithField("move", mv.Notation()).Debug("undo")
		}

	case "s":
		m.half = false
		scramble := cubie.Scramble(m.rng, scrambleLength)
		m.setErr(m.session.Apply(scramble...))

	case "x":
		m.half = false
		m.setErr(m.rec.finish(m.session.State()))
		m.session.Reset()
		m.solvedAt = 0
		m.setErr(m.rec.start(nil))
		m.trackSession()

	default:
		if key.Type != tea.KeyRunes || len(key.Runes) != 1 {
			return m, nil
		}
		r := key.Runes[0]
		turn := cubie.CW
		if r >= 'A' && r <= 'Z' {
			turn = cubie.CCW
			r += 'a' - 'A'
		}
		face, ok := faceKeys[r]
		if !ok {
			return m, nil
		}
		if m.half {
			turn = cubie.Double
			m.half = false
		}
		m.setErr(m.session.ApplyMove(cubie.NewMove(face, turn)))
	}

	return m, nil
}

func (m *playModel) View() string {
	if m.quitting {
		if len(m.savedIDs) > 0 {
			return fmt.Sprintf("Saved sessions: %s\n", strings.Join(m.savedIDs, ", "))
		}
		return "Bye.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("cubie"))
	if m.rec != nil && m.rec.sessionID != "" {
		b.WriteString(statusStyle.Render(fmt.Sprintf("  recording %s", m.rec.sessionID)))
	}
	b.WriteString("\n\n")

	b.WriteString(renderNet(m.session.Facelets(), m.styles))
	b.WriteString("\n")

	if m.session.IsSolved() && m.solvedAt > 0 {
		b.WriteString(fmt.Sprintf("Cube State: %s in %d moves\n", phaseStyle.Render("SOLVED!"), m.solvedAt))
	} else if m.session.IsSolved() {
		b.WriteString(fmt.Sprintf("Cube State: %s\n", phaseStyle.Render("SOLVED")))
	} else {
		b.WriteString(fmt.Sprintf("Phase: %s\n", phaseStyle.Render(m.session.Phase().DisplayName())))
		b.WriteString(fmt.Sprintf("Best: %s\n", statusStyle.Render(m.session.HighestPhase().DisplayName())))
	}

	moves := m.session.Moves()
	b.WriteString(fmt.Sprintf("Moves: %d\n", len(moves)))
	if len(moves) > 0 {
		start := 0
		if len(moves) > recentMoves {
			start = len(moves) - recentMoves
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(cubie.FormatMoves(moves[start:])))
		b.WriteString("\n")
	}
	if m.half {
		b.WriteString(statusStyle.Render("Half turn armed"))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("urfdlb=turn  URFDLB=reverse  2=half  z=undo  s=scramble  x=reset  q=quit"))
	b.WriteString("\n")

	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	if playScramble < 0 {
		return fmt.Errorf("--scramble must not be negative")
	}

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	start := cubie.Scramble(rng, playScramble)

	var rec *recorder
	if playSave {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		rec = &recorder{
			sessions: storage.NewSessionRepository(db),
			moves:    storage.NewMoveRepository(db),
			notes:    playNotes,
		}
	}

	palette := config.DefaultPalette()
	if cfg != nil {
		palette = cfg.Palette
	}
	model, err := newPlayModel(start, rng, palette, rec, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("play error: %w", err)
	}

	if fm, ok := final.(*playModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
