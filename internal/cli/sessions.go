package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubie"
	"github.com/SeamusWaldron/cubie/internal/analysis"
	"github.com/SeamusWaldron/cubie/internal/storage"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List and inspect saved sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		return listSessions(cmd.OutOrStdout(), db, sessionsLimit)
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session and check its replay against the saved snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		return showSession(cmd.OutOrStdout(), db, args[0], sessionsPatterns)
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its moves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := storage.NewSessionRepository(db).Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
		return nil
	},
}

var (
	sessionsLimit    int
	sessionsPatterns int
)

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsListCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 20, "Maximum number of sessions to list")
	sessionsShowCmd.Flags().IntVar(&sessionsPatterns, "patterns", 3, "Show this many repeated move patterns per length (0 to disable)")
}

func listSessions(w io.Writer, db *storage.DB, limit int) error {
	sessions, err := storage.NewSessionRepository(db).List(limit)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions found. Record one with: cubie play --save")
		return nil
	}

	moves := storage.NewMoveRepository(db)

	fmt.Fprintf(w, "%-36s  %-20s  %8s  %5s  %s\n", "ID", "STARTED", "DURATION", "MOVES", "PHASE")
	for _, s := range sessions {
		count, err := moves.Count(s.SessionID)
		if err != nil {
			return err
		}
		phase := "-"
		if s.FinalPhase != nil {
			phase = *s.FinalPhase
		}
		fmt.Fprintf(w, "%-36s  %-20s  %8s  %5d  %s\n",
			s.SessionID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			formatDuration(s.DurationMs),
			count,
			phase,
		)
	}

	return nil
}

func showSession(w io.Writer, db *storage.DB, id string, patterns int) error {
	res, err := storage.LoadReplay(db, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fmt.Errorf("session %s not found", id)
	}

	s := res.Session
	fmt.Fprintf(w, "Session: %s\n", s.SessionID)
	fmt.Fprintf(w, "Started: %s\n", s.StartedAt.Local().Format(time.RFC3339))
	if s.EndedAt != nil {
		fmt.Fprintf(w, "Ended:   %s (%s)\n", s.EndedAt.Local().Format(time.RFC3339), formatDuration(s.DurationMs))
	}
	if s.Notes != nil {
		fmt.Fprintf(w, "Notes:   %s\n", *s.Notes)
	}
	if len(res.Scramble) > 0 {
		fmt.Fprintf(w, "Scramble: %s\n", cubie.FormatMoves(res.Scramble))
	}
	fmt.Fprintf(w, "Moves (%d): %s\n", len(res.Moves), cubie.FormatMoves(res.Moves))
	if simplified := cubie.Simplify(res.Moves); len(simplified) < len(res.Moves) {
		fmt.Fprintf(w, "Simplified (%d): %s\n", len(simplified), cubie.FormatMoves(simplified))
	}
	if patterns > 0 {
		writePatterns(w, res.Moves, patterns)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, res.State.String())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Phase: %s\n", res.State.Phase().DisplayName())

	if !res.HasSnapshot {
		fmt.Fprintln(w, "Snapshot: none (session not ended)")
		return nil
	}
	if !res.Matches() {
		logger.WithField("session", id).Warn("replay does not match snapshot")
		return fmt.Errorf("replay of session %s does not match its snapshot: got %s, want %s",
			id, res.State.Encode(), res.Snapshot.Encode())
	}
	fmt.Fprintln(w, "Snapshot: replay matches")
	return nil
}

// writePatterns lists move sequences of length 2 to 6 that repeat.
func writePatterns(w io.Writer, moves []cubie.Move, topK int) {
	report := analysis.MineNGrams(moves, 2, 6, topK)
	if len(report) == 0 {
		return
	}
	fmt.Fprintln(w, "Repeated patterns:")
	for n := 2; n <= 6; n++ {
		for _, g := range report[n] {
			fmt.Fprintf(w, "  %-24s x%d\n", g.Text, g.Count)
		}
	}
}

func formatDuration(ms *int64) string {
	if ms == nil {
		return "-"
	}
	d := time.Duration(*ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}
