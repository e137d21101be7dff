// Package analysis finds repeated move patterns in recorded sessions.
package analysis

import (
	"sort"

	"github.com/SeamusWaldron/cubie"
)

// MaxN is the longest pattern MineNGrams looks for. With one base-18 digit
// per move, keys up to this length fit in a uint64 without collisions.
const MaxN = 15

// NGram is a move sequence that occurs more than once.
type NGram struct {
	Moves  []cubie.Move `json:"-"`
	Text   string       `json:"sequence"`
	Count  int          `json:"count"`
	Starts []int        `json:"starts"`
}

// rollingKey keeps the base-18 value of the last n move codes.
type rollingKey struct {
	n   int
	pow uint64 // 18^(n-1)
	key uint64
	len int
}

func newRollingKey(n int) *rollingKey {
	r := &rollingKey{n: n, pow: 1}
	for i := 0; i < n-1; i++ {
		r.pow *= cubie.NumMoves
	}
	return r
}

// push adds m, dropping the oldest move once the window is full.
// oldest must be the move leaving the window.
func (r *rollingKey) push(m, oldest cubie.Move) {
	if r.len == r.n {
		r.key -= uint64(oldest) * r.pow
	} else {
		r.len++
	}
	r.key = r.key*cubie.NumMoves + uint64(m)
}

func (r *rollingKey) full() bool {
	return r.len == r.n
}

// MineNGrams returns, for each n in [minN, maxN], the topK most frequent
// move sequences of length n that occur at least twice. Overlapping
// occurrences count. Ties keep the sequence seen first. A topK of zero or
// less finds nothing.
func MineNGrams(moves []cubie.Move, minN, maxN, topK int) map[int][]NGram {
	report := make(map[int][]NGram)
	if minN < 1 {
		minN = 1
	}
	if maxN > MaxN {
		maxN = MaxN
	}
	if topK <= 0 {
		return report
	}

	for n := minN; n <= maxN && n <= len(moves); n++ {
		if grams := mineN(moves, n, topK); len(grams) > 0 {
			report[n] = grams
		}
	}
	return report
}

func mineN(moves []cubie.Move, n, topK int) []NGram {
	byKey := make(map[uint64]*NGram)
	var order []*NGram

	rk := newRollingKey(n)
	for i, m := range moves {
		var oldest cubie.Move
		if i >= n {
			oldest = moves[i-n]
		}
		rk.push(m, oldest)
		if !rk.full() {
			continue
		}

		start := i - n + 1
		g, ok := byKey[rk.key]
		if !ok {
			g = &NGram{Moves: moves[start : i+1 : i+1]}
			byKey[rk.key] = g
			order = append(order, g)
		}
		g.Count++
		g.Starts = append(g.Starts, start)
	}

	var repeated []NGram
	for _, g := range order {
		if g.Count >= 2 {
			g.Text = cubie.FormatMoves(g.Moves)
			repeated = append(repeated, *g)
		}
	}

	sort.SliceStable(repeated, func(i, j int) bool {
		return repeated[i].Count > repeated[j].Count
	})
	if len(repeated) > topK {
		repeated = repeated[:topK]
	}
	return repeated
}
