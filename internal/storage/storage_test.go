package storage

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubie"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.MigrateUp())
	return db
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	v, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)

	require.NoError(t, db.MigrateUp())
	v, err = db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)

	id, err := sessions.Create("practice", "R U F'")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := sessions.Get(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.SessionID)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "practice", *got.Notes)
	assert.Nil(t, got.EndedAt)

	_, ok, err := got.Snapshot()
	require.NoError(t, err)
	assert.False(t, ok)

	scramble, err := got.Scramble()
	require.NoError(t, err)
	assert.Equal(t, []cubie.Move{cubie.R, cubie.U, cubie.FPrime}, scramble)

	final := cubie.Solved()
	require.NoError(t, final.ApplyMove(cubie.D))
	require.NoError(t, sessions.End(id, final))

	got, err = sessions.Get(id)
	require.NoError(t, err)
	require.NotNil(t, got.EndedAt)
	require.NotNil(t, got.DurationMs)
	require.NotNil(t, got.FinalPhase)
	assert.Equal(t, "down_cross", *got.FinalPhase)

	snap, ok, err := got.Snapshot()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, final, snap)
}

func TestSessionGetMissing(t *testing.T) {
	db := openTestDB(t)
	got, err := NewSessionRepository(db).Get("no-such-session")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionEndRejectsInvalidState(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	id, err := sessions.Create("", "")
	require.NoError(t, err)

	bad := cubie.Solved()
	bad.EdgeOrient[cubie.UF] = 1
	assert.ErrorIs(t, sessions.End(id, bad), cubie.ErrInvalidState)

	assert.Error(t, sessions.End("no-such-session", cubie.Solved()))
}

func TestSessionListNewestFirst(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := sessions.Create("", "")
		require.NoError(t, err)
		ids = append(ids, id)
	}

	list, err := sessions.List(10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].SessionID)
	assert.Equal(t, ids[0], list[2].SessionID)

	list, err = sessions.List(2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	last, err := sessions.GetLast()
	require.NoError(t, err)
	assert.Equal(t, ids[2], last.SessionID)
}

func TestMovesRoundTrip(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSessionRepository(db).Create("", "")
	require.NoError(t, err)

	moves := NewMoveRepository(db)
	_, err = moves.Create(id, 0, 0, cubie.R)
	require.NoError(t, err)

	batch := []TimedMove{
		{Move: cubie.U, TsMs: 120},
		{Move: cubie.RPrime, TsMs: 250},
		{Move: cubie.UPrime, TsMs: 400},
	}
	require.NoError(t, moves.CreateBatch(id, batch, 1))

	n, err := moves.Count(id)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	records, err := moves.GetBySession(id)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "R'", records[2].Notation)
	assert.Equal(t, int64(250), records[2].TsMs)

	got, err := ToMoves(records)
	require.NoError(t, err)
	assert.Equal(t, cubie.SexyMove, got)
}

func TestMovesRejectInvalid(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSessionRepository(db).Create("", "")
	require.NoError(t, err)
	moves := NewMoveRepository(db)

	_, err = moves.Create(id, 0, 0, cubie.Move(18))
	assert.ErrorIs(t, err, cubie.ErrInvalidMove)

	err = moves.CreateBatch(id, []TimedMove{{Move: cubie.R}, {Move: cubie.Move(30)}}, 0)
	assert.ErrorIs(t, err, cubie.ErrInvalidMove)

	n, err := moves.Count(id)
	require.NoError(t, err)
	assert.Zero(t, n)

	// Foreign key: moves need an existing session.
	_, err = moves.Create("no-such-session", 0, 0, cubie.R)
	assert.Error(t, err)
}

func TestBatchRollsBackOnDuplicateIndex(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSessionRepository(db).Create("", "")
	require.NoError(t, err)
	moves := NewMoveRepository(db)

	err = moves.CreateBatch(id, []TimedMove{{Move: cubie.R}, {Move: cubie.U}}, 0)
	require.NoError(t, err)

	err = moves.CreateBatch(id, []TimedMove{{Move: cubie.F}, {Move: cubie.D}}, 1)
	assert.Error(t, err)

	n, err := moves.Count(id)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDeleteCascadesToMoves(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	moves := NewMoveRepository(db)

	id, err := sessions.Create("", "")
	require.NoError(t, err)
	require.NoError(t, moves.CreateBatch(id, []TimedMove{{Move: cubie.L}, {Move: cubie.B2}}, 0))

	require.NoError(t, sessions.Delete(id))
	n, err := moves.Count(id)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReplay(t *testing.T) {
	state, err := Replay(cubie.TPerm)
	require.NoError(t, err)

	want := cubie.Solved()
	require.NoError(t, want.Apply(cubie.TPerm...))
	assert.Equal(t, want, state)

	_, err = Replay([]cubie.Move{cubie.R, 99})
	assert.ErrorIs(t, err, cubie.ErrInvalidMove)
}

func TestLoadReplayMatchesSnapshot(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	moves := NewMoveRepository(db)

	scramble := "F2 D' L"
	id, err := sessions.Create("", scramble)
	require.NoError(t, err)

	live := cubie.NewSession()
	require.NoError(t, live.ApplyNotation(scramble))
	live.OnMove(func(m cubie.Move, _ cubie.CubeState) {
		n, err := moves.Count(id)
		require.NoError(t, err)
		_, err = moves.Create(id, n, int64(n*100), m)
		require.NoError(t, err)
	})
	require.NoError(t, live.ApplyNotation("R U R' U'"))
	require.NoError(t, sessions.End(id, live.State()))

	res, err := LoadReplay(db, id)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Len(t, res.Scramble, 3)
	assert.Equal(t, cubie.SexyMove, res.Moves)
	assert.True(t, res.HasSnapshot)
	assert.True(t, res.Matches())
	assert.Equal(t, live.State(), res.State)

	// A tampered log no longer matches the snapshot.
	_, err = moves.Create(id, 4, 500, cubie.B)
	require.NoError(t, err)
	res, err = LoadReplay(db, id)
	require.NoError(t, err)
	assert.False(t, res.Matches())

	res, err = LoadReplay(db, "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestTransaction(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`CREATE TABLE tx_test (v INTEGER)`)
	require.NoError(t, err)

	count := func() int {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tx_test`).Scan(&n))
		return n
	}
	insert := func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO tx_test (v) VALUES (1)`)
		return err
	}

	require.NoError(t, db.Transaction(insert))
	assert.Equal(t, 1, count())

	errBoom := errors.New("boom")
	err = db.Transaction(func(tx *sql.Tx) error {
		require.NoError(t, insert(tx))
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, count())

	assert.PanicsWithValue(t, "boom", func() {
		_ = db.Transaction(func(tx *sql.Tx) error {
			require.NoError(t, insert(tx))
			panic("boom")
		})
	})
	assert.Equal(t, 1, count())
}

func TestDefaultDBPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".cubie", "cubie.db"), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
