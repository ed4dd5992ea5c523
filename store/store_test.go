package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/ballz/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ sim.ScoreStore        = (*JSONStore)(nil)
	_ sim.SessionScoreStore = (*JSONStore)(nil)
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	s := NewJSONStore(filepath.Join(t.TempDir(), "scores.json"), nil)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func TestMissingFileIsEmptyHistory(t *testing.T) {
	s := newTestStore(t)
	scores, err := s.LoadHighScores()
	require.NoError(t, err)
	assert.Empty(t, scores)

	_, err = os.Stat(s.Path())
	assert.ErrorIs(t, err, os.ErrNotExist, "reading does not create the file")
}

func TestAppendKeepsOrder(t *testing.T) {
	s := newTestStore(t)
	id := uuid.New()

	require.NoError(t, s.AppendScore(3))
	require.NoError(t, s.AppendSessionScore(id, 7))
	require.NoError(t, s.AppendScore(0))

	scores, err := s.LoadHighScores()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7, 0}, scores)

	records, err := s.Records()
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, records[0].Session)
	assert.Equal(t, id, records[1].Session)
	assert.True(t, records[1].RecordedAt.After(records[0].RecordedAt))

	reopened := NewJSONStore(s.Path(), nil)
	again, err := reopened.LoadHighScores()
	require.NoError(t, err)
	assert.Equal(t, scores, again)

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(s.Path()), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestTopScores(t *testing.T) {
	s := newTestStore(t)
	for _, score := range []int{4, 9, 1, 9, 6, 2, 8} {
		require.NoError(t, s.AppendScore(score))
	}

	top, err := s.TopScores(5)
	require.NoError(t, err)

	got := make([]int, len(top))
	for i, r := range top {
		got[i] = r.Score
	}
	assert.Equal(t, []int{9, 9, 8, 6, 4}, got)
	assert.True(t, top[0].RecordedAt.Before(top[1].RecordedAt), "ties keep insertion order")

	all := Top(nil, 5)
	assert.Empty(t, all)
}

func TestCorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	_, err := s.LoadHighScores()
	assert.ErrorIs(t, err, sim.ErrPersistence)
	assert.ErrorIs(t, s.AppendScore(1), sim.ErrPersistence)
}

func TestNewerVersionRejected(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"version":99,"records":[]}`), 0o644))

	_, err := s.Records()
	assert.ErrorIs(t, err, sim.ErrPersistence)
}

func TestUnwritableDirectory(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "missing", "scores.json"), nil)
	err := s.AppendScore(1)
	assert.ErrorIs(t, err, sim.ErrPersistence)
}

func TestSessionPersistsThroughStore(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AppendScore(5))

	session, err := sim.NewSession(sim.DefaultConfig(400, 800), sim.Deps{Store: s})
	require.NoError(t, err)
	require.NoError(t, session.Start(t.Context()))
	assert.Equal(t, []int{5}, session.HighScores())
	require.NoError(t, session.Exit())

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, session.ID(), records[1].Session)
	assert.Equal(t, 0, records[1].Score)
}
