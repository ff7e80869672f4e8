package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRuns(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	first := &Run{Model: "abc", Morphemes: 10, Correct: 9, Accuracy: 90}
	require.NoError(t, store.Record(first))
	assert.NotEmpty(t, first.ID)

	second := &Run{
		Model:     "abc",
		Morphemes: 4,
		Correct:   2,
		Accuracy:  50,
		Failures:  []Failure{{1, "unviable", "no viable tag path"}},
	}
	require.NoError(t, store.Record(second))

	runs, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first.ID, runs[0].ID)
	assert.Equal(t, 9, runs[0].Correct)
	assert.InDelta(t, 50.0, runs[1].Accuracy, 1e-9)

	failures, err := store.Failures(second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.Failures, failures)

	failures, err = store.Failures(first.ID)
	require.NoError(t, err)
	assert.Empty(t, failures)
}
