package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

func run(id string) model.RunRecord {
	return model.RunRecord{ID: id, Script: model.ScriptCaissonSimple, Status: model.RunSucceeded}
}

func TestJournalRecordAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphidesk", "runs.json")

	j, err := OpenJournal(path)
	require.NoError(t, err)
	assert.Empty(t, j.Runs())

	require.NoError(t, j.Record(run("a")))
	require.NoError(t, j.Record(run("b")))

	reopened, err := OpenJournal(path)
	require.NoError(t, err)
	runs := reopened.Runs()
	require.Len(t, runs, 2)
	assert.Equal(t, "a", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}

func TestJournalIsBounded(t *testing.T) {
	j, err := OpenJournal(filepath.Join(t.TempDir(), "runs.json"))
	require.NoError(t, err)

	for i := 0; i < MaxJournalEntries+15; i++ {
		require.NoError(t, j.Record(run(fmt.Sprintf("r%03d", i))))
	}

	runs := j.Runs()
	require.Len(t, runs, MaxJournalEntries)
	assert.Equal(t, "r015", runs[0].ID)
	assert.Equal(t, fmt.Sprintf("r%03d", MaxJournalEntries+14), runs[len(runs)-1].ID)
}

func TestJournalLast(t *testing.T) {
	j, err := OpenJournal(filepath.Join(t.TempDir(), "runs.json"))
	require.NoError(t, err)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, j.Record(run(id)))
	}

	last := j.Last(2)
	require.Len(t, last, 2)
	assert.Equal(t, "c", last[0].ID)
	assert.Equal(t, "b", last[1].ID)
	assert.Len(t, j.Last(0), 3)
	assert.Len(t, j.Last(10), 3)
}

func TestJournalClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	j, err := OpenJournal(path)
	require.NoError(t, err)
	require.NoError(t, j.Record(run("a")))

	require.NoError(t, j.Clear())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestOpenJournalCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0644))

	_, err := OpenJournal(path)
	assert.Error(t, err)
}

func TestJournalConcurrentRecord(t *testing.T) {
	j, err := OpenJournal(filepath.Join(t.TempDir(), "runs.json"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, j.Record(run(fmt.Sprintf("c%d", i))))
		}(i)
	}
	wg.Wait()
	assert.Len(t, j.Runs(), 20)
}
