package journal_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
	"github.com/quintet-io/matchforge/pkg/infra/journal"
)

func TestFileJournal_AppendWritesOneLinePerMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.jsonl")

	j, err := journal.NewFileJournal(path)
	require.NoError(t, err)
	defer j.Close()

	match := entities.Match{ID: "m1", Region: entities.RegionNA, Players: []entities.Player{{ID: "p1", MMR: 1000}}}
	require.NoError(t, j.Append(context.Background(), match))
	require.NoError(t, j.Append(context.Background(), match))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	assert.Equal(t, 2, lines)
	assert.Contains(t, string(data), `"match_id":"m1"`)
}

func TestFallbackJournal_UsesSecondaryWhenNoPrimaryConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.jsonl")
	secondary, err := journal.NewFileJournal(path)
	require.NoError(t, err)
	defer secondary.Close()

	fallback := journal.NewFallbackJournal(nil, secondary)

	match := entities.Match{ID: "m1", Region: entities.RegionNA}
	require.NoError(t, fallback.Append(context.Background(), match))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "m1")
}
