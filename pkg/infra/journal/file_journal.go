package journal

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/quintet-io/matchforge/pkg/domain/matchmaking/entities"
)

// FileJournal is the local append-only fallback sink, grounded on the
// original prototype's MatchPersistence writer: one JSON line per match,
// flushed immediately so a crash loses at most the in-flight write.
type FileJournal struct {
	mu   sync.Mutex
	path string
	file *os.File
	w    *bufio.Writer
}

func NewFileJournal(path string) (*FileJournal, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileJournal{path: path, file: f, w: bufio.NewWriter(f)}, nil
}

func (j *FileJournal) Append(ctx context.Context, match entities.Match) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	line, err := json.Marshal(toRecord(match))
	if err != nil {
		return err
	}

	if _, err := j.w.Write(line); err != nil {
		return err
	}
	if err := j.w.WriteByte('\n'); err != nil {
		return err
	}
	return j.w.Flush()
}

func (j *FileJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	_ = j.w.Flush()
	return j.file.Close()
}
