package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Record is one committed document state. The journal is the durable form of
// the store: replaying all records in order rebuilds it exactly.
type Record struct {
	Table   string          `json:"table"`
	ObjID   string          `json:"obj_id"`
	Deleted bool            `json:"deleted,omitempty"`
	Data    json.RawMessage `json:"data"`
}

type Journal interface {
	Append(records ...Record) error
	Replay(apply func(rec Record) error) error
}

// NopJournal discards appends and replays nothing. Used by tests and by
// tooling that populates a store manually.
type NopJournal struct{}

func (NopJournal) Append(...Record) error              { return nil }
func (NopJournal) Replay(func(rec Record) error) error { return nil }

// FileJournal is an append-only JSON-lines journal. All records of one
// transaction are written in a single buffered flush.
type FileJournal struct {
	mu   sync.Mutex
	path string
	file *os.File
}

func OpenFileJournal(path string) (*FileJournal, error) {
	if path == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &FileJournal{path: path, file: file}, nil
}

func (j *FileJournal) Append(records ...Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	buf := bufio.NewWriter(j.file)
	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal journal record: %w", err)
		}
		if _, err := buf.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("append journal record: %w", err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flush journal: %w", err)
	}
	return j.file.Sync()
}

func (j *FileJournal) Replay(apply func(rec Record) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open journal for replay: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return fmt.Errorf("journal line %d: %w", line, err)
		}
		if err := apply(rec); err != nil {
			return fmt.Errorf("journal line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	return nil
}

func (j *FileJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
