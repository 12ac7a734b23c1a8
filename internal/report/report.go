// Package report writes a JSON record of one renamer run.
package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/mcdonaldj/renamer/internal/rename"
)

type Entry struct {
	Old       string `json:"old"`
	New       string `json:"new"`
	Outcome   string `json:"outcome"`
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Counts struct {
	Renamed   int `json:"renamed"`
	Unchanged int `json:"unchanged"`
	Planned   int `json:"planned"`
	Failed    int `json:"failed"`
}

type Report struct {
	Dir       string    `json:"dir"`
	Mode      string    `json:"mode"`
	DryRun    bool      `json:"dry_run"`
	CreatedAt time.Time `json:"created_at"`
	Counts    Counts    `json:"counts"`
	Entries   []Entry   `json:"entries"`
}

func New(dir string, mode rename.Mode, dryRun bool, results []rename.Result, now time.Time) *Report {
	s := rename.Summarize(results)
	r := &Report{
		Dir:       dir,
		Mode:      string(mode),
		DryRun:    dryRun,
		CreatedAt: now,
		Counts: Counts{
			Renamed:   s.Renamed,
			Unchanged: s.Unchanged,
			Planned:   s.Planned,
			Failed:    s.Failed,
		},
		Entries: make([]Entry, 0, len(results)),
	}
	for _, res := range results {
		e := Entry{Old: res.Old, New: res.New, Outcome: res.Outcome.String()}
		if res.Err != nil {
			e.ErrorKind = ErrorKind(res.Err)
			e.Error = res.Err.Error()
		}
		r.Entries = append(r.Entries, e)
	}
	return r
}

// ErrorKind names the class of a per-entry error.
func ErrorKind(err error) string {
	var collision *rename.CollisionError
	var renameErr *rename.RenameError
	switch {
	case errors.As(err, &collision):
		return "collision"
	case errors.As(err, &renameErr):
		return "rename"
	}
	return "unknown"
}

func (r *Report) Save(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
