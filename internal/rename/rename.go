// Package rename implements the batch renamer: it snapshots a directory,
// plans every rename up front, then applies the plan one entry at a time
// without overwriting anything.
package rename

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/mcdonaldj/renamer/internal/ports"
)

// tempPrefix marks the intermediate name used when the filesystem treats
// source and target as the same file.
const tempPrefix = ".renamer-tmp-"

// Renamer applies naming transforms to a single directory.
type Renamer struct {
	FS ports.FileSystem

	// DryRun plans and checks for collisions but issues no rename.
	DryRun bool
}

// New creates a Renamer backed by fsys.
func New(fsys ports.FileSystem) *Renamer {
	return &Renamer{FS: fsys}
}

// Plan builds the rename plan for dir without touching the filesystem.
func (r *Renamer) Plan(dir string, t Transform) (*Plan, error) {
	return BuildPlan(r.FS, dir, t)
}

// Run plans and applies t to the entries of dir. A returned error is
// fatal (*DirectoryError or *PlanError) and means nothing was renamed;
// per-entry failures are reported in the results instead.
func (r *Renamer) Run(dir string, t Transform) ([]Result, error) {
	p, err := r.Plan(dir, t)
	if err != nil {
		return nil, err
	}
	return r.Apply(p), nil
}

// Apply executes p in order. A failing step does not stop the batch.
func (r *Renamer) Apply(p *Plan) []Result {
	var view *dryRunView
	if r.DryRun {
		view = newDryRunView()
	}

	results := make([]Result, 0, len(p.Steps))
	for _, s := range p.Steps {
		results = append(results, r.applyStep(p.Dir, s, view))
	}
	return results
}

// dryRunView tracks the names earlier planned steps would free and claim,
// so a dry run sees the directory as the real run would at each step.
type dryRunView struct {
	freed   map[string]bool
	claimed map[string]bool
}

func newDryRunView() *dryRunView {
	return &dryRunView{
		freed:   make(map[string]bool),
		claimed: make(map[string]bool),
	}
}

func (v *dryRunView) move(oldName, newName string) {
	v.freed[oldName] = true
	delete(v.claimed, oldName)
	v.claimed[newName] = true
	delete(v.freed, newName)
}

func (r *Renamer) applyStep(dir string, s Step, view *dryRunView) Result {
	res := Result{Old: s.Old, New: s.New}
	if !s.Changed() {
		res.Outcome = Unchanged
		return res
	}

	fail := func(err error) Result {
		res.Outcome = Failed
		res.Err = err
		return res
	}

	oldPath := filepath.Join(dir, s.Old)
	newPath := filepath.Join(dir, s.New)

	srcInfo, err := r.FS.Lstat(oldPath)
	if err != nil {
		return fail(&RenameError{Old: s.Old, New: s.New, Err: err})
	}

	if view != nil {
		switch {
		case view.claimed[s.New]:
			return fail(&CollisionError{Old: s.Old, New: s.New})
		case view.freed[s.New]:
			view.move(s.Old, s.New)
			res.Outcome = Planned
			return res
		}
	}

	dstInfo, err := r.FS.Lstat(newPath)
	sameFile := false
	switch {
	case err == nil:
		if !r.FS.SameFile(srcInfo, dstInfo) {
			return fail(&CollisionError{Old: s.Old, New: s.New})
		}
		// Case- or normalization-insensitive filesystem: the target
		// resolves to the source itself.
		sameFile = true
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fail(&RenameError{Old: s.Old, New: s.New, Err: err})
	}

	if view != nil {
		view.move(s.Old, s.New)
		res.Outcome = Planned
		return res
	}

	if sameFile {
		err = r.renameViaTemp(dir, oldPath, newPath, s.New)
	} else {
		err = r.FS.Rename(oldPath, newPath)
	}
	if err != nil {
		return fail(&RenameError{Old: s.Old, New: s.New, Err: err})
	}
	res.Outcome = Renamed
	return res
}

// renameViaTemp renames through an intermediate name, since a direct
// rename is a no-op when the filesystem considers both names equal.
func (r *Renamer) renameViaTemp(dir, oldPath, newPath, newName string) error {
	tempPath := filepath.Join(dir, tempPrefix+newName)
	_, err := r.FS.Lstat(tempPath)
	switch {
	case err == nil:
		return &fs.PathError{Op: "rename", Path: tempPath, Err: fs.ErrExist}
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	if err := r.FS.Rename(oldPath, tempPath); err != nil {
		return err
	}
	if err := r.FS.Rename(tempPath, newPath); err != nil {
		// Put the source back so a failed step leaves it untouched.
		if rbErr := r.FS.Rename(tempPath, oldPath); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return nil
}
