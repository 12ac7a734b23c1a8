package rename

import (
	"fmt"
	"strings"
)

// DirectoryError reports that the target directory does not exist or
// cannot be listed. It is fatal: no rename has been attempted.
type DirectoryError struct {
	Dir string
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("cannot list directory %s: %v", e.Dir, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// PlanError reports a plan that violates its invariants, such as two
// entries mapping to the same target. It is fatal: no rename has been
// attempted.
type PlanError struct {
	Target  string
	Sources []string
	Reason  string
}

func (e *PlanError) Error() string {
	if len(e.Sources) > 0 {
		return fmt.Sprintf("invalid plan: %s: %s (from %s)", e.Target, e.Reason, strings.Join(e.Sources, ", "))
	}
	return fmt.Sprintf("invalid plan: %s: %s", e.Target, e.Reason)
}

// CollisionError reports that the target of a step already exists on disk
// as a different file. The source is left untouched.
type CollisionError struct {
	Old string
	New string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("target %s already exists", e.New)
}

// RenameError reports a filesystem failure while renaming a single entry.
type RenameError struct {
	Old string
	New string
	Err error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("rename failed: %v", e.Err)
}

func (e *RenameError) Unwrap() error { return e.Err }
