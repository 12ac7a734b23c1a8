package rename

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/mcdonaldj/renamer/internal/ports"
)

// Step maps one existing name to its proposed new name.
type Step struct {
	Old string
	New string
}

// Changed reports whether applying the step requires a rename.
func (s Step) Changed() bool {
	return s.Old != s.New
}

// Plan is the full set of renames for one directory, computed before any
// of them is applied.
type Plan struct {
	Dir   string
	Mode  Mode
	Steps []Step
}

// BuildPlan snapshots dir and applies t to every entry. Nothing on disk
// is modified.
func BuildPlan(fsys ports.FileSystem, dir string, t Transform) (*Plan, error) {
	dirEntries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryError{Dir: dir, Err: err}
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		isDir := de.IsDir()
		if de.Type()&fs.ModeSymlink != 0 {
			// A dangling link counts as a file.
			if info, err := fsys.Stat(filepath.Join(dir, de.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		entries = append(entries, Entry{Name: de.Name(), IsDir: isDir})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	p := &Plan{
		Dir:   dir,
		Mode:  t.Mode(),
		Steps: t.Steps(entries),
	}
	if err := p.validate(t.Unique()); err != nil {
		return nil, err
	}
	return p, nil
}

// validate checks that every target is a plain name inside Dir and, when
// unique is set, that no two steps share a target.
func (p *Plan) validate(unique bool) error {
	owners := make(map[string][]string, len(p.Steps))
	for _, s := range p.Steps {
		if s.New == "" || s.New == "." || s.New == ".." || filepath.Base(s.New) != s.New {
			return &PlanError{Target: s.New, Sources: []string{s.Old}, Reason: "not a plain file name"}
		}
		owners[s.New] = append(owners[s.New], s.Old)
	}
	if !unique {
		return nil
	}
	for _, s := range p.Steps {
		if srcs := owners[s.New]; len(srcs) > 1 {
			return &PlanError{Target: s.New, Sources: srcs, Reason: "duplicate target"}
		}
	}
	return nil
}

// Changes counts the steps that need a rename.
func (p *Plan) Changes() int {
	n := 0
	for _, s := range p.Steps {
		if s.Changed() {
			n++
		}
	}
	return n
}
