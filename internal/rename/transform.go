package rename

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/text/unicode/norm"
)

// Mode selects a naming transformation.
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeNormalize  Mode = "normalize"
)

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSequential, ModeNormalize:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want %s or %s)", s, ModeSequential, ModeNormalize)
}

// Entry is a name in a directory snapshot. IsDir is also set for
// symlinks that point at a directory.
type Entry struct {
	Name  string
	IsDir bool
}

// Transform computes target names for a directory snapshot. It sees the
// whole snapshot at once so index-based schemes stay consistent.
type Transform interface {
	Mode() Mode

	// Steps returns one step per entry the transform selects, in the
	// order they should be applied. entries are sorted by name.
	Steps(entries []Entry) []Step

	// Unique reports whether targets are distinct by construction. Plans
	// from such transforms are rejected outright when they are not.
	Unique() bool
}

// Sequential renames files matching *.<Ext> to <Prefix>_<NNN>.<Ext>.
// Build it with NewSequential.
type Sequential struct {
	Prefix string
	Ext    string

	match glob.Glob
}

// NewSequential returns a Sequential transform. ext may carry a leading dot.
func NewSequential(prefix, ext string) (*Sequential, error) {
	ext = strings.TrimPrefix(ext, ".")
	if prefix == "" {
		return nil, fmt.Errorf("prefix must not be empty")
	}
	if ext == "" {
		return nil, fmt.Errorf("extension must not be empty")
	}
	if strings.ContainsAny(prefix, `/\`) || strings.ContainsAny(ext, `/\`) {
		return nil, fmt.Errorf("prefix and extension must not contain path separators")
	}

	g, err := glob.Compile("*." + glob.QuoteMeta(ext))
	if err != nil {
		return nil, fmt.Errorf("compiling extension filter: %w", err)
	}
	return &Sequential{Prefix: prefix, Ext: ext, match: g}, nil
}

func (s *Sequential) Mode() Mode   { return ModeSequential }
func (s *Sequential) Unique() bool { return true }

// Steps numbers the matching regular files in the order given.
func (s *Sequential) Steps(entries []Entry) []Step {
	var names []string
	for _, e := range entries {
		if !e.IsDir && s.match.Match(e.Name) {
			names = append(names, e.Name)
		}
	}

	width := IndexWidth(len(names))
	steps := make([]Step, len(names))
	for i, name := range names {
		steps[i] = Step{Old: name, New: s.Name(i+1, width)}
	}
	return steps
}

// Name returns the target for 1-based index i padded to width digits.
func (s *Sequential) Name(i, width int) string {
	return fmt.Sprintf("%s_%0*d.%s", s.Prefix, width, i, s.Ext)
}

// IndexWidth is the zero-padding width for count entries: at least 3,
// wider when count needs more digits.
func IndexWidth(count int) int {
	if w := len(strconv.Itoa(count)); w > 3 {
		return w
	}
	return 3
}

// Normalize renames entries to their NFC (composed) Unicode form.
type Normalize struct{}

func (Normalize) Mode() Mode   { return ModeNormalize }
func (Normalize) Unique() bool { return false }

// Steps maps every entry, files and directories alike, to its NFC form.
func (Normalize) Steps(entries []Entry) []Step {
	steps := make([]Step, len(entries))
	for i, e := range entries {
		steps[i] = Step{Old: e.Name, New: NormalizeName(e.Name)}
	}
	return steps
}

// NormalizeName returns name in Unicode normalization form C.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}
