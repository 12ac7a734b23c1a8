package rename

// Outcome is what happened to a single plan step.
type Outcome int

const (
	// Renamed means the entry was renamed on disk.
	Renamed Outcome = iota
	// Unchanged means the target equals the source; no rename was issued.
	Unchanged
	// Planned means the rename would happen but the run was a dry run.
	Planned
	// Failed means the step hit a CollisionError or RenameError.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Renamed:
		return "renamed"
	case Unchanged:
		return "unchanged"
	case Planned:
		return "planned"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of applying one plan step.
type Result struct {
	Old     string
	New     string
	Outcome Outcome
	Err     error
}

// Summary counts results by outcome.
type Summary struct {
	Renamed   int
	Unchanged int
	Planned   int
	Failed    int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Outcome {
		case Renamed:
			s.Renamed++
		case Unchanged:
			s.Unchanged++
		case Planned:
			s.Planned++
		case Failed:
			s.Failed++
		}
	}
	return s
}

// OK reports whether no step failed.
func (s Summary) OK() bool {
	return s.Failed == 0
}
