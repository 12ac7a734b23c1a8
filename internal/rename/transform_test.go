package rename

import (
	"fmt"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"sequential", ModeSequential, false},
		{"normalize", ModeNormalize, false},
		{"Sequential", "", true},
		{"", "", true},
		{"shuffle", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestIndexWidth(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 3},
		{1, 3},
		{999, 3},
		{1000, 4},
		{12345, 5},
	}
	for _, tt := range tests {
		if got := IndexWidth(tt.count); got != tt.want {
			t.Errorf("IndexWidth(%d) = %d, expected %d", tt.count, got, tt.want)
		}
	}
}

func TestNewSequentialValidation(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		ext     string
		wantErr bool
	}{
		{"plain", "bt6", "mp3", false},
		{"leading dot", "bt6", ".mp3", false},
		{"empty prefix", "", "mp3", true},
		{"empty ext", "bt6", "", true},
		{"bare dot", "bt6", ".", true},
		{"slash in prefix", "a/b", "mp3", true},
		{"slash in ext", "bt6", "m/p3", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSequential(tt.prefix, tt.ext)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSequential(%q, %q) error = %v, wantErr %v", tt.prefix, tt.ext, err, tt.wantErr)
			}
		})
	}
}

func TestSequentialSteps(t *testing.T) {
	seq, err := NewSequential("bt6", ".mp3")
	if err != nil {
		t.Fatalf("NewSequential failed: %v", err)
	}

	entries := []Entry{
		{Name: "a.mp3"},
		{Name: "b.mp3"},
		{Name: "c.mp3"},
		{Name: "cover.jpg"},
		{Name: "d.MP3"},
		{Name: "disc2.mp3", IsDir: true},
	}
	steps := seq.Steps(entries)

	want := []Step{
		{Old: "a.mp3", New: "bt6_001.mp3"},
		{Old: "b.mp3", New: "bt6_002.mp3"},
		{Old: "c.mp3", New: "bt6_003.mp3"},
	}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, expected %d: %v", len(steps), len(want), steps)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("steps[%d] = %+v, expected %+v", i, steps[i], want[i])
		}
	}
}

func TestSequentialStepsExtensionIsLiteral(t *testing.T) {
	seq, err := NewSequential("x", "m[p]3")
	if err != nil {
		t.Fatalf("NewSequential failed: %v", err)
	}
	steps := seq.Steps([]Entry{{Name: "a.mp3"}, {Name: "b.m[p]3"}})
	if len(steps) != 1 || steps[0].Old != "b.m[p]3" {
		t.Errorf("extension should match literally, got %v", steps)
	}
}

func TestSequentialStepsWideIndex(t *testing.T) {
	seq, _ := NewSequential("t", "mp3")

	entries := make([]Entry, 1000)
	for i := range entries {
		entries[i] = Entry{Name: fmt.Sprintf("f%04d.mp3", i)}
	}
	steps := seq.Steps(entries)

	if steps[0].New != "t_0001.mp3" {
		t.Errorf("first target = %q, expected %q", steps[0].New, "t_0001.mp3")
	}
	if steps[999].New != "t_1000.mp3" {
		t.Errorf("last target = %q, expected %q", steps[999].New, "t_1000.mp3")
	}

	seen := make(map[string]bool)
	for _, s := range steps {
		if seen[s.New] {
			t.Fatalf("duplicate target %q", s.New)
		}
		seen[s.New] = true
	}
}

func TestNormalizeName(t *testing.T) {
	decomposed := "cafe\u0301.txt"
	composed := "caf\u00e9.txt"

	if got := NormalizeName(decomposed); got != composed {
		t.Errorf("NormalizeName(%q) = %q, expected %q", decomposed, got, composed)
	}
	if got := NormalizeName(composed); got != composed {
		t.Errorf("composed name changed: %q", got)
	}
	if got := NormalizeName("plain.txt"); got != "plain.txt" {
		t.Errorf("ASCII name changed: %q", got)
	}

	once := NormalizeName("A\u030a\u0301ngstro\u0308m")
	if NormalizeName(once) != once {
		t.Error("normalization is not idempotent")
	}
	if !norm.NFC.IsNormalString(once) {
		t.Errorf("%q is not NFC", once)
	}
}

func TestNormalizeSteps(t *testing.T) {
	entries := []Entry{
		{Name: "Mu\u0308nchen", IsDir: true},
		{Name: "plain.txt"},
	}
	steps := Normalize{}.Steps(entries)

	if len(steps) != 2 {
		t.Fatalf("got %d steps, expected 2", len(steps))
	}
	if !steps[0].Changed() || steps[0].New != "M\u00fcnchen" {
		t.Errorf("directory step = %+v", steps[0])
	}
	if steps[1].Changed() {
		t.Errorf("plain name should be unchanged: %+v", steps[1])
	}
}
