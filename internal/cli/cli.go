// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mcdonaldj/renamer/internal/adapters/osfs"
	"github.com/mcdonaldj/renamer/internal/config"
	"github.com/mcdonaldj/renamer/internal/ports"
	"github.com/mcdonaldj/renamer/internal/rename"
	"github.com/mcdonaldj/renamer/internal/report"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitFailures = 1
	ExitUsage    = 2
)

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Injectable dependencies (nil means use defaults)
	FS  ports.FileSystem
	Now func() time.Time

	// Color functions (can be disabled for testing)
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	gray   func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// flags holds raw flag values before they are merged over the config file.
type flags struct {
	configPath string
	noColor    bool
	cfg        config.Config
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
		Args:    os.Args,
		Exit:    os.Exit,
		green:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
		gray:    color.New(color.FgHiBlack).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
	}
}

func (c *CLI) fileSystem() ports.FileSystem {
	if c.FS != nil {
		return c.FS
	}
	return osfs.New()
}

func (c *CLI) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *CLI) disableColor() {
	plain := func(a ...interface{}) string { return fmt.Sprint(a...) }
	c.green, c.yellow, c.cyan, c.gray, c.red = plain, plain, plain, plain, plain
}

// Run executes the CLI with the configured arguments.
func (c *CLI) Run() {
	if code := c.execute(); code != ExitOK {
		c.Exit(code)
	}
}

func (c *CLI) execute() int {
	code := ExitOK
	cmd := c.newCommand(&code)

	// A nil slice makes cobra fall back to os.Args.
	args := []string{}
	if len(c.Args) > 1 {
		args = c.Args[1:]
	}
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(c.Err, "%s %v\n", c.red("error:"), err)
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(c.Err, "Run 'renamer --help' for usage.")
			return ExitUsage
		}
		return ExitFailures
	}
	return code
}

func (c *CLI) newCommand(code *int) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "renamer --dir <path> --mode {sequential|normalize} [--prefix <p>] [--ext <e>]",
		Short: "Batch-rename the entries of one directory",
		Long: `renamer renames the entries of a single directory, never overwriting.

Modes:
  sequential   rename *.<ext> files to <prefix>_<NNN>.<ext> in lexical order
  normalize    rename decomposed Unicode (NFD) names to composed form (NFC)

Each rename is printed as "<old> -> <new>". Failed entries are reported on
standard error and the exit status is 1; usage errors exit with 2.`,
		Version:       c.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &config.UsageError{Msg: fmt.Sprintf("unexpected argument %q", args[0])}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.merge(cmd)
			if err != nil {
				return err
			}
			t, err := cfg.Validate()
			if err != nil {
				return err
			}
			if f.noColor {
				c.disableColor()
			}
			*code = c.runRenamer(cfg, t)
			return nil
		},
	}

	cmd.SetOut(c.Out)
	cmd.SetErr(c.Err)
	cmd.SetVersionTemplate("renamer v{{.Version}}\n")
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &config.UsageError{Msg: err.Error()}
	})

	fl := cmd.Flags()
	fl.StringVar(&f.cfg.Dir, "dir", "", "directory whose entries are renamed (required)")
	fl.StringVar(&f.cfg.Mode, "mode", "", "naming transform: sequential | normalize (required)")
	fl.StringVar(&f.cfg.Prefix, "prefix", "", `name prefix in sequential mode (default "track")`)
	fl.StringVar(&f.cfg.Ext, "ext", "", `extension to number in sequential mode (default "mp3")`)
	fl.BoolVar(&f.cfg.DryRun, "dry-run", false, "show what would be renamed without renaming")
	fl.BoolVarP(&f.cfg.Verbose, "verbose", "v", false, "also report unchanged entries and a summary on stderr")
	fl.StringVar(&f.cfg.Report, "report", "", "write a JSON report of the run to this file")
	fl.StringVar(&f.configPath, "config", "", "read defaults from this YAML file")
	fl.BoolVar(&f.noColor, "no-color", false, "disable colored output")

	return cmd
}

// merge loads the config file, if any, and overlays the flags the user set.
func (f *flags) merge(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("dir") {
		cfg.Dir = f.cfg.Dir
	}
	if fl.Changed("mode") {
		cfg.Mode = f.cfg.Mode
	}
	if fl.Changed("prefix") {
		cfg.Prefix = f.cfg.Prefix
	}
	if fl.Changed("ext") {
		cfg.Ext = f.cfg.Ext
	}
	if fl.Changed("dry-run") {
		cfg.DryRun = f.cfg.DryRun
	}
	if fl.Changed("verbose") {
		cfg.Verbose = f.cfg.Verbose
	}
	if fl.Changed("report") {
		cfg.Report = f.cfg.Report
	}
	return cfg, nil
}

// runRenamer runs the renamer and prints its results. It returns the exit code.
func (c *CLI) runRenamer(cfg *config.Config, t rename.Transform) int {
	dir := cfg.TargetDir()
	if cfg.Verbose {
		fmt.Fprintf(c.Err, "%s %s %s...\n", c.cyan("=>"), t.Mode(), dir)
	}

	r := rename.New(c.fileSystem())
	r.DryRun = cfg.DryRun

	results, err := r.Run(dir, t)
	if err != nil {
		fmt.Fprintf(c.Err, "%s %v\n", c.red("error:"), err)
		// A bad --dir is a usage error; a rejected plan is not.
		var dirErr *rename.DirectoryError
		if errors.As(err, &dirErr) {
			fmt.Fprintln(c.Err, "Run 'renamer --help' for usage.")
			return ExitUsage
		}
		return ExitFailures
	}

	c.printResults(results, cfg.Verbose)

	code := ExitOK
	if !rename.Summarize(results).OK() {
		code = ExitFailures
	}

	if cfg.Report != "" {
		rep := report.New(dir, t.Mode(), cfg.DryRun, results, c.now())
		if err := rep.Save(config.ExpandPath(cfg.Report)); err != nil {
			fmt.Fprintf(c.Err, "%s writing report: %v\n", c.red("error:"), err)
			code = ExitFailures
		}
	}
	return code
}

func (c *CLI) printResults(results []rename.Result, verbose bool) {
	for _, r := range results {
		switch r.Outcome {
		case rename.Renamed:
			fmt.Fprintf(c.Out, "%s %s %s\n", r.Old, c.green("->"), r.New)
		case rename.Planned:
			fmt.Fprintf(c.Out, "%s %s %s %s\n", r.Old, c.yellow("->"), r.New, c.gray("(dry run)"))
		case rename.Failed:
			fmt.Fprintf(c.Err, "%s %s -> %s: %v\n", c.red("error:"), r.Old, r.New, r.Err)
		case rename.Unchanged:
			if verbose {
				fmt.Fprintf(c.Err, "  %s %s\n", c.gray("unchanged:"), c.gray(r.Old))
			}
		}
	}

	if !verbose {
		return
	}
	s := rename.Summarize(results)
	fmt.Fprintf(c.Err, "Done: %s renamed, %s unchanged",
		c.green(fmt.Sprintf("%d", s.Renamed)),
		c.gray(fmt.Sprintf("%d", s.Unchanged)))
	if s.Planned > 0 {
		fmt.Fprintf(c.Err, ", %s planned", c.yellow(fmt.Sprintf("%d", s.Planned)))
	}
	if s.Failed > 0 {
		fmt.Fprintf(c.Err, ", %s failed", c.red(fmt.Sprintf("%d", s.Failed)))
	}
	fmt.Fprintln(c.Err)
}
