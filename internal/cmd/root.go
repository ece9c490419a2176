package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/lsf/internal/config"
	"github.com/harrison/lsf/internal/display"
	"github.com/harrison/lsf/internal/filter"
	"github.com/harrison/lsf/internal/logger"
	"github.com/harrison/lsf/internal/record"
	"github.com/harrison/lsf/internal/scalar"
	"github.com/harrison/lsf/internal/shell"
	"github.com/harrison/lsf/internal/traverse"
)

// Version is injected at build time via -ldflags
var Version = "1.0"

// newRunner builds the runner for --execute commands. Tests replace it.
var newRunner = func(cmd *cobra.Command) shell.Runner {
	return &shell.ShellRunner{Stdin: cmd.InOrStdin(), Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
}

const helpNotes = `
FIELDS is a comma-separated list of one or more of these words:
  %s
or just the first letter of each word without commas (e.g. "-f Mode,size,name"
is equivalent to "-f Msn"). The default value for FIELDS is "%s".

TIME_FIELDS is like FIELDS, but only uses the words: atime,mtime,ctime.

FILETYPES is like FIELDS, but uses the words: %s.

FILESIZE is a number optionally followed by a letter indicating units
(one of b[locks],k[ilobytes],m[egabytes],g[igabytes]).

DATETIME values may be a number followed by a letter (one of m[inutes],
h[ours],d[ays],w[eeks],y[ears]), relative to now ('2w' means two weeks ago),
or a date and optional time ('Jul 4 2014' or 'Jul 4 2014 09:51').

Preceding the value for an argument with a plus '+' character inverts the
comparison:
  -e +FILETYPES = INCLUDE only specified file types
  -n, -p or -r +REGEX = NOT matching the specified regular expression
  -u or -g +VALUE = NOT owned by the specified UIDs or GIDs
  -S +FIELDS = sort in DESCENDING order

You may set environment variable LSF_OPTIONS to a string containing any
options you want to set by default.`

// rootOptions holds state built while flags are parsed.
type rootOptions struct {
	sess    *scalar.Session
	filters *filter.Set
}

// NewRootCommand creates and returns the root cobra command for lsf
func NewRootCommand() *cobra.Command {
	sess := scalar.NewSession()
	opts := &rootOptions{sess: sess, filters: filter.NewSet(sess)}

	cmd := &cobra.Command{
		Use:   "lsf [options] [path ...]",
		Short: "lsf (ls + find utility)",
		Long: fmt.Sprintf(`lsf lists files like ls and selects them like find.

Paths default to the current directory. Entries can be filtered by owner,
size, age, type, name or an expression, sorted on any field, and passed one
at a time to a shell command.
`+helpNotes,
			strings.Join(record.FieldWords(), ","), config.DefaultFields, strings.Join(record.TypeWords, ",")),
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	// options end at the first path
	flags.SetInterspersed(false)

	flags.BoolP("all", "A", false, "show all files (i.e. include hidden files)")
	flags.BoolP("debug", "D", false, "debug mode (shows why files were excluded from listing)")
	flags.BoolP("directory", "d", false, "list directory entries instead of their contents")
	flags.StringP("fields", "f", "", "list of FIELDS to display (see definition of FIELDS below)")
	flags.BoolP("longtimes", "l", false, "display times in long format (month day year time)")
	flags.BoolP("merge", "M", false, "merge directories together before applying sort")
	flags.BoolP("quiet", "q", false, "only print 1 line per file (no file counts, etc.)")
	flags.BoolP("recursive", "R", false, "recurse into subdirectories")
	flags.StringP("sort", "S", "", "specify sort FIELDS (e.g. -Ssm = sort by size then mtime)")
	flags.StringP("time", "t", "", "specify TIME_FIELDS to display (default is 'mtime')")
	flags.StringP("execute", "x", "", "execute COMMAND for each file using '{}' as placeholder; start COMMAND with '+' to suppress prompting")
	flags.String("config", "", "Path to config file (default: $LSF_CONFIG or ~/.config/lsf/config.yaml)")
	flags.String("log-file", "", "append diagnostics to FILE")
	flags.String("log-level", "", "diagnostic verbosity (trace, debug, info, warn, error)")
	flags.String("color", "", "color output: auto, always or never")
	addPredicateFlags(flags, opts.filters)

	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	return cmd
}

// loadConfig reads the config file and applies the flags that were given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	if configPath == "" {
		var err error
		if configPath, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}
	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	cfg.MergeWithFlags(config.Flags{
		All:       boolFlag("all"),
		Recursive: boolFlag("recursive"),
		Directory: boolFlag("directory"),
		Merge:     boolFlag("merge"),
		Quiet:     boolFlag("quiet"),
		Debug:     boolFlag("debug"),
		LongTimes: boolFlag("longtimes"),
		Fields:    stringFlag("fields"),
		Time:      stringFlag("time"),
		Sort:      stringFlag("sort"),
		LogLevel:  stringFlag("log-level"),
		LogFile:   stringFlag("log-file"),
		Color:     stringFlag("color"),
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the diagnostic logger: stderr, plus the log file when
// one is configured.
func newLogger(cmd *cobra.Command, cfg *config.Config) (logger.Logger, error) {
	level := cfg.LogLevel
	if cfg.Debug && level != "trace" {
		level = "debug"
	}

	console := logger.NewConsoleLogger(cmd.ErrOrStderr(), level)
	switch display.ColorMode(cfg.Color) {
	case display.ColorAlways:
		console.SetColor(true)
	case display.ColorNever:
		console.SetColor(false)
	}
	if cfg.LogFile == "" {
		return console, nil
	}

	file, err := logger.NewFileLogger(cfg.LogFile, level, cmd.Flags().Args())
	if err != nil {
		return nil, err
	}
	return logger.Multi{console, file}, nil
}

func runList(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts.sess.SetLongTimes(cfg.LongTimes)

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	reporter := logger.NewReporter(log)

	fields, err := cfg.DisplayFields()
	if err != nil {
		return err
	}
	sortSpec, err := cfg.SortSpec()
	if err != nil {
		return err
	}
	colorMode, err := display.ParseColorMode(cfg.Color)
	if err != nil {
		return err
	}

	printer := display.NewPrinter(cmd.OutOrStdout(), opts.sess, display.Options{
		Fields: fields,
		Quiet:  cfg.EffectiveQuiet(),
		Merge:  cfg.Merge,
		Color:  colorMode,
	})

	var handler traverse.Handler = printer
	if text, _ := cmd.Flags().GetString("execute"); text != "" {
		command, err := shell.Parse(text)
		if err != nil {
			return err
		}
		command.Bind(cmd.InOrStdin(), cmd.OutOrStdout(), newRunner(cmd))
		handler = &executingHandler{Handler: printer, ctx: cmd.Context(), command: command, log: log}
	}

	engineCfg := traverse.Config{
		Options: traverse.Options{
			All:           cfg.All,
			Recursive:     cfg.Recursive,
			DirectoryOnly: cfg.Directory,
			Merge:         cfg.Merge,
		},
		Filters: opts.filters,
		Sort:    sortSpec,
		Handler: handler,
		Sink:    reporter,
	}
	if cfg.Debug {
		engineCfg.Debug = reporter
	}
	log.LogTrace(fmt.Sprintf("fields %s, sort %s, %d filters", record.Letters(fields), sortSpec.Letters(), opts.filters.Len()))
	for _, p := range opts.filters.Predicates() {
		log.LogTrace("filter " + p.String())
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	grand, groups, err := traverse.New(engineCfg).Run(cmd.Context(), paths)
	if errors.Is(err, shell.ErrQuit) {
		return nil
	}
	if err != nil {
		return err
	}
	return printer.Finish(grand, groups)
}
