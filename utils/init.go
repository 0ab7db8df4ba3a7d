package utils

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

type options struct {
	maxIterations uint
	task          string
	config        string
	outputFormat  string
	imageFormat   string
	output        string
	model         string
	logLevel      string
	logicalShr    bool
	noColorize    bool
	verbose       bool
}

const (
	_EVAL = iota
	_TRACE
	_DOT
)

func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}

var task = []struct{ flag, explanation string }{{
	"eval",
	"Interpret the script and print the final value of every variable",
}, {
	"trace",
	"Interpret the script and print the value of every variable after each statement",
}, {
	"dot",
	"Interpret the script and render the final value of every variable as a graph",
}}

var opts = &options{}

type optInterface struct{}

type taskInterface struct{}

func Opts() optInterface {
	return optInterface{}
}

func (optInterface) NoColorize() bool {
	return opts.noColorize
}

// SetNoColorize overrides colorization, e.g. for golden tests.
func (optInterface) SetNoColorize(b bool) {
	opts.noColorize = b
}

func (optInterface) MaxIterations() int {
	return int(opts.maxIterations)
}
func (optInterface) OutputFormat() string {
	return opts.outputFormat
}
func (optInterface) ImageFormat() string {
	return opts.imageFormat
}
func (optInterface) Output() string {
	return opts.output
}
func (optInterface) Model() string {
	return opts.model
}
func (optInterface) LogLevel() string {
	return opts.logLevel
}
func (optInterface) LogicalShr() bool {
	return opts.logicalShr
}
func (optInterface) Verbose() bool {
	return opts.verbose
}
func (optInterface) Task() taskInterface {
	return taskInterface{}
}
func (taskInterface) IsEval() bool {
	return opts.task == task[_EVAL].flag
}
func (taskInterface) IsTrace() bool {
	return opts.task == task[_TRACE].flag
}
func (taskInterface) IsDot() bool {
	return opts.task == task[_DOT].flag
}

func init() {
	taskFlag := "\n"
	for _, task := range task {
		taskFlag += task.flag + " -- " + task.explanation + "\n"
	}
	taskFlag += "\n"

	flag.StringVar(&(opts.task), "task", task[_EVAL].flag, "Set the task to do during execution. Options:"+taskFlag)
	flag.StringVar(&(opts.config), "config", "", "read engine, type model and interpreter settings from a TOML file")
	flag.StringVar(&(opts.outputFormat), "format", "text", "output format [text | yaml]")
	flag.StringVar(&(opts.imageFormat), "image", "dot", "graph output file format [dot | svg | png | jpg | ...]")
	flag.StringVar(&(opts.output), "o", "", "graph output file (defaults to standard output for dot)")
	flag.StringVar(&(opts.model), "model", "LP64", "C data model [ILP32 | LP64 | LLP64]")
	flag.StringVar(&(opts.logLevel), "log-level", "warning", "logrus level of interpreter events")
	flag.BoolVar(&(opts.logicalShr), "logical-shr", false, "right shifts of freshly built values are logical")
	flag.BoolVar(&(opts.noColorize), "no-colorize", false, "Disable pretty printer colorization")
	flag.BoolVar(&(opts.verbose), "verbose", false, "enable verbose output")
	flag.UintVar(&(opts.maxIterations), "max-iterations", 32, "bound on loop fixpoint iterations before giving up precision")

	// Set up logging
	log.SetFlags(log.Ltime | log.Lshortfile)
}

// fileConfig is the layout of the -config TOML file.
type fileConfig struct {
	Engine struct {
		LogicalShr *bool `toml:"logical_shr"`
	} `toml:"engine"`
	Types struct {
		Model *string `toml:"model"`
	} `toml:"types"`
	Interp struct {
		MaxIterations *uint `toml:"max_iterations"`
	} `toml:"interp"`
}

// loadConfig applies the settings of a TOML file to every option not set
// explicitly on the command line.
func loadConfig(path string) error {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if v := cfg.Engine.LogicalShr; v != nil && !set["logical-shr"] {
		opts.logicalShr = *v
	}
	if v := cfg.Types.Model; v != nil && !set["model"] {
		opts.model = *v
	}
	if v := cfg.Interp.MaxIterations; v != nil && !set["max-iterations"] {
		opts.maxIterations = *v
	}
	return nil
}

func ParseArgs() {
	// Calling flag.Parse in init messes up unit tests.
	// See https://stackoverflow.com/questions/60235896/flag-provided-but-not-defined-test-v
	flag.Parse()

	validTask := false
	for _, task := range task {
		if task.flag == opts.task {
			validTask = true
			break
		}
	}

	if !validTask {
		log.Fatalf("Value \"%s\" is not valid for -task", opts.task)
	}

	if opts.outputFormat != "text" && opts.outputFormat != "yaml" {
		log.Fatalf("Value \"%s\" is not valid for -format", opts.outputFormat)
	}

	if opts.config != "" {
		if err := loadConfig(opts.config); err != nil {
			log.Fatalln(err)
		}
	}

	// Escape codes only make sense on a terminal, and not in machine readable output.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) ||
		opts.outputFormat == "yaml" {
		opts.noColorize = true
	}
}

// ScriptPath returns the script given as the first non-flag argument, or
// "-" for standard input.
func ScriptPath() string {
	if args := flag.Args(); len(args) >= 1 {
		return args[0]
	}
	return "-"
}

func (optInterface) OnVerbose(do func()) {
	if Opts().Verbose() {
		do()
	}
}
