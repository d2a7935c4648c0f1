package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/alttpo/adn"
	"github.com/alttpo/adn/config"
	"github.com/alttpo/adn/convert"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

type mode int

const (
	modeDump mode = iota
	modeTokens
	modeFormat
	modeJSON
)

type options struct {
	configPath    string
	tokens        bool
	format        bool
	json          bool
	strip         bool
	maxDepth      int
	noColor       bool
	logLevel      string
	cfg           config.Config
	selectedModes int
}

func (o options) mode() mode {
	switch {
	case o.tokens:
		return modeTokens
	case o.format:
		return modeFormat
	case o.json:
		return modeJSON
	}
	return modeDump
}

func parseFlags(fs *flag.FlagSet, args []string) (o options, err error) {
	fs.StringVar(&o.configPath, "config", "", "Path to a YAML config file")
	fs.BoolVar(&o.tokens, "tokens", false, "Print the token stream instead of the element tree")
	fs.BoolVar(&o.format, "fmt", false, "Re-render the input as ADN text")
	fs.BoolVar(&o.json, "json", false, "Treat the input as JSON (or YAML) and convert it to ADN")
	fs.BoolVar(&o.strip, "strip-comments", false, "Drop comments from the parsed tree")
	fs.IntVar(&o.maxDepth, "max-depth", 0, "Maximum collection nesting depth (0 for the default)")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	if err = fs.Parse(args); err != nil {
		return
	}

	o.cfg = config.Default()
	if o.configPath != "" {
		var cfg *config.Config
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return o, errors.Wrapf(err, "loading %s", o.configPath)
		}
		o.cfg = *cfg
	}

	// explicitly set flags win over the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strip-comments":
			o.cfg.StripComments = o.strip
		case "max-depth":
			o.cfg.MaxDepth = o.maxDepth
		case "no-color":
			o.cfg.Color = !o.noColor
		case "log-level":
			o.cfg.LogLevel = o.logLevel
		case "tokens", "fmt", "json":
			o.selectedModes++
		}
	})
	if o.selectedModes > 1 {
		return o, errors.New("-tokens, -fmt and -json are mutually exclusive")
	}
	return o, o.cfg.Validate()
}

func main() {
	fs := flag.NewFlagSet("adn", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: adn [flags] [file ...]\n\nReads ADN (or JSON with -json) from the files, or stdin when none are given.\n\n")
		fs.PrintDefaults()
	}

	o, err := parseFlags(fs, os.Args[1:])
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "adn"})
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	level, err := log.ParseLevel(o.cfg.LogLevel)
	if err != nil {
		logger.Fatal("invalid log level", "level", o.cfg.LogLevel, "error", err)
	}
	logger.SetLevel(level)
	color.NoColor = color.NoColor || !o.cfg.Color

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	faulty := false
	for _, path := range paths {
		ok, err := run(o, path, os.Stdout, logger)
		if err != nil {
			logger.Error("failed", "input", path, "error", err)
			os.Exit(1)
		}
		faulty = faulty || !ok
	}
	if faulty {
		os.Exit(1)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// run processes one input and reports whether it was free of faults.
func run(o options, path string, w io.Writer, logger *log.Logger) (ok bool, err error) {
	data, err := readInput(path)
	if err != nil {
		return false, errors.Wrap(err, "reading input")
	}
	return process(o, path, data, w, logger)
}

func process(o options, name string, data []byte, w io.Writer, logger *log.Logger) (ok bool, err error) {
	if o.mode() == modeJSON {
		var text string
		text, err = convert.ToText(data)
		if err != nil {
			return false, err
		}
		logger.Debug("converted", "input", name, "bytes", len(data))
		fmt.Fprintln(w, text)
		return true, nil
	}

	tokens := adn.Lex([]rune(string(data)))
	logger.Debug("lexed", "input", name, "tokens", len(tokens))

	if o.mode() == modeTokens {
		dumpTokens(w, tokens)
		ok = true
		for _, t := range tokens {
			if t.Kind == adn.TokenError {
				logger.Warn("lexical fault", "input", name, "fault", t.Fault.String(), "text", string(t.Text))
				ok = false
			}
		}
		return ok, nil
	}

	elements := o.cfg.Parser().ParseAll(tokens)
	if o.cfg.StripComments {
		elements = adn.StripComments(elements)
	}
	logger.Debug("parsed", "input", name, "forms", len(elements))

	ok = true
	for i, e := range elements {
		if e.Faulty() {
			logger.Warn("form has faults", "input", name, "form", i, "kind", e.Kind.String(), "fault", e.Fault.String())
			ok = false
		}
	}

	if o.mode() == modeFormat {
		fmt.Fprintln(w, adn.Format(elements))
	} else {
		dumpElements(w, elements)
	}
	return ok, nil
}
