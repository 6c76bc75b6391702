package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/phroun/ttree"
)

var version = "dev" // set via -ldflags at build time

// CLIConfig holds configuration loaded from ~/.ttree/cli.toml.
type CLIConfig struct {
	TermBackground   string     `toml:"term_background"`   // "light", "dark", or "auto"
	ApprovedSeverity string     `toml:"approved_severity"` // warning, minor, critical, fatal
	DebugCategories  []string   `toml:"debug_categories"`
	Serializer       Serializer `toml:"serializer"`
}

// Serializer holds the output format settings.
type Serializer struct {
	Indent        string `toml:"indent"`
	SectionMarker string `toml:"section_marker"`
	LineEnd       string `toml:"line_end"`
}

func defaultCLIConfig() CLIConfig {
	return CLIConfig{
		TermBackground:   "auto",
		ApprovedSeverity: "warning",
		Serializer: Serializer{
			Indent:        ttree.DefaultIndent,
			SectionMarker: ttree.DefaultSectionMarker,
			LineEnd:       ttree.DefaultLineEnd,
		},
	}
}

// configFilePath returns the path to ~/.ttree/cli.toml.
func configFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ttree", "cli.toml")
}

// loadCLIConfig loads configuration from the given path, creating the
// file with defaults on first run. Failures fall back to defaults.
func loadCLIConfig(path string) CLIConfig {
	config := defaultCLIConfig()
	if path == "" {
		return config
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		createDefaultConfig(path)
		return config
	}

	if _, err := toml.DecodeFile(path, &config); err != nil {
		fmt.Fprintf(os.Stderr, "ttree: ignoring bad config %s: %v\n", path, err)
		return defaultCLIConfig()
	}
	return config
}

// createDefaultConfig writes the default config file.
func createDefaultConfig(path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return // Graceful failure
	}

	defaultConfig := `# ttree CLI configuration
# This file is automatically created on first run

# Terminal background color for the interactive prompt
# Options: "auto", "dark", "light" (auto assumes dark)
term_background = "auto"

# Faults above this severity abort the current batch
# Options: "warning", "minor", "critical", "fatal"
approved_severity = "warning"

# Debug log categories to enable when running with -debug
# e.g. ["eval", "stack", "io"]
debug_categories = []

[serializer]
indent = "\t"
section_marker = "./section"
line_end = "\n"
`
	_ = os.WriteFile(path, []byte(defaultConfig), 0644)
}

// registerHostCommands supplies the commands whose side effects belong
// to the driver, never the engine: serializing the stack to the console,
// running a host command, and terminating the process.
func registerHostCommands(ev *ttree.Evaluator) {
	ev.RegisterCommand("print", func(ev *ttree.Evaluator) *ttree.Fault {
		if err := ev.PrintStack(os.Stdout); err != nil {
			return &ttree.Fault{
				Message: "writing stack to stdout",
				Level:   ttree.SeverityMinor,
				Cause:   err,
			}
		}
		return nil
	})

	ev.RegisterCommand("system", func(ev *ttree.Evaluator) *ttree.Fault {
		top, fault := ev.Stack().Peek()
		if fault != nil {
			return fault
		}
		leaf, ok := top.(*ttree.Leaf)
		if !ok {
			return &ttree.Fault{
				Message: "branch passed as host command line",
				Level:   ttree.SeverityCritical,
				Cause:   ttree.ErrShapeMismatch,
			}
		}
		cmd := exec.Command("/bin/sh", "-c", leaf.Text)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			ev.Logger().WarnCat(ttree.CatIO, "host command failed: %v", err)
		}
		ev.Stack().Pop()
		return nil
	})

	ev.RegisterCommand("exit", func(ev *ttree.Evaluator) *ttree.Fault {
		os.Exit(0)
		return nil
	})
}

// evalFile feeds a script to the session, one token per line.
func evalFile(ev *ttree.Evaluator, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tokens := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	if fault := ev.EvalBatch(tokens); fault != nil {
		return fmt.Errorf("%s: %w", path, fault)
	}
	return nil
}

func main() {
	evalStr := flag.String("e", "", "evaluate whitespace-separated tokens and exit")
	configPath := flag.String("config", "", "path to CLI config file (default ~/.ttree/cli.toml)")
	approve := flag.String("approve", "", "approved severity ceiling (warning|minor|critical|fatal)")
	debug := flag.Bool("debug", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ttree %s\n", version)
		return
	}

	path := *configPath
	if path == "" {
		path = configFilePath()
	}
	cliConfig := loadCLIConfig(path)
	if *approve != "" {
		cliConfig.ApprovedSeverity = *approve
	}

	approved, err := ttree.ParseSeverity(cliConfig.ApprovedSeverity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ttree: %v\n", err)
		os.Exit(2)
	}

	config := ttree.DefaultConfig()
	config.Debug = *debug
	config.Approved = approved
	if cliConfig.Serializer.Indent != "" {
		config.Indent = cliConfig.Serializer.Indent
	}
	if cliConfig.Serializer.SectionMarker != "" {
		config.SectionMarker = cliConfig.Serializer.SectionMarker
	}
	if cliConfig.Serializer.LineEnd != "" {
		config.LineEnd = cliConfig.Serializer.LineEnd
	}

	ev := ttree.New(config)
	if *debug {
		if len(cliConfig.DebugCategories) == 0 {
			ev.Logger().EnableAllCategories()
		}
		for _, cat := range cliConfig.DebugCategories {
			ev.Logger().EnableCategory(ttree.LogCategory(cat))
		}
	}
	registerHostCommands(ev)

	switch {
	case *evalStr != "":
		if fault := ev.EvalBatch(strings.Fields(*evalStr)); fault != nil {
			fmt.Fprintln(os.Stderr, fault.Error())
			os.Exit(1)
		}
	case flag.NArg() > 0:
		for _, path := range flag.Args() {
			if err := evalFile(ev, path); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	default:
		replConfig := ttree.DefaultREPLConfig()
		replConfig.LightBackground = cliConfig.TermBackground == "light"
		repl := ttree.NewREPL(ev, replConfig)
		if err := repl.Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
