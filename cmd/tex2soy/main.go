package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-tex2soy/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdConvert    = "convert"
	cmdConfig     = "config"
	cmdCompletion = "completion"
	cmdVersion    = "version"
	cmdHelp       = "help"
)

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args[1:] to a command and returns the exit code.
// A leading flag or .tex file is treated as an implicit convert command.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch {
	case cmd == cmdConvert:
		return runConvertCmd(rest, env)
	case cmd == cmdConfig:
		return runConfigCmd(rest, env)
	case cmd == cmdCompletion:
		if err := runCompletion(rest, env); err != nil {
			fmt.Fprintln(env.Stderr, "error:", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	case cmd == cmdVersion || cmd == "--version":
		fmt.Fprintf(env.Stdout, "tex2soy %s\n", Version)
		return ExitSuccess
	case cmd == cmdHelp || cmd == "-h" || cmd == "--help":
		return runHelp(rest, env)
	case strings.HasPrefix(cmd, "-") || looksLikeTex(cmd):
		return runConvertCmd(args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runConvertCmd parses convert flags and runs the conversion.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\nRun 'tex2soy help convert' for usage.\n", err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConfigCmd prints the effective configuration as YAML.
func runConfigCmd(args []string, env *Environment) int {
	flags, err := parseConfigFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\nRun 'tex2soy help config' for usage.\n", err)
		return ExitUsage
	}

	if err := printEffectiveConfig(flags, env); err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// looksLikeTex reports whether arg names a LaTeX source file.
func looksLikeTex(arg string) bool {
	return fileutil.HasExtension(arg, texExtension)
}
