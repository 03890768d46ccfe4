package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2soy <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert LaTeX sources to Closure Templates")
	fmt.Fprintln(w, "  config      Print the effective configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags given without a command run convert:")
	fmt.Fprintln(w, "  tex2soy -i forces.tex -o forces.soy")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'tex2soy help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2soy convert [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert LaTeX concept pages or problem sheets to Closure Templates.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .tex file, or directory with --traverse (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>        Input file or directory")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -t, --traverse            Convert every .tex file under the input directory")
	fmt.Fprintln(w, "  -e, --encoding <name>     Input encoding: utf-8, utf-16, latin1, windows-1252")
	fmt.Fprintln(w, "      --intermediate        Also write the stripped document (.stripped.tex)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mode:")
	fmt.Fprintln(w, "      --concepts            Convert concept pages (default)")
	fmt.Fprintln(w, "  -q, --questions           Convert multiple-choice problem sheets")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug diagnostics and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TEX2SOY_CONFIG, TEX2SOY_ENCODING, TEX2SOY_INPUT_DIR,")
	fmt.Fprintln(w, "  TEX2SOY_OUTPUT_DIR, TEX2SOY_MODE")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2soy config [-c <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after applying the config file and TEX2SOY_* variables.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdConvert:
		printConvertUsage(env.Stdout)
	case cmdConfig:
		printConfigUsage(env.Stdout)
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: tex2soy version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: tex2soy help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
