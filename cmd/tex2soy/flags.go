package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// modeFlags selects the conversion pipeline.
type modeFlags struct {
	questions bool
	concepts  bool
}

// convertFlags holds all flags of the convert command.
type convertFlags struct {
	common       commonFlags
	mode         modeFlags
	input        string
	output       string
	encoding     string
	traverse     bool
	intermediate bool
}

// configFlags holds flags of the config command.
type configFlags struct {
	config string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.quiet, "quiet", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug diagnostics")
}

// addModeFlags adds pipeline selection flags to a FlagSet.
func addModeFlags(fs *flag.FlagSet, f *modeFlags) {
	fs.BoolVarP(&f.questions, "questions", "q", false, "convert problem sheets")
	fs.BoolVar(&f.concepts, "concepts", false, "convert concept pages (default)")
}

// addIOFlags adds input/output flags to a FlagSet.
func addIOFlags(fs *flag.FlagSet, f *convertFlags) {
	fs.StringVarP(&f.input, "input", "i", "", "input .tex file or directory")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.encoding, "encoding", "e", "", "input text encoding")
	fs.BoolVarP(&f.traverse, "traverse", "t", false, "convert every .tex file under the input directory")
	fs.BoolVar(&f.intermediate, "intermediate", false, "also write the stripped document")
}

// buildConvertFlagSet registers all convert flags on a new FlagSet bound to f.
func buildConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(cmdConvert, flag.ContinueOnError)
	addIOFlags(fs, f)
	addModeFlags(fs, &f.mode)
	addCommonFlags(fs, &f.common)
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Parse errors and usage are written to w.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := buildConvertFlagSet(f)
	fs.SetOutput(w)
	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, w io.Writer) (*configFlags, error) {
	fs := flag.NewFlagSet(cmdConfig, flag.ContinueOnError)
	f := &configFlags{}
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.SetOutput(w)
	fs.Usage = func() { printConfigUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
