package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string // --output
	Short  string // -o (empty if none)
	Desc   string // help text
	IsBool bool   // takes no value
	Glob   string // file glob for the value, if any
	IsDir  bool   // value is a directory
}

// completionMeta holds completion hints that the FlagSet cannot express.
type completionMeta struct {
	Glob  string
	IsDir bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"input":  {Glob: "*.tex"},
	"config": {Glob: "*.yaml"},
	"output": {IsDir: true},
}

// commandNames lists the commands offered by completion.
var commandNames = []string{cmdConvert, cmdConfig, cmdCompletion, cmdVersion, cmdHelp}

// convertFlagDefs extracts convert flags from the same FlagSet the parser
// uses, enriched with flagCompletionMeta.
func convertFlagDefs() []flagDef {
	var defs []flagDef
	buildConvertFlagSet(&convertFlags{}).VisitAll(func(f *flag.Flag) {
		meta := flagCompletionMeta[f.Name]
		defs = append(defs, flagDef{
			Long:   f.Name,
			Short:  f.Shorthand,
			Desc:   f.Usage,
			IsBool: f.Value.Type() == "bool",
			Glob:   meta.Glob,
			IsDir:  meta.IsDir,
		})
	})
	return defs
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(convertFlagDefs())
	case ShellZsh:
		script = zshScript(convertFlagDefs())
	case ShellFish:
		script = fishScript(convertFlagDefs())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

func bashScript(defs []flagDef) string {
	var opts []string
	for _, d := range defs {
		opts = append(opts, "--"+d.Long)
		if d.Short != "" {
			opts = append(opts, "-"+d.Short)
		}
	}

	var b strings.Builder
	b.WriteString("# bash completion for tex2soy\n")
	b.WriteString("_tex2soy() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    case \"$prev\" in\n")
	b.WriteString("        -i|--input) COMPREPLY=($(compgen -f -X '!*.tex' -- \"$cur\") $(compgen -d -- \"$cur\")); return ;;\n")
	b.WriteString("        -c|--config) COMPREPLY=($(compgen -f -X '!*.y*ml' -- \"$cur\")); return ;;\n")
	b.WriteString("        -o|--output) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(commandNames, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    if [[ $cur == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(opts, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    COMPREPLY=($(compgen -f -X '!*.tex' -- \"$cur\") $(compgen -d -- \"$cur\"))\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _tex2soy tex2soy\n")
	return b.String()
}

func zshScript(defs []flagDef) string {
	var b strings.Builder
	b.WriteString("#compdef tex2soy\n\n")
	b.WriteString("_tex2soy() {\n")
	b.WriteString("    _arguments -C \\\n")
	b.WriteString("        '1:command:(" + strings.Join(commandNames, " ") + ")' \\\n")
	for _, d := range defs {
		desc := strings.ReplaceAll(d.Desc, "'", "")
		action := ""
		switch {
		case d.IsBool:
		case d.Glob != "":
			action = fmt.Sprintf(":file:_files -g \"%s\"", d.Glob)
		case d.IsDir:
			action = ":dir:_files -/"
		default:
			action = ":value:"
		}
		if d.Short != "" {
			fmt.Fprintf(&b, "        '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n", d.Short, d.Long, d.Short, d.Long, desc, action)
		} else {
			fmt.Fprintf(&b, "        '--%s[%s]%s' \\\n", d.Long, desc, action)
		}
	}
	b.WriteString("        '*:file:_files -g \"*.tex\"'\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _tex2soy tex2soy\n")
	return b.String()
}

func fishScript(defs []flagDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for tex2soy\n")
	for _, name := range commandNames {
		fmt.Fprintf(&b, "complete -c tex2soy -n '__fish_use_subcommand' -a %s\n", name)
	}
	for _, d := range defs {
		fmt.Fprintf(&b, "complete -c tex2soy -l %s", d.Long)
		if d.Short != "" {
			fmt.Fprintf(&b, " -s %s", d.Short)
		}
		if !d.IsBool {
			b.WriteString(" -r")
			if d.IsDir {
				b.WriteString(" -a '(__fish_complete_directories)'")
			} else if d.Glob == "" {
				b.WriteString(" -f")
			}
		}
		fmt.Fprintf(&b, " -d '%s'\n", strings.ReplaceAll(d.Desc, "'", `\'`))
	}
	return b.String()
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2soy completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(tex2soy completion bash)\"        # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(tex2soy completion zsh)\"         # in ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:  tex2soy completion fish > ~/.config/fish/completions/tex2soy.fish")
}
