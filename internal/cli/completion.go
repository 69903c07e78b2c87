package cli

import (
	"fmt"
	"io"
	"strings"
)

// CompletionShells lists the shells GenerateCompletion supports.
var CompletionShells = []string{"bash", "zsh", "fish"}

// FlagCompletion describes one flag for completion scripts.
type FlagCompletion struct {
	Long  string // without "--"
	Short string // without "-"
	Help  string
	// Values are fixed suggestions; nil means none.
	Values []string
	// ValueName labels value-taking flags; empty means a boolean flag.
	ValueName string
	IsFile    bool
	// IsWidth takes its suggestions from the generator list.
	IsWidth bool
}

// takesValue reports whether the flag consumes the next word.
func (f FlagCompletion) takesValue() bool {
	return f.ValueName != "" || f.IsFile || f.IsWidth || len(f.Values) > 0
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "count", Short: "n", Help: "Sequence length parameter", ValueName: "count"},
	{Long: "width", Help: "Integer width", IsWidth: true, ValueName: "width"},
	{Long: "compare", Help: "Compare every width concurrently"},
	{Long: "sep", Help: "Separator between terms", ValueName: "separator"},
	{Long: "at", Help: "Look up an index in the collection", ValueName: "index"},
	{Long: "prompt", Help: "Read the index from standard input"},
	{Long: "elements", Help: "Comma-separated collection", ValueName: "list"},
	{Long: "interactive", Short: "i", Help: "Start the interactive REPL"},
	{Long: "tui", Help: "Start the terminal index explorer"},
	{Long: "serve", Help: "Serve the HTTP API", ValueName: "addr"},
	{Long: "timeout", Help: "Maximum run time", Values: []string{"10s", "30s", "1m", "5m"}, ValueName: "duration"},
	{Long: "quiet", Short: "q", Help: "Print only the result"},
	{Long: "verbose", Short: "v", Help: "Print every term"},
	{Long: "details", Short: "d", Help: "Print timing and memory details"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "output", Short: "o", Help: "Write the sequence to a file", IsFile: true, ValueName: "file"},
	{Long: "metrics-file", Help: "Write Prometheus metrics to a file", IsFile: true, ValueName: "file"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "completion", Help: "Generate a completion script", Values: CompletionShells, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell. widths are the
// names offered for --width.
func GenerateCompletion(out io.Writer, shell string, widths []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(widths)
	case "zsh":
		script = zshCompletion(widths)
	case "fish":
		script = fishCompletion(widths)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(CompletionShells, ", "))
	}
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// flagSpellings returns "--long" and "-short" as available.
func flagSpellings(f FlagCompletion) []string {
	var s []string
	if f.Long != "" {
		s = append(s, "--"+f.Long)
	}
	if f.Short != "" {
		s = append(s, "-"+f.Short)
	}
	return s
}

func bashCompletion(widths []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, flagSpellings(f)...)
		if !f.takesValue() {
			continue
		}
		var body string
		switch {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case f.IsWidth:
			body = `COMPREPLY=( $(compgen -W "${widths}" -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(flagSpellings(f), "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for fibseq
# Add this to your ~/.bashrc or ~/.bash_completion

_fibseq_completions() {
    local cur prev opts widths
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"
    widths="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fibseq_completions fibseq
`, strings.Join(opts, " "), strings.Join(widths, " "), cases.String())
}

func zshCompletion(widths []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef fibseq

# Zsh completion script for fibseq
# Place this file in a directory on $fpath

_fibseq() {
    local -a widths
    widths=(%s)

    _arguments -s \
%s
}

_fibseq "$@"
`, strings.Join(widths, " "), strings.Join(args, " \\\n"))
}

// zshArgEntry formats f as an _arguments spec.
func zshArgEntry(f FlagCompletion) string {
	var suffix string
	switch {
	case f.IsFile:
		suffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsWidth:
		suffix = fmt.Sprintf(":%s:($widths)", f.ValueName)
	case len(f.Values) > 0:
		suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		suffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, suffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix)
}

func fishCompletion(widths []string) string {
	lines := []string{
		"# Fish completion script for fibseq",
		"# Add this to ~/.config/fish/completions/fibseq.fish",
		"",
		"complete -c fibseq -f",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, widths))
	}
	return strings.Join(lines, "\n") + "\n"
}

// fishCompleteLine formats f as a fish complete command.
func fishCompleteLine(f FlagCompletion, widths []string) string {
	parts := []string{"complete -c fibseq"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsWidth:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(widths, " ")))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
