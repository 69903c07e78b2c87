package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	widths := []string{"u8", "u16", "u32", "u64", "big"}

	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{
			"complete -F _fibseq_completions fibseq",
			`widths="u8 u16 u32 u64 big"`,
			"--width)",
			"--output|-o)",
			`compgen -W "debug info warn error"`,
			"--count -n",
		}},
		{"zsh", []string{
			"#compdef fibseq",
			"widths=(u8 u16 u32 u64 big)",
			"'--width[Integer width]:width:($widths)'",
			"'(-n --count)'{-n,--count}'[Sequence length parameter]:count:'",
			"'(-o --output)'{-o,--output}'[Write the sequence to a file]:file:_files'",
		}},
		{"fish", []string{
			"complete -c fibseq -f",
			"complete -c fibseq -l width -d 'Integer width' -xa 'u8 u16 u32 u64 big'",
			"complete -c fibseq -s q -l quiet -d 'Print only the result'\n",
			"complete -c fibseq -l metrics-file -d 'Write Prometheus metrics to a file' -rF",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, widths); err != nil {
				t.Fatalf("GenerateCompletion(%s): %v", tt.shell, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletionUnsupported(t *testing.T) {
	t.Parallel()
	err := GenerateCompletion(&bytes.Buffer{}, "tcsh", nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported shell: tcsh") {
		t.Errorf("err = %v", err)
	}
}

func TestFlagRegistryCoversConfigFlags(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		seen[f.Long] = true
	}
	for _, name := range []string{"count", "width", "compare", "sep", "at", "prompt", "elements", "interactive", "tui", "timeout", "output", "metrics-file", "log-level", "completion"} {
		if !seen[name] {
			t.Errorf("flag --%s missing from completion registry", name)
		}
	}
}
