package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/bracelint/internal/configloader"
	"github.com/yaklabco/bracelint/internal/ui/pretty"
	"github.com/yaklabco/bracelint/pkg/config"
)

// exitCodeHelp is listed under "Exit Codes" on the root command's help.
//
//nolint:gochecknoglobals // read-only help table
var exitCodeHelp = []struct {
	Code    int
	Meaning string
}{
	{ExitSuccess, "no violations"},
	{ExitViolations, "violations found"},
	{ExitUsage, "invalid usage or configuration"},
	{ExitFileErrors, "files could not be read or parsed"},
}

func categoryNames() string {
	cats := config.AllCategories()
	names := make([]string, len(cats))
	for i, cat := range cats {
		names[i] = string(cat)
	}
	return strings.Join(names, ", ")
}

// helpPalette picks the styles used by the help templates out of the shared
// output styles.
type helpPalette struct {
	heading lipgloss.Style
	command lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpPalette(styles *pretty.Styles) helpPalette {
	return helpPalette{
		heading: styles.Warning,
		command: styles.FilePath,
		name:    styles.Success,
		flag:    styles.DiffHunk,
		dim:     styles.Dim,
	}
}

// HelpFormatter renders command help with lipgloss styling.
type HelpFormatter struct {
	palette helpPalette
	usage   *template.Template
	help    *template.Template
}

// NewHelpFormatter creates a formatter. Color follows colorMode and whether
// writer is a terminal.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	h := &HelpFormatter{
		palette: newHelpPalette(pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))),
	}

	funcs := template.FuncMap{
		"heading":    h.palette.heading.Render,
		"command":    h.palette.command.Render,
		"name":       h.palette.name.Render,
		"dim":        h.palette.dim.Render,
		"flags":      h.flagUsages,
		"join":       strings.Join,
		"rpad":       rpad,
		"trimRight":  trimTrailingWhitespace,
		"exitCodes":  func() any { return exitCodeHelp },
		"categories": categoryNames,
		"envVars":    configloader.ListEnvVars,
	}
	h.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	h.help = template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate + usageTemplate))
	return h
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .LocalFlags.Lookup "category"}}

{{ heading "Categories:" }}
  {{ categories }}
{{- end}}

{{- if not .HasParent}}

{{ heading "Exit Codes:" }}{{range exitCodes}}
  {{ name (print .Code) }}  {{ .Meaning }}{{end}}

{{ heading "Environment:" }}{{range envVars}}
  {{ name (rpad .Name 28) }} {{ .Usage }}{{end}}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}`

// ApplyToCommand installs the styled usage and help output on cmd. Cobra
// looks these up through parents, so subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.usage.Execute(c.OutOrStdout(), c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// flagUsages styles pflag's usage block line by line.
func (h *HelpFormatter) flagUsages(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}
	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

// flagLine styles one "  -f, --flag type   description" line. pflag pads
// the flag column, so the first run of two spaces after the indent ends it.
func (h *HelpFormatter) flagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	spec, desc, ok := strings.Cut(body, "  ")
	if !ok {
		return line
	}
	desc = strings.TrimLeft(desc, " ")

	tokens := strings.Fields(spec)
	for i, tok := range tokens {
		if name, comma := strings.CutSuffix(tok, ","); strings.HasPrefix(name, "-") {
			tokens[i] = h.palette.flag.Render(name)
			if comma {
				tokens[i] += ","
			}
		} else {
			tokens[i] = h.palette.dim.Render(tok)
		}
	}
	return indent + strings.Join(tokens, " ") + "   " + desc
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
