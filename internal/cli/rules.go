package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/bracelint/internal/ui/pretty"
	"github.com/yaklabco/bracelint/pkg/config"
	"github.com/yaklabco/bracelint/pkg/lint"
)

const formatJSON = "json"

// ruleInfo is one row of the rules listing.
type ruleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Enabled     bool   `json:"enabled"`
	Fixable     bool   `json:"fixable"`
}

func newRulesCommand() *cobra.Command {
	var (
		ruleFormat string
		format     string
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List every rule with its category, default severity, whether it is on by
default and whether it can fix what it finds.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, err := filterRules(lint.DefaultRegistry.Rules(), categories)
			if err != nil {
				return usageError(err)
			}
			infos := lo.Map(rules, func(rule lint.Rule, _ int) ruleInfo { return describeRule(rule) })

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), infos)
			}
			colorMode, _ := cmd.Flags().GetString("color")
			return writeRulesTable(cmd.OutOrStdout(), infos, config.RuleFormat(ruleFormat), colorMode)
		},
	}

	cmd.Flags().StringVar(&ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "only list rules in these categories")

	return cmd
}

func describeRule(rule lint.Rule) ruleInfo {
	return ruleInfo{
		ID:          rule.ID(),
		Name:        rule.Name(),
		Category:    string(rule.Category()),
		Description: rule.Description(),
		Severity:    string(rule.DefaultSeverity()),
		Enabled:     rule.DefaultEnabled(),
		Fixable:     rule.CanFix(),
	}
}

// filterRules keeps the rules in the named categories. No names keeps all.
func filterRules(rules []lint.Rule, names []string) ([]lint.Rule, error) {
	if len(names) == 0 {
		return rules, nil
	}
	if bad, found := lo.Find(names, func(name string) bool { return !config.Category(name).IsValid() }); found {
		return nil, fmt.Errorf("unknown category %q", bad)
	}
	return lo.Filter(rules, func(rule lint.Rule, _ int) bool {
		return slices.Contains(names, string(rule.Category()))
	}), nil
}

func writeRulesTable(w io.Writer, infos []ruleInfo, ruleFormat config.RuleFormat, colorMode string) error {
	if len(infos) == 0 {
		_, err := fmt.Fprintln(w, "no rules match")
		return err
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))
	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{
			config.FormatRuleID(ruleFormat, info.ID, info.Name),
			info.Category,
			info.Severity,
			mark(info.Enabled),
			mark(info.Fixable),
			info.Description,
		}
	}

	tbl := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("RULE", "CATEGORY", "SEVERITY", "DEFAULT", "FIX", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.SummaryTitle
			case col == 0:
				return styles.RuleID
			case col == 2 && infos[row].Severity == string(config.SeverityError):
				return styles.Error
			case col == 5:
				return styles.Dim
			}
			return styles.Message
		})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "-"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
