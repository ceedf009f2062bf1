package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/striprc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewPresetsCmd creates a new presets command
func NewPresetsCmd() *cobra.Command {
	var showRules bool

	cmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "List built-in rule sets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				preset, ok := config.LookupPreset(args[0])
				if !ok {
					return errors.Errorf("unknown preset %q (available: %s)", args[0], strings.Join(config.PresetNames(), ", "))
				}
				_, err := fmt.Fprint(cmd.OutOrStdout(), FormatPreset(preset, true))
				return err
			}

			for _, preset := range config.Presets() {
				if _, err := fmt.Fprint(cmd.OutOrStdout(), FormatPreset(preset, showRules)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showRules, "rules", false, "show the rules of every preset")

	return cmd
}

// 📋 FormatPreset renders a preset's description, discovery defaults and optionally its rules
func FormatPreset(p config.Preset, withRules bool) string {
	var buf strings.Builder
	buf.WriteString(pterm.DefaultSection.Sprint(p.Name))
	fmt.Fprintf(&buf, "%s\n", p.Description)
	fmt.Fprintf(&buf, "include: %s\n", strings.Join(p.Include, ", "))
	fmt.Fprintf(&buf, "exclude: %s\n", strings.Join(p.Exclude, ", "))

	if !withRules {
		fmt.Fprintf(&buf, "%d rules, %d warnings\n", len(p.Rules), len(p.Warnings))
		return buf.String()
	}

	data := pterm.TableData{{"Rule", "Pattern"}}
	for _, r := range p.Rules {
		data = append(data, []string{r.Name, r.Pattern})
	}
	for _, w := range p.Warnings {
		data = append(data, []string{"warn:" + w.Name, w.Pattern})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		for _, row := range data[1:] {
			fmt.Fprintf(&buf, "%s\t%s\n", row[0], row[1])
		}
		return buf.String()
	}
	buf.WriteString(table)
	buf.WriteString("\n")
	return buf.String()
}
