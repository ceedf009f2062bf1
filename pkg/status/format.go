package status

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// 📋 FormatSummary renders the end-of-run block: counts, errored files and files needing review
func FormatSummary(r *Report) string {
	var buf strings.Builder

	title := "Summary"
	modifiedLabel := "Modified"
	if r.DryRun {
		title = "Summary (dry run)"
		modifiedLabel = "Would modify"
	}
	buf.WriteString(pterm.DefaultSection.Sprint(title))

	fmt.Fprintf(&buf, "%-14s %d\n", "Discovered", r.Discovered)
	fmt.Fprintf(&buf, "%-14s %d\n", modifiedLabel, r.ModifiedCount())
	fmt.Fprintf(&buf, "%-14s %d\n", "Errored", r.ErrorCount())
	fmt.Fprintf(&buf, "%-14s %d\n", "Warnings", len(r.Warned()))

	if errs := r.Errors(); len(errs) > 0 {
		data := pterm.TableData{{"File", "Error"}}
		for _, e := range errs {
			msg := "unknown error"
			if e.Err != nil {
				msg = e.Err.Error()
			}
			data = append(data, []string{e.Path, msg})
		}
		buf.WriteString("\n")
		buf.WriteString(renderTable(data))
	}

	if warned := r.Warned(); len(warned) > 0 {
		buf.WriteString("\n")
		buf.WriteString(pterm.Warning.Sprintln("review these files manually:"))
		for _, e := range warned {
			rules := make([]string, 0, len(e.Warnings))
			for _, w := range e.Warnings {
				rules = append(rules, w.Rule)
			}
			fmt.Fprintf(&buf, "  %s (%s)\n", e.Path, strings.Join(rules, ", "))
		}
	}

	buf.WriteString("\n")
	if n := r.ErrorCount(); n > 0 {
		buf.WriteString(pterm.Error.Sprintfln("Errors in %d files", n))
	}
	buf.WriteString(pterm.Success.Sprintfln("%s %d of %d files", modifiedLabel, r.ModifiedCount(), r.Discovered))

	return buf.String()
}

func renderTable(data pterm.TableData) string {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// fall back to plain rows
		var buf strings.Builder
		for _, row := range data {
			buf.WriteString(strings.Join(row, "\t"))
			buf.WriteString("\n")
		}
		return buf.String()
	}
	return out + "\n"
}
