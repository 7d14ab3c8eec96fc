package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vsinha/cfptrace/pkg/application/dto"
)

const unknownValue = "-"

var partColumns = []struct {
	title string
	width int
}{
	{"#", 3},
	{"Role", 7},
	{"Parts name", 16},
	{"Support name", 14},
	{"Plant", 24},
	{"Amount", 12},
	{"Pre", 12},
	{"Main", 12},
	{"Total", 12},
}

// generateTextOutput renders a human-readable summary
func generateTextOutput(summary *dto.CfpSummary, config Config, w io.Writer) error {
	var b strings.Builder
	renderText(&b, summary)

	if config.OutputDir == "" {
		fmt.Fprint(w, b.String())
		return nil
	}

	filename, err := outputPath(config.OutputDir, "cfp_summary.txt")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write text file: %w", err)
	}

	reportSaved(w, config, "Text", filename)
	return nil
}

func renderText(b *strings.Builder, summary *dto.CfpSummary) {
	fmt.Fprintf(b, "%s %s\n\n",
		TitleStyle.Render("CFP Summary: "+summary.PartsName),
		SubtitleStyle.Render("("+summary.ParentTraceID.String()+")"))

	header := make([]string, 0, len(partColumns))
	rule := make([]string, 0, len(partColumns))
	for _, col := range partColumns {
		header = append(header, pad(col.title, col.width))
		rule = append(rule, strings.Repeat("-", col.width))
	}
	fmt.Fprintln(b, KeyStyle.Render(strings.Join(header, " ")))
	fmt.Fprintln(b, SubtitleStyle.Render(strings.Join(rule, " ")))

	for _, row := range summary.Rows {
		amount := unknownValue
		if row.AmountRequired.Valid {
			amount = row.AmountRequired.Decimal.String()
			if row.AmountRequiredUnit != "" {
				amount += " " + row.AmountRequiredUnit
			}
		}

		plant := row.PlantName
		if row.OpenPlantID != "" {
			plant = fmt.Sprintf("%s (%s)", row.PlantName, row.OpenPlantID)
		}

		cells := []string{
			fmt.Sprintf("%d", row.Index),
			string(row.Role),
			row.PartsName,
			row.SupportPartsName,
			plant,
			amount,
			row.Display.PreEmission,
			row.Display.MainEmission,
			row.Display.Total,
		}

		line := make([]string, 0, len(cells))
		for i, cell := range cells {
			padded := pad(cell, partColumns[i].width)
			if i >= 6 && cell == "" {
				padded = WarningStyle.Render(pad(unknownValue, partColumns[i].width))
			}
			line = append(line, padded)
		}
		fmt.Fprintln(b, strings.Join(line, " "))
	}

	fmt.Fprintln(b)
	fmt.Fprintf(b, "%s pre %s  main %s  total %s\n",
		totalStyle.Render("CFP sum:"),
		summary.Display.PreEmission,
		summary.Display.MainEmission,
		totalStyle.Render(summary.Display.Total))

	fmt.Fprintln(b)
	fmt.Fprintln(b, KeyStyle.Render(fmt.Sprintf("%-6s %-9s %-9s %-9s %-9s", "DQR", "TeR", "TiR", "GeR", "DQR")))
	for _, stage := range []struct {
		name  string
		value [4]string
	}{
		{"pre", [4]string{summary.Dqr.PreEmission.TeR, summary.Dqr.PreEmission.TiR, summary.Dqr.PreEmission.GeR, summary.Dqr.PreEmission.Dqr}},
		{"main", [4]string{summary.Dqr.MainEmission.TeR, summary.Dqr.MainEmission.TiR, summary.Dqr.MainEmission.GeR, summary.Dqr.MainEmission.Dqr}},
	} {
		fmt.Fprintf(b, "%-6s %-9s %-9s %-9s %-9s\n", stage.name, stage.value[0], stage.value[1], stage.value[2], stage.value[3])
	}
}

// pad left-aligns s in a column, truncating values that do not fit
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "~"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
