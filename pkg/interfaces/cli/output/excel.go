package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/cfptrace/pkg/application/dto"
)

const (
	cfpSheet = "CFP"
	dqrSheet = "DQR"
)

// generateExcelOutput writes the summary as a workbook with a CFP sheet
// (one row per part plus totals) and a DQR sheet
func generateExcelOutput(summary *dto.CfpSummary, config Config, w io.Writer) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for XLSX format")
	}

	filename, err := outputPath(config.OutputDir, excelFileName)
	if err != nil {
		return err
	}

	f, err := buildWorkbook(summary)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to write XLSX file: %w", err)
	}

	reportSaved(w, config, "XLSX", filename)
	return nil
}

func buildWorkbook(summary *dto.CfpSummary) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), cfpSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(dqrSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create DQR sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create title style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create cell style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// CFP sheet
	f.SetCellValue(cfpSheet, "A1", sanitizeExcelCell("CFP Summary: "+summary.PartsName))
	f.SetCellStyle(cfpSheet, "A1", "A1", titleStyle)

	headers := []string{"#", "Role", "Parts name", "Support parts name", "Plant", "Open plant id",
		"Amount required", "Unit", "Emissions unit", "Pre emission", "Main emission", "Total"}
	widths := []float64{5, 8, 20, 20, 20, 14, 16, 10, 16, 14, 14, 14}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(cfpSheet, col, col, widths[i]); err != nil {
			f.Close()
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
		f.SetCellValue(cfpSheet, col+"3", h)
	}
	f.SetCellStyle(cfpSheet, "A3", lastCol+"3", headerStyle)

	row := 4
	for _, part := range summary.Rows {
		values := []any{
			part.Index,
			string(part.Role),
			sanitizeExcelCell(part.PartsName),
			sanitizeExcelCell(part.SupportPartsName),
			sanitizeExcelCell(part.PlantName),
			sanitizeExcelCell(part.OpenPlantID),
			nullString(part.AmountRequired),
			sanitizeExcelCell(part.AmountRequiredUnit),
			sanitizeExcelCell(part.EmissionsUnit),
			nullString(part.PreEmission),
			nullString(part.MainEmission),
			nullString(part.Total),
		}
		if err := setRow(f, cfpSheet, row, values); err != nil {
			f.Close()
			return nil, err
		}
		f.SetCellStyle(cfpSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), cellStyle)
		row++
	}

	totals := []any{"", "total", sanitizeExcelCell(summary.PartsName), "", "", "", "", "", "",
		summary.Sum.PreEmission.String(), summary.Sum.MainEmission.String(), summary.Total.String()}
	if err := setRow(f, cfpSheet, row, totals); err != nil {
		f.Close()
		return nil, err
	}
	f.SetCellStyle(cfpSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), totalStyle)

	// DQR sheet
	if err := setRow(f, dqrSheet, 1, []any{"Stage", "TeR", "TiR", "GeR", "DQR"}); err != nil {
		f.Close()
		return nil, err
	}
	f.SetCellStyle(dqrSheet, "A1", "E1", headerStyle)
	stages := []struct {
		name  string
		value []string
	}{
		{"pre", append(sheetAxes(summary.Dqr.PreEmission), summary.Dqr.PreEmission.Dqr)},
		{"main", append(sheetAxes(summary.Dqr.MainEmission), summary.Dqr.MainEmission.Dqr)},
	}
	for i, stage := range stages {
		values := []any{stage.name}
		for _, v := range stage.value {
			values = append(values, v)
		}
		if err := setRow(f, dqrSheet, i+2, values); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetCellStyle(dqrSheet, "A2", "E3", cellStyle)

	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
