package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/vsinha/cfptrace/pkg/application/dto"
	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

const (
	csvFileName   = "cfp_summary.csv"
	jsonFileName  = "cfp_summary.json"
	excelFileName = "cfp_summary.xlsx"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate writes a summary in the configured format. Text and JSON go to w
// unless an output directory is set; CSV and XLSX always need one.
func Generate(summary *dto.CfpSummary, config Config, w io.Writer) error {
	switch config.Format {
	case "text", "":
		return generateTextOutput(summary, config, w)
	case "json":
		return generateJSONOutput(summary, config, w)
	case "csv":
		return generateCSVOutput(summary, config, w)
	case "xlsx":
		return generateExcelOutput(summary, config, w)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateJSONOutput creates JSON output
func generateJSONOutput(summary *dto.CfpSummary, config Config, w io.Writer) error {
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(w, string(jsonData))
		return nil
	}

	filename, err := outputPath(config.OutputDir, jsonFileName)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	reportSaved(w, config, "JSON", filename)
	return nil
}

var csvHeader = []string{
	"role", "index", "trace_id", "parts_name", "support_parts_name", "plant_name", "open_plant_id",
	"amount_required", "amount_required_unit", "emissions_unit",
	"pre_emission", "main_emission", "total",
	"pre_ter", "pre_tir", "pre_ger", "main_ter", "main_tir", "main_ger",
	"pre_dqr", "main_dqr",
}

// generateCSVOutput writes one row per part followed by a total row that also
// carries the DQR rollup
func generateCSVOutput(summary *dto.CfpSummary, config Config, w io.Writer) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	filename, err := outputPath(config.OutputDir, csvFileName)
	if err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range summary.Rows {
		record := []string{
			string(row.Role),
			strconv.Itoa(row.Index),
			row.TraceID.String(),
			row.PartsName,
			row.SupportPartsName,
			row.PlantName,
			row.OpenPlantID,
			nullString(row.AmountRequired),
			row.AmountRequiredUnit,
			row.EmissionsUnit,
			nullString(row.PreEmission),
			nullString(row.MainEmission),
			nullString(row.Total),
			nullString(row.PreDqr.TeR),
			nullString(row.PreDqr.TiR),
			nullString(row.PreDqr.GeR),
			nullString(row.MainDqr.TeR),
			nullString(row.MainDqr.TiR),
			nullString(row.MainDqr.GeR),
			"",
			"",
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	total := make([]string, len(csvHeader))
	total[0] = "total"
	total[2] = summary.ParentTraceID.String()
	total[3] = summary.PartsName
	total[10] = summary.Sum.PreEmission.String()
	total[11] = summary.Sum.MainEmission.String()
	total[12] = summary.Total.String()
	copy(total[13:], sheetAxes(summary.Dqr.PreEmission))
	copy(total[16:], sheetAxes(summary.Dqr.MainEmission))
	total[19] = summary.Dqr.PreEmission.Dqr
	total[20] = summary.Dqr.MainEmission.Dqr
	if err := writer.Write(total); err != nil {
		return fmt.Errorf("failed to write CSV total row: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	reportSaved(w, config, "CSV", filename)
	return nil
}

func outputPath(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return filepath.Join(dir, name), nil
}

func reportSaved(w io.Writer, config Config, kind, filename string) {
	if config.Verbose {
		fmt.Fprintf(w, "%s results saved to: %s\n", kind, filename)
	}
}

func nullString(value decimal.NullDecimal) string {
	if !value.Valid {
		return ""
	}
	return value.Decimal.String()
}

func sheetAxes(v entities.DqrSheetValue) []string {
	return []string{v.TeR, v.TiR, v.GeR}
}
