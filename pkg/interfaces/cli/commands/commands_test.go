package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the command tree with an isolated config environment
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func generateScenario(t *testing.T, extra ...string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "scenario")
	args := append([]string{"generate", "--output", dir, "--seed", "42"}, extra...)
	if _, err := runCLI(t, args...); err != nil {
		t.Fatalf("Failed to generate scenario: %v", err)
	}
	return dir
}

func TestGenerate_WritesScenario(t *testing.T) {
	dir := generateScenario(t, "--children", "4")

	for _, name := range []string{"plants.csv", "parts.csv", "cfp.csv"} {
		if !fileExists(filepath.Join(dir, name)) {
			t.Errorf("Expected %s to be generated", name)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "cfp.csv"))
	if err != nil {
		t.Fatalf("Failed to read cfp.csv: %v", err)
	}
	// header + 5 parts x 4 CFP types
	if lines := strings.Count(string(data), "\n"); lines != 21 {
		t.Errorf("Expected 21 lines in cfp.csv, got %d", lines)
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	first := generateScenario(t)
	second := generateScenario(t)

	a, _ := os.ReadFile(filepath.Join(first, "parts.csv"))
	b, _ := os.ReadFile(filepath.Join(second, "parts.csv"))
	if !bytes.Equal(a, b) {
		t.Error("Expected the same seed to generate the same parts")
	}
}

func TestValidate_Valid(t *testing.T) {
	dir := generateScenario(t, "--children", "6")

	out, err := runCLI(t, "validate", "--scenario", dir)
	if err != nil {
		t.Fatalf("Expected valid scenario, got %v\n%s", err, out)
	}
	if !strings.Contains(out, "PACK with 6 child part(s) is valid") {
		t.Errorf("Unexpected output: %s", out)
	}
}

func TestValidate_Duplicates(t *testing.T) {
	dir := generateScenario(t, "--children", "4", "--duplicates", "2")

	out, err := runCLI(t, "validate", "--scenario", dir)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected ExitError, got %v", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("Expected exit code 1, got %d", exitErr.Code)
	}
	if !strings.Contains(out, "are duplicated") {
		t.Errorf("Expected duplicate message in output, got: %s", out)
	}
}

func TestSummarize_JSON(t *testing.T) {
	dir := generateScenario(t, "--children", "3", "--toml")
	if !fileExists(filepath.Join(dir, "structure.toml")) {
		t.Fatal("Expected structure.toml to be generated")
	}

	out, err := runCLI(t, "summarize", "--scenario", dir, "--format", "json")
	if err != nil {
		t.Fatalf("Failed to summarize: %v\n%s", err, out)
	}

	var decoded struct {
		PartsName string            `json:"partsName"`
		Rows      []json.RawMessage `json:"rows"`
		Total     string            `json:"total"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Failed to decode JSON output: %v\n%s", err, out)
	}
	if decoded.PartsName != "PACK" || len(decoded.Rows) != 4 || decoded.Total == "" {
		t.Errorf("Unexpected summary: %+v", decoded)
	}
}

func TestSummarize_FilesAndFlags(t *testing.T) {
	dir := generateScenario(t)
	outDir := filepath.Join(t.TempDir(), "out")

	if _, err := runCLI(t, "summarize", "--scenario", dir, "--format", "xlsx", "--output", outDir); err != nil {
		t.Fatalf("Failed to write XLSX: %v", err)
	}
	if !fileExists(filepath.Join(outDir, "cfp_summary.xlsx")) {
		t.Error("Expected cfp_summary.xlsx to be written")
	}

	_, err := runCLI(t, "summarize", "--scenario", dir, "--format", "pdf")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Errorf("Expected exit code 2 for unknown format, got %v", err)
	}

	if _, err := runCLI(t, "summarize", "--scenario", dir, "--format", "csv"); err == nil {
		t.Error("Expected error for CSV without output directory")
	}
}

func TestSummarize_RejectsDuplicates(t *testing.T) {
	dir := generateScenario(t, "--children", "2", "--duplicates", "1")

	_, err := runCLI(t, "summarize", "--scenario", dir)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("Expected exit code 1, got %v", err)
	}
	if !strings.Contains(err.Error(), "are duplicated") {
		t.Errorf("Expected duplicate message, got %v", err)
	}
}

func TestResolveScenario(t *testing.T) {
	dir := t.TempDir()
	touch := func(name string) {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	if _, err := ResolveScenario(""); err == nil {
		t.Error("Expected error for empty scenario directory")
	}
	if _, err := ResolveScenario(dir); err == nil || !strings.Contains(err.Error(), "structure file not found") {
		t.Errorf("Expected missing structure error, got %v", err)
	}

	touch("parts.csv")
	touch("plants.csv")
	if _, err := ResolveScenario(dir); err == nil || !strings.Contains(err.Error(), "CFP file not found") {
		t.Errorf("Expected missing CFP error, got %v", err)
	}

	touch("cfp.csv")
	scenario, err := ResolveScenario(dir)
	if err != nil {
		t.Fatalf("Failed to resolve scenario: %v", err)
	}
	if filepath.Base(scenario.StructureFile) != "parts.csv" {
		t.Errorf("Expected parts.csv, got %s", scenario.StructureFile)
	}

	touch("structure.toml")
	scenario, err = ResolveScenario(dir)
	if err != nil {
		t.Fatalf("Failed to resolve scenario: %v", err)
	}
	if filepath.Base(scenario.StructureFile) != "structure.toml" {
		t.Errorf("Expected structure.toml to take precedence, got %s", scenario.StructureFile)
	}
}

func TestConfigShow(t *testing.T) {
	out, err := runCLI(t, "config", "show", "--json")
	if err != nil {
		t.Fatalf("Failed to show config: %v", err)
	}

	var decoded struct {
		Output struct {
			Format string `json:"format"`
		} `json:"output"`
		Limits struct {
			MaxChildren int `json:"max_children"`
		} `json:"limits"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Failed to decode config JSON: %v\n%s", err, out)
	}
	if decoded.Output.Format != "text" || decoded.Limits.MaxChildren != 50 {
		t.Errorf("Expected default config, got %+v", decoded)
	}
}
