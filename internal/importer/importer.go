// Package importer turns CSV and Excel sheets into batches of
// caisson_generation jobs. It supports automatic delimiter detection,
// flexible column mapping and French or English header names.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Jobs     []model.Job
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label      int
	Largeur    int
	Hauteur    int
	Profondeur int
	Lumineux   int
	Percage    int
	Quantity   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":      {"label", "nom", "name", "dossier", "reference", "ref", "description", "enseigne"},
	"largeur":    {"largeur", "width", "w", "l"},
	"hauteur":    {"hauteur", "height", "h"},
	"profondeur": {"profondeur", "depth", "d", "p", "retour"},
	"lumineux":   {"lumineux", "lit", "lighting", "eclairage", "éclairage"},
	"percage":    {"percage", "perçage", "drilling", "drillingholes", "trous"},
	"quantity":   {"quantite", "quantité", "qte", "qty", "quantity", "nb"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive against the known aliases of each role.
// Without a recognizable header it returns the positional mapping
// Label, Largeur, Hauteur, Profondeur, Percage and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1}
	slots := map[string]*int{
		"label":      &mapping.Label,
		"largeur":    &mapping.Largeur,
		"hauteur":    &mapping.Hauteur,
		"profondeur": &mapping.Profondeur,
		"lumineux":   &mapping.Lumineux,
		"percage":    &mapping.Percage,
		"quantity":   &mapping.Quantity,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Label:      0,
			Largeur:    1,
			Hauteur:    2,
			Profondeur: 3,
			Percage:    4,
			Lumineux:   -1,
			Quantity:   -1,
		}, false
	}
	return mapping, true
}

// parseBool accepts the yes/no spellings found in shop spreadsheets.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "x", "y", "yes", "o", "oui", "true", "vrai":
		return true, true
	case "0", "n", "no", "non", "false", "faux", "-":
		return false, true
	default:
		return false, false
	}
}

// parseNumber accepts both decimal points and decimal commas.
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts the jobs described by one row. Returns the jobs, any
// error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, jobCount int) ([]model.Job, string, []string) {
	var warnings []string

	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Caisson %d", jobCount+1)
	}

	largeurStr := getCell(row, mapping.Largeur)
	if largeurStr == "" {
		return nil, fmt.Sprintf("%s: Missing largeur value", rowLabel), nil
	}
	largeur, err := parseNumber(largeurStr)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid largeur '%s'", rowLabel, largeurStr), nil
	}

	hauteurStr := getCell(row, mapping.Hauteur)
	if hauteurStr == "" {
		return nil, fmt.Sprintf("%s: Missing hauteur value", rowLabel), nil
	}
	hauteur, err := parseNumber(hauteurStr)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid hauteur '%s'", rowLabel, hauteurStr), nil
	}

	lumineux := true
	if s := getCell(row, mapping.Lumineux); s != "" {
		v, ok := parseBool(s)
		if ok {
			lumineux = v
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown lumineux value '%s', assuming lit", rowLabel, s))
		}
	}

	profondeur := model.DefaultDepth(lumineux)
	if s := getCell(row, mapping.Profondeur); s != "" {
		profondeur, err = parseNumber(s)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid profondeur '%s'", rowLabel, s), nil
		}
	}

	percage := true
	if s := getCell(row, mapping.Percage); s != "" {
		v, ok := parseBool(s)
		if ok {
			percage = v
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown percage value '%s', drilling enabled", rowLabel, s))
		}
	}

	qty := 1
	if s := getCell(row, mapping.Quantity); s != "" {
		qty, err = strconv.Atoi(s)
		if err != nil || qty <= 0 {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, s), nil
		}
	}

	params := &model.CaissonSimpleParams{
		Largeur:       largeur,
		Hauteur:       hauteur,
		Profondeur:    profondeur,
		DrillingHoles: percage,
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Sprintf("%s: %v", rowLabel, err), nil
	}

	jobs := make([]model.Job, 0, qty)
	for n := 1; n <= qty; n++ {
		l := label
		if qty > 1 {
			l = fmt.Sprintf("%s (%d/%d)", label, n, qty)
		}
		p := *params
		jobs = append(jobs, model.NewJob(l, model.ScriptCaissonSimple, &p))
	}
	return jobs, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Import dispatches on the file extension: .xlsx/.xlsm use ImportExcel,
// anything else ImportCSV.
func Import(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// ImportCSV imports jobs from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	return importCSV(bytes.NewReader(data), delimiter, result.Warnings)
}

// ImportCSVFromReader imports jobs from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	return importCSV(reader, delimiter, nil)
}

func importCSV(reader io.Reader, delimiter rune, warnings []string) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}, Warnings: warnings}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}, Warnings: warnings}
	}
	return importFromRows(records, "Line", warnings)
}

// ImportExcel imports jobs from the first sheet of an .xlsx file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Largeur == -1 {
			missing = append(missing, "Largeur")
		}
		if mapping.Hauteur == -1 {
			missing = append(missing, "Hauteur")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognized header still has a non-numeric second column.
		if _, err := parseNumber(strings.TrimSpace(rows[0][1])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		jobs, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Jobs))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Jobs = append(result.Jobs, jobs...)
	}

	return result
}
