// Package roster reads the member training and vetting workbooks exported
// from the member portal.
package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrReportNotFound is returned when no workbook matches the prefix.
var ErrReportNotFound = errors.New("report file not found")

// Identity columns are located by header name; the training-course free text
// sits at a fixed column range with no headers worth trusting.
const (
	headerFirstName = "First Name"
	headerSurname   = "Surname"
	headerEmail     = "Email Address"
	headerVetting   = "Latest Vetting Completion Date"
)

// TrainingRow is one member's row from the trainings report.
type TrainingRow struct {
	FirstName string
	Surname   string
	Email     string
	Courses   []string
}

// Name returns the printed name used for grouping.
func (r TrainingRow) Name() string { return r.FirstName + " " + r.Surname }

// VettingRow is one member's row from the vetting report.
type VettingRow struct {
	FirstName        string
	Surname          string
	Email            string
	LatestCompletion string
}

// Name returns the printed name used for grouping.
func (r VettingRow) Name() string { return r.FirstName + " " + r.Surname }

// FindReport locates the first .xlsx file in dir whose name starts with
// prefix. The portal appends an export timestamp to the filename, so prefix
// matching is the filename contract. A missing report is a fatal condition
// for the caller.
func FindReport(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read reports dir %s: %w", dir, err)
	}

	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".xlsx") {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no %s*.xlsx in %s", ErrReportNotFound, prefix, dir)
	}

	// Deterministic pick when several exports are lying around.
	sort.Strings(matches)
	return filepath.Join(dir, matches[0]), nil
}

// LoadTraining reads the trainings report. Course texts are taken from the
// fixed column range [firstCol, lastCol]; short rows simply contribute fewer
// course cells.
func LoadTraining(path string, firstCol, lastCol int, logger *slog.Logger) ([]TrainingRow, error) {
	rows, header, err := openSheet(path)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndexes(header, headerFirstName, headerSurname, headerEmail)
	if err != nil {
		return nil, fmt.Errorf("trainings report %s: %w", path, err)
	}

	var out []TrainingRow
	for _, row := range rows {
		tr := TrainingRow{
			FirstName: cell(row, cols[headerFirstName]),
			Surname:   cell(row, cols[headerSurname]),
			Email:     cell(row, cols[headerEmail]),
		}
		if tr.FirstName == "" && tr.Surname == "" {
			continue
		}
		for i := firstCol; i <= lastCol && i < len(row); i++ {
			if text := strings.TrimSpace(row[i]); text != "" {
				tr.Courses = append(tr.Courses, text)
			}
		}
		out = append(out, tr)
	}

	logger.Info("trainings report loaded", "path", path, "members", len(out))
	return out, nil
}

// LoadVetting reads the vetting report.
func LoadVetting(path string, logger *slog.Logger) ([]VettingRow, error) {
	rows, header, err := openSheet(path)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndexes(header, headerFirstName, headerSurname, headerEmail, headerVetting)
	if err != nil {
		return nil, fmt.Errorf("vetting report %s: %w", path, err)
	}

	var out []VettingRow
	for _, row := range rows {
		vr := VettingRow{
			FirstName:        cell(row, cols[headerFirstName]),
			Surname:          cell(row, cols[headerSurname]),
			Email:            cell(row, cols[headerEmail]),
			LatestCompletion: cell(row, cols[headerVetting]),
		}
		if vr.FirstName == "" && vr.Surname == "" {
			continue
		}
		out = append(out, vr)
	}

	logger.Info("vetting report loaded", "path", path, "members", len(out))
	return out, nil
}

// openSheet returns the data rows and header row of the first sheet.
func openSheet(path string) ([][]string, []string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s of %s: %w", sheets[0], path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("workbook %s is empty", path)
	}

	return rows[1:], rows[0], nil
}

// columnIndexes maps required header names to column indexes.
func columnIndexes(header []string, names ...string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.TrimSpace(h)] = i
	}

	cols := make(map[string]int, len(names))
	for _, name := range names {
		idx, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		cols[name] = idx
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
