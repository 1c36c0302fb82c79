package team

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Team is a club taking part in the competition. Name identifies it.
type Team struct {
	Name    string `yaml:"name"`
	Town    string `yaml:"town"`
	Stadium string `yaml:"stadium"`
}

// Format selects how a team source is parsed.
type Format string

const (
	FormatWhitespace Format = "whitespace"
	FormatCSV        Format = "csv"
	FormatXLSX       Format = "xlsx"
)

// TeamsSheet is the sheet read from xlsx sources when present.
const TeamsSheet = "Teams"

// ParseFormat returns the Format for name. An empty name means whitespace.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatWhitespace:
		return FormatWhitespace, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown team file format: %q", name)
	}
}

// FormatFromPath guesses a format from the file extension. A .csv
// extension is not enough to pick FormatCSV: legacy teams.csv files are
// whitespace separated.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatWhitespace
	}
}

// Skipped describes a record that was dropped while loading.
type Skipped struct {
	Line   int
	Reason string
}

// Roster is the result of loading a team source.
type Roster struct {
	Teams   []Team
	Skipped []Skipped
}

// LoadFile opens path and loads it with the given format.
func LoadFile(path string, format Format) (*Roster, error) {
	if format == FormatXLSX {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("opening team workbook: %w", err)
		}
		defer f.Close()
		return loadWorkbook(f)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening team file: %w", err)
	}
	defer f.Close()

	return Load(f, format)
}

// Load reads teams from r. Malformed records are skipped and reported in
// Roster.Skipped; read failures are returned as errors.
//
// In the whitespace format each record must sit on a single line as
// exactly three tokens. Records may not span or share lines, and lines
// starting with # are comments.
func Load(r io.Reader, format Format) (*Roster, error) {
	switch format {
	case FormatWhitespace, "":
		return loadWhitespace(r)
	case FormatCSV:
		return loadCSV(r)
	case FormatXLSX:
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening team workbook: %w", err)
		}
		defer f.Close()
		return loadWorkbook(f)
	default:
		return nil, fmt.Errorf("unknown team file format: %q", format)
	}
}

func loadWhitespace(r io.Reader) (*Roster, error) {
	roster := &Roster{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 3 {
			roster.Skipped = append(roster.Skipped, Skipped{
				Line:   line,
				Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields)),
			})
			continue
		}
		roster.Teams = append(roster.Teams, Team{Name: fields[0], Town: fields[1], Stadium: fields[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading teams: %w", err)
	}
	return roster, nil
}

func loadCSV(r io.Reader) (*Roster, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	roster := &Roster{}
	for first := true; ; first = false {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				roster.Skipped = append(roster.Skipped, Skipped{Line: perr.Line, Reason: perr.Err.Error()})
				continue
			}
			return nil, fmt.Errorf("reading teams: %w", err)
		}
		if first {
			continue // header
		}
		line, _ := cr.FieldPos(0)
		if t, reason, ok := fromRecord(record); ok {
			roster.Teams = append(roster.Teams, t)
		} else {
			roster.Skipped = append(roster.Skipped, Skipped{Line: line, Reason: reason})
		}
	}
	return roster, nil
}

func loadWorkbook(f *excelize.File) (*Roster, error) {
	sheet := TeamsSheet
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("team workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s sheet: %w", sheet, err)
	}

	roster := &Roster{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) == 0 {
			continue
		}
		if t, reason, ok := fromRecord(row); ok {
			roster.Teams = append(roster.Teams, t)
		} else {
			roster.Skipped = append(roster.Skipped, Skipped{Line: i + 1, Reason: reason})
		}
	}
	return roster, nil
}

func fromRecord(record []string) (Team, string, bool) {
	if len(record) < 3 {
		return Team{}, fmt.Sprintf("expected 3 fields, got %d", len(record)), false
	}
	if len(record) > 3 {
		for _, extra := range record[3:] {
			if strings.TrimSpace(extra) != "" {
				return Team{}, fmt.Sprintf("expected 3 fields, got %d", len(record)), false
			}
		}
	}
	t := Team{
		Name:    strings.TrimSpace(record[0]),
		Town:    strings.TrimSpace(record[1]),
		Stadium: strings.TrimSpace(record[2]),
	}
	if t.Name == "" || t.Town == "" || t.Stadium == "" {
		return Team{}, "empty field", false
	}
	return t, "", true
}

// CheckUnique returns an error naming the first repeated team name.
func CheckUnique(teams []Team) error {
	seen := make(map[string]int, len(teams))
	for i, t := range teams {
		if prev, ok := seen[t.Name]; ok {
			return fmt.Errorf("team %q appears twice (entries %d and %d)", t.Name, prev+1, i+1)
		}
		seen[t.Name] = i
	}
	return nil
}
