package excel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/fixtures/internal/schedule"
)

// FixturesSheet holds every match, one row each, in weekend order.
const FixturesSheet = "Fixtures"

// FixturesHeaders are the column titles of the fixtures sheet.
var FixturesHeaders = []string{"Weekend", "Home", "Away", "Leg", "Derby", "Stadium"}

// Generate creates an Excel workbook with the fixture list and per-team sheets.
func Generate(result *schedule.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      "Fixtures",
		Identifier: result.ID,
		Creator:    "fixtures",
	}); err != nil {
		return nil, fmt.Errorf("setting document properties: %w", err)
	}

	if err := writeFixturesSheet(f, result); err != nil {
		return nil, fmt.Errorf("writing fixtures sheet: %w", err)
	}

	if err := writeTeamSheets(f, result); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	return f, nil
}

// SaveFile generates the workbook and writes it to path.
func SaveFile(result *schedule.Result, path string) error {
	f, err := Generate(result)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeFixturesSheet(f *excelize.File, result *schedule.Result) error {
	// The workbook's default sheet becomes the fixtures sheet.
	sheet := FixturesSheet
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	for i, h := range FixturesHeaders {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 14, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if headerStyle != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(FixturesHeaders), 1), headerStyle)
	}

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 14, Family: "Arial"},
	})

	// Every other weekend is shaded
	shadedStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 14, Family: "Arial"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})

	row := 2
	for _, w := range result.Weekends {
		style := cellStyle
		if w.Number%2 == 0 {
			style = shadedStyle
		}
		for _, m := range w.Matches {
			derby := ""
			if m.Derby {
				derby = "Yes"
			}
			values := []any{w.Number, m.Home.Name, m.Away.Name, m.Leg, derby, m.Stadium()}
			for col, v := range values {
				f.SetCellValue(sheet, cellRef(col+1, row), v)
			}
			if style != 0 {
				f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(FixturesHeaders), row), style)
			}
			row++
		}
	}

	widths := map[string]float64{"A": 10, "B": 22, "C": 22, "D": 6, "E": 8, "F": 26}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeTeamSheets(f *excelize.File, result *schedule.Result) error {
	headers := []string{"Weekend", "Opponent", "Home/Away", "Leg", "Stadium"}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 14, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 14, Family: "Arial"},
	})

	// Sheet names are compared without case, as Excel does.
	used := map[string]bool{strings.ToLower(FixturesSheet): true}
	for _, t := range result.Teams {
		sheet := uniqueSheetName(sheetName(t.Name), used)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("team %q: %w", t.Name, err)
		}

		for i, h := range headers {
			f.SetCellValue(sheet, cellRef(i+1, 1), h)
		}
		if headerStyle != 0 {
			f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), headerStyle)
		}

		// Collect this team's matches
		type teamMatch struct {
			weekend  int
			opponent string
			homeAway string
			leg      int
			stadium  string
		}
		var matches []teamMatch
		for _, w := range result.Weekends {
			for _, m := range w.Matches {
				if m.Home.Name == t.Name {
					matches = append(matches, teamMatch{
						weekend: w.Number, opponent: m.Away.Name, homeAway: "Home",
						leg: m.Leg, stadium: m.Stadium(),
					})
				} else if m.Away.Name == t.Name {
					matches = append(matches, teamMatch{
						weekend: w.Number, opponent: m.Home.Name, homeAway: "Away",
						leg: m.Leg, stadium: m.Stadium(),
					})
				}
			}
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].weekend < matches[j].weekend
		})

		for i, m := range matches {
			row := i + 2
			f.SetCellValue(sheet, cellRef(1, row), m.weekend)
			f.SetCellValue(sheet, cellRef(2, row), m.opponent)
			f.SetCellValue(sheet, cellRef(3, row), m.homeAway)
			f.SetCellValue(sheet, cellRef(4, row), m.leg)
			f.SetCellValue(sheet, cellRef(5, row), m.stadium)
			if cellStyle != 0 {
				f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), cellStyle)
			}
		}

		widths := map[string]float64{"A": 10, "B": 22, "C": 12, "D": 6, "E": 26}
		for col, w := range widths {
			f.SetColWidth(sheet, col, col, w)
		}
	}

	return nil
}

const maxSheetName = 31

// sheetName trims a team name to the 31 characters Excel allows and
// replaces characters that are invalid in sheet names.
func sheetName(name string) string {
	r := []rune(name)
	for i, c := range r {
		switch c {
		case ':', '\\', '/', '?', '*', '[', ']':
			r[i] = '_'
		}
	}
	if len(r) > maxSheetName {
		r = r[:maxSheetName]
	}
	return string(r)
}

// uniqueSheetName returns name, or name with a " (n)" suffix when a sheet
// with the same case-folded name is already in used, and records the result.
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(name)
		if keep := maxSheetName - len([]rune(suffix)); len(base) > keep {
			base = base[:keep]
		}
		candidate = string(base) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
