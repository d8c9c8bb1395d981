package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/cueleague/internal/tournament"
)

const (
	MasterSheet = "Schedule"
	DateFormat  = "01/02/2006"
	TimeFormat  = "15:04"

	// ByeMarker fills the Match column of rows that record a bye.
	ByeMarker = "BYE"

	maxSheetName = 31
)

// MasterHeaders are the columns of the master sheet, in order.
var MasterHeaders = []string{"Round", "Name", "Date", "Day", "Time", "Match", "Bracket", "Home", "Away", "Venue"}

var teamHeaders = []string{"Round", "Name", "Date", "Day", "Time", "Opponent", "Home/Away", "Venue"}

// Info describes the season a workbook was generated for. It is written to
// the workbook's document properties.
type Info struct {
	League string
	Format tournament.Format
	RunID  string
}

// Generate creates an Excel workbook with the master schedule and per-team sheets.
func Generate(info Info, rounds []tournament.Round) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	if err := writeMasterSheet(f, rounds); err != nil {
		return nil, fmt.Errorf("writing master sheet: %w", err)
	}

	if err := writeTeamSheets(f, rounds); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	title := info.League
	if title == "" {
		title = "League Schedule"
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       title,
		Subject:     info.Format.String(),
		Identifier:  info.RunID,
		Creator:     "cueleague",
		Description: info.Format.Description(),
	}); err != nil {
		return nil, fmt.Errorf("writing document properties: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// Save generates the workbook and writes it to path.
func Save(info Info, rounds []tournament.Round, path string) error {
	f, err := Generate(info, rounds)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if style := headerStyle(f); style != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), style)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, v := range values {
		f.SetCellValue(sheet, cellRef(i+1, row), v)
	}
}

func roundCells(r tournament.Round) []interface{} {
	return []interface{}{
		r.Number,
		r.Name,
		r.Date.Format(DateFormat),
		r.Date.Format("Mon"),
		r.Date.Format(TimeFormat),
	}
}

func writeMasterSheet(f *excelize.File, rounds []tournament.Round) error {
	sheet := MasterSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	writeHeaders(f, sheet, MasterHeaders)

	row := 2
	for _, r := range rounds {
		for _, m := range r.Matches {
			cells := append(roundCells(r), m.Number, string(m.Bracket), m.Home.Name(), m.Away.Name(), m.Venue)
			writeRow(f, sheet, row, cells)
			row++
		}
		for _, b := range r.Byes {
			cells := append(roundCells(r), ByeMarker, "", b.Name(), "", "")
			writeRow(f, sheet, row, cells)
			row++
		}
	}
	lastRow := row - 1

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	if cellStyle != 0 && lastRow >= 2 {
		f.SetCellStyle(sheet, "A2", cellRef(len(MasterHeaders), lastRow), cellStyle)
	}

	// Set column widths (sized for Arial 16)
	widths := []float64{10, 30, 16, 8, 10, 10, 12, 34, 34, 34}
	for i, w := range widths {
		col := colLetter(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	// Bye rows get a light red fill
	if lastRow >= 2 {
		byeFill, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFC7CE"}},
			Font: &excelize.Font{Size: 16, Family: "Arial"},
		})
		cellRange := fmt.Sprintf("A2:%s", cellRef(len(MasterHeaders), lastRow))
		f.SetConditionalFormat(sheet, cellRange, []excelize.ConditionalFormatOptions{
			{
				Type:     "formula",
				Criteria: fmt.Sprintf(`$F2="%s"`, ByeMarker),
				Format:   &byeFill,
			},
		})
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// teamRow is one line on a team's own sheet.
type teamRow struct {
	round    tournament.Round
	opponent string
	homeAway string
	venue    string
}

func writeTeamSheets(f *excelize.File, rounds []tournament.Round) error {
	teams, rows := collectTeamRows(rounds)

	used := map[string]bool{strings.ToLower(MasterSheet): true}
	for _, team := range teams {
		sheet := SheetName(team, used)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sheet for %s: %w", team, err)
		}
		writeHeaders(f, sheet, teamHeaders)

		cellStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Size: 16, Family: "Arial"},
		})

		for i, tr := range rows[team] {
			row := i + 2
			cells := append(roundCells(tr.round), tr.opponent, tr.homeAway, tr.venue)
			writeRow(f, sheet, row, cells)
		}
		if n := len(rows[team]); cellStyle != 0 && n > 0 {
			f.SetCellStyle(sheet, "A2", cellRef(len(teamHeaders), n+1), cellStyle)
		}

		// Set column widths (sized for Arial 16)
		widths := []float64{10, 30, 16, 8, 10, 34, 14, 34}
		for i, w := range widths {
			col := colLetter(i + 1)
			f.SetColWidth(sheet, col, col, w)
		}
	}

	return nil
}

// collectTeamRows returns every real team in order of first appearance and
// the rows for its sheet. Placeholders never get a sheet.
func collectTeamRows(rounds []tournament.Round) ([]string, map[string][]teamRow) {
	var teams []string
	rows := make(map[string][]teamRow)
	add := func(c tournament.Competitor, tr teamRow) {
		if !c.IsReal() {
			return
		}
		name := c.Name()
		if _, ok := rows[name]; !ok {
			teams = append(teams, name)
		}
		rows[name] = append(rows[name], tr)
	}

	for _, r := range rounds {
		for _, m := range r.Matches {
			add(m.Home, teamRow{round: r, opponent: m.Away.Name(), homeAway: "Home", venue: m.Venue})
			add(m.Away, teamRow{round: r, opponent: m.Home.Name(), homeAway: "Away", venue: m.Venue})
		}
		for _, b := range r.Byes {
			add(b, teamRow{round: r, opponent: ByeMarker})
		}
	}
	return teams, rows
}

// SheetName turns a team name into a unique, legal worksheet name and
// records it in used. Names are compared case-insensitively, as Excel does.
func SheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, name)
	clean = strings.Trim(clean, "'")
	if clean == "" {
		clean = "Team"
	}
	clean = truncate(clean, maxSheetName)

	candidate := clean
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncate(clean, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
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
