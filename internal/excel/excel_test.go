package excel

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/derekprior/cueleague/internal/calendar"
	"github.com/derekprior/cueleague/internal/tournament"
)

func testRounds(t *testing.T, format tournament.Format, teams int) []tournament.Round {
	t.Helper()
	rounds, err := tournament.New(zerolog.Nop()).Generate(tournament.Request{
		TeamCount: teams,
		StartDate: "2026-09-07",
		EndDate:   "2027-05-31",
		Format:    format,
		Schedule: calendar.Preference{
			Frequency: calendar.Weekly,
			Days:      []calendar.Day{{Day: "Monday", StartTime: "19:00"}},
		},
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	return rounds
}

func testInfo() Info {
	return Info{League: "Monday Eight Ball", Format: tournament.SingleRoundRobin, RunID: "run-1234"}
}

func TestGenerateWorkbook(t *testing.T) {
	rounds := testRounds(t, tournament.SingleRoundRobin, 5)
	f, err := Generate(testInfo(), rounds)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	t.Run("has Schedule sheet", func(t *testing.T) {
		idx, err := f.GetSheetIndex(MasterSheet)
		if err != nil {
			t.Fatalf("GetSheetIndex error: %v", err)
		}
		if idx < 0 {
			t.Error("Schedule sheet not found")
		}
	})

	t.Run("master sheet has headers", func(t *testing.T) {
		for i, want := range MasterHeaders {
			val, _ := f.GetCellValue(MasterSheet, cellRef(i+1, 1))
			if val != want {
				t.Errorf("%s = %q, want %q", cellRef(i+1, 1), val, want)
			}
		}
	})

	rows, err := f.GetRows(MasterSheet)
	if err != nil {
		t.Fatalf("GetRows error: %v", err)
	}

	t.Run("one row per match and bye", func(t *testing.T) {
		// 5 rounds of 2 matches and 1 bye
		if len(rows) != 16 {
			t.Errorf("rows = %d, want 16", len(rows))
		}
	})

	t.Run("first match row", func(t *testing.T) {
		row := rows[1]
		want := []string{"1", "Round 1", "09/07/2026", "Mon", "19:00", "1"}
		for i := range want {
			if row[i] != want[i] {
				t.Errorf("column %s = %q, want %q", colLetter(i+1), row[i], want[i])
			}
		}
		if row[7] == "" || row[8] == "" || !strings.HasSuffix(row[9], " Home Venue") {
			t.Errorf("match columns = %v", row[7:])
		}
	})

	t.Run("bye rows", func(t *testing.T) {
		byes := 0
		for _, row := range rows[1:] {
			if len(row) > 5 && row[5] == ByeMarker {
				byes++
				if len(row) < 8 || row[7] == "" {
					t.Errorf("bye row without a team: %v", row)
				}
			}
		}
		if byes != 5 {
			t.Errorf("bye rows = %d, want 5", byes)
		}
	})

	t.Run("has per-team sheets", func(t *testing.T) {
		for _, team := range []string{"Team A", "Team B", "Team C", "Team D", "Team E"} {
			idx, err := f.GetSheetIndex(team)
			if err != nil {
				t.Fatalf("GetSheetIndex error: %v", err)
			}
			if idx < 0 {
				t.Errorf("sheet for %s not found", team)
			}
		}
	})

	t.Run("team sheet lists matches and the bye", func(t *testing.T) {
		rows, _ := f.GetRows("Team A")
		if len(rows) != 6 {
			t.Fatalf("Team A sheet has %d rows, want 6", len(rows))
		}
		matches, byes := 0, 0
		for _, row := range rows[1:] {
			switch {
			case len(row) > 5 && row[5] == ByeMarker:
				byes++
			case len(row) > 6 && (row[6] == "Home" || row[6] == "Away"):
				matches++
			}
		}
		if matches != 4 || byes != 1 {
			t.Errorf("Team A has %d matches and %d byes, want 4 and 1", matches, byes)
		}
	})

	t.Run("document properties", func(t *testing.T) {
		props, err := f.GetDocProps()
		if err != nil {
			t.Fatalf("GetDocProps error: %v", err)
		}
		if props.Title != "Monday Eight Ball" {
			t.Errorf("title = %q", props.Title)
		}
		if props.Identifier != "run-1234" {
			t.Errorf("identifier = %q", props.Identifier)
		}
		if props.Subject != "single_round_robin" {
			t.Errorf("subject = %q", props.Subject)
		}
	})

	t.Run("default Sheet1 removed", func(t *testing.T) {
		idx, _ := f.GetSheetIndex("Sheet1")
		if idx >= 0 {
			t.Error("Sheet1 should be removed")
		}
	})
}

func TestPlaceholdersGetNoSheet(t *testing.T) {
	rounds := testRounds(t, tournament.SingleElimination, 5)
	f, err := Generate(Info{Format: tournament.SingleElimination}, rounds)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	sheets := f.GetSheetList()
	if len(sheets) != 6 {
		t.Errorf("sheets = %v, want Schedule plus 5 teams", sheets)
	}
	for _, s := range sheets {
		if strings.HasPrefix(s, "Winner") {
			t.Errorf("placeholder got a sheet: %s", s)
		}
	}

	rows, _ := f.GetRows(MasterSheet)
	last := rows[len(rows)-1]
	if last[1] != "Finals" || last[7] != "Winner Match 1 (Round 2)" || last[8] != "Team E" {
		t.Errorf("final row = %v", last)
	}
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{"schedule": true}
	cases := []struct {
		in, want string
	}{
		{"Sharks", "Sharks"},
		{"Cue/Ball: Club?", "Cue-Ball- Club-"},
		{"The Extraordinarily Long Team Name Of Doom", "The Extraordinarily Long Team N"},
		{"SHARKS", "SHARKS (2)"},
		{"Schedule", "Schedule (2)"},
		{"'Quoted'", "Quoted"},
		{"", "Team"},
	}
	for _, tc := range cases {
		got := SheetName(tc.in, used)
		if got != tc.want {
			t.Errorf("SheetName(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if len([]rune(got)) > maxSheetName {
			t.Errorf("SheetName(%q) = %q is longer than %d", tc.in, got, maxSheetName)
		}
	}
}

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := Save(testInfo(), testRounds(t, tournament.RoundRobin, 4), path); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	// Verify we can read it back
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile error: %v", err)
	}
	defer f.Close()

	val, _ := f.GetCellValue(MasterSheet, "A1")
	if val != "Round" {
		t.Errorf("re-read A1 = %q, want Round", val)
	}
	props, err := f.GetDocProps()
	if err != nil {
		t.Fatalf("GetDocProps error: %v", err)
	}
	if props.Identifier != "run-1234" {
		t.Errorf("re-read identifier = %q", props.Identifier)
	}
}

func TestColLetter(t *testing.T) {
	cases := map[int]string{1: "A", 10: "J", 26: "Z", 27: "AA", 52: "AZ"}
	for col, want := range cases {
		if got := colLetter(col); got != want {
			t.Errorf("colLetter(%d) = %q, want %q", col, got, want)
		}
	}
}
