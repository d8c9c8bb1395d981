package calendar

import (
	"testing"
	"time"
)

func at(y, m, d, hh, mm int) time.Time {
	return time.Date(y, time.Month(m), d, hh, mm, 0, 0, time.UTC)
}

func TestFirst(t *testing.T) {
	t.Run("start date on a configured day is used", func(t *testing.T) {
		r := New(Preference{Days: []Day{{Day: "Monday", StartTime: "19:30"}}})
		got := r.First(at(2026, 9, 7, 0, 0)) // Monday
		if want := at(2026, 9, 7, 19, 30); !got.Equal(want) {
			t.Errorf("First() = %v, want %v", got, want)
		}
	})

	t.Run("start date mid-week moves to the next configured day", func(t *testing.T) {
		r := New(Preference{Days: []Day{{Day: "Monday", StartTime: "19:00"}}})
		got := r.First(at(2026, 9, 9, 0, 0)) // Wednesday
		if want := at(2026, 9, 14, 19, 0); !got.Equal(want) {
			t.Errorf("First() = %v, want %v", got, want)
		}
	})

	t.Run("blacked out start date is skipped", func(t *testing.T) {
		r := New(Preference{
			Days:      []Day{{Day: "Monday"}},
			Blackouts: []time.Time{at(2026, 9, 7, 0, 0)},
		})
		got := r.First(at(2026, 9, 7, 0, 0))
		if want := at(2026, 9, 14, 19, 0); !got.Equal(want) {
			t.Errorf("First() = %v, want %v", got, want)
		}
	})
}

func TestNext(t *testing.T) {
	t.Run("single day advances a week at a time", func(t *testing.T) {
		r := New(Preference{Days: []Day{{Day: "Monday", StartTime: "19:00"}}})
		d := r.First(at(2026, 9, 7, 0, 0))
		want := []time.Time{at(2026, 9, 14, 19, 0), at(2026, 9, 21, 19, 0), at(2026, 9, 28, 19, 0)}
		for _, w := range want {
			d = r.Next(d)
			if !d.Equal(w) {
				t.Fatalf("Next() = %v, want %v", d, w)
			}
		}
	})

	t.Run("weekly cycles through every configured day", func(t *testing.T) {
		r := New(Preference{
			Frequency: Weekly,
			Days: []Day{
				{Day: "Thursday", StartTime: "20:00"},
				{Day: "Mon", StartTime: "18:45"},
			},
		})
		d := r.First(at(2026, 9, 7, 0, 0))
		got := []time.Time{d}
		for i := 0; i < 3; i++ {
			d = r.Next(d)
			got = append(got, d)
		}
		want := []time.Time{
			at(2026, 9, 7, 18, 45),
			at(2026, 9, 10, 20, 0),
			at(2026, 9, 14, 18, 45),
			at(2026, 9, 17, 20, 0),
		}
		for i := range want {
			if !got[i].Equal(want[i]) {
				t.Errorf("round %d = %v, want %v", i+1, got[i], want[i])
			}
		}
	})

	t.Run("daily pins rounds to the first configured day", func(t *testing.T) {
		r := New(Preference{
			Frequency: Daily,
			Days: []Day{
				{Day: "Thursday", StartTime: "20:00"},
				{Day: "Monday", StartTime: "18:45"},
			},
		})
		d := r.First(at(2026, 9, 7, 0, 0))
		if want := at(2026, 9, 10, 20, 0); !d.Equal(want) {
			t.Fatalf("First() = %v, want %v", d, want)
		}
		d = r.Next(d)
		if want := at(2026, 9, 17, 20, 0); !d.Equal(want) {
			t.Errorf("Next() = %v, want %v", d, want)
		}
	})

	t.Run("blackout pushes to the following configured day", func(t *testing.T) {
		r := New(Preference{
			Days:      []Day{{Day: "Thursday", StartTime: "19:00"}},
			Blackouts: []time.Time{at(2026, 11, 26, 0, 0)},
		})
		got := r.Next(at(2026, 11, 19, 19, 0))
		if want := at(2026, 12, 3, 19, 0); !got.Equal(want) {
			t.Errorf("Next() = %v, want %v", got, want)
		}
	})

	t.Run("never earlier than the previous date", func(t *testing.T) {
		r := New(Preference{Days: []Day{{Day: "Sat"}, {Day: "Sun"}, {Day: "Wed"}}})
		d := r.First(at(2026, 1, 1, 0, 0))
		for i := 0; i < 60; i++ {
			n := r.Next(d)
			if !n.After(d) {
				t.Fatalf("Next(%v) = %v, not after previous", d, n)
			}
			d = n
		}
	})
}

func TestFallbacks(t *testing.T) {
	t.Run("malformed time falls back to 19:00", func(t *testing.T) {
		r := New(Preference{Days: []Day{{Day: "Monday", StartTime: "25:99"}}})
		got := r.First(at(2026, 9, 7, 0, 0))
		if got.Hour() != 19 || got.Minute() != 0 {
			t.Errorf("time = %02d:%02d, want 19:00", got.Hour(), got.Minute())
		}
	})

	t.Run("no days falls back to Monday 19:00", func(t *testing.T) {
		r := New(Preference{})
		got := r.First(at(2026, 9, 9, 0, 0)) // Wednesday
		if want := at(2026, 9, 14, 19, 0); !got.Equal(want) {
			t.Errorf("First() = %v, want %v", got, want)
		}
	})

	t.Run("unrecognized days are ignored", func(t *testing.T) {
		r := New(Preference{Days: []Day{{Day: "Funday"}, {Day: "friday", StartTime: "9:15"}}})
		got := r.First(at(2026, 9, 7, 0, 0))
		if want := at(2026, 9, 11, 9, 15); !got.Equal(want) {
			t.Errorf("First() = %v, want %v", got, want)
		}
	})
}

func TestValidStartTime(t *testing.T) {
	for _, s := range []string{"19:00", "9:05", "00:00", "23:59"} {
		if !ValidStartTime(s) {
			t.Errorf("ValidStartTime(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"24:00", "7pm", "19:60", "", "19:5"} {
		if ValidStartTime(s) {
			t.Errorf("ValidStartTime(%q) = true, want false", s)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	if wd, ok := ParseWeekday(" TUESDAY "); !ok || wd != time.Tuesday {
		t.Errorf("ParseWeekday(TUESDAY) = %v, %v", wd, ok)
	}
	if _, ok := ParseWeekday("Funday"); ok {
		t.Error("ParseWeekday(Funday) should not be recognized")
	}
}
