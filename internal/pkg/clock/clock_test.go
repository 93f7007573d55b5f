package clock

import (
	"testing"
	"time"
)

func phnomPenh(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Phnom_Penh")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestWorkDateOf(t *testing.T) {
	loc := phnomPenh(t)

	cases := []struct {
		name string
		ts   time.Time
		want string
	}{
		{
			name: "midday local",
			ts:   time.Date(2024, 6, 3, 12, 30, 0, 0, loc),
			want: "2024-06-03",
		},
		{
			name: "just before local midnight",
			ts:   time.Date(2024, 6, 3, 23, 59, 59, 0, loc),
			want: "2024-06-03",
		},
		{
			// 18:30 UTC is 01:30 the next day in ICT (+07:00).
			name: "utc timestamp crosses local midnight",
			ts:   time.Date(2024, 6, 3, 18, 30, 0, 0, time.UTC),
			want: "2024-06-04",
		},
		{
			name: "local midnight exactly",
			ts:   time.Date(2024, 6, 4, 0, 0, 0, 0, loc),
			want: "2024-06-04",
		},
	}

	for _, c := range cases {
		got := WorkDateOf(c.ts, loc)
		if got.Format("2006-01-02") != c.want {
			t.Errorf("%s: WorkDateOf(%v) = %s, want %s", c.name, c.ts, got.Format("2006-01-02"), c.want)
		}
		if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
			t.Errorf("%s: work date is not at midnight: %v", c.name, got)
		}
	}
}

func TestCutoffOn(t *testing.T) {
	loc := phnomPenh(t)
	workDate := time.Date(2024, 6, 3, 0, 0, 0, 0, loc)

	cutoff := CutoffOn(workDate, "09:00", loc)
	want := time.Date(2024, 6, 3, 9, 0, 0, 0, loc)
	if !cutoff.Equal(want) {
		t.Errorf("CutoffOn = %v, want %v", cutoff, want)
	}

	checkIn := time.Date(2024, 6, 3, 9, 10, 0, 0, loc)
	if !checkIn.After(cutoff) {
		t.Errorf("09:10 should be after the 09:00 cutoff")
	}
}

func TestFixedClock(t *testing.T) {
	loc := phnomPenh(t)
	instant := time.Date(2024, 6, 3, 8, 45, 0, 0, time.UTC)

	c := FixedClock{Time: instant, Loc: loc}
	if !c.Now().Equal(instant) {
		t.Errorf("FixedClock.Now() = %v, want %v", c.Now(), instant)
	}
	if c.Now().Location() != loc {
		t.Errorf("FixedClock.Now() location = %v, want %v", c.Now().Location(), loc)
	}
}
