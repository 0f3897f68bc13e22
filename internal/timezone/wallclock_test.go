package timezone

import (
	"testing"
	"time"
)

func TestWallClockRoundTrip(t *testing.T) {
	zones := []string{"UTC", "America/Sao_Paulo", "Asia/Tokyo", "Pacific/Kiritimati", "America/Los_Angeles"}

	cases := []struct {
		year              int
		month             time.Month
		day, hour, minute int
	}{
		{2024, time.January, 1, 0, 0},
		{2024, time.February, 29, 23, 45},
		{2024, time.March, 10, 2, 30},
		{2024, time.November, 3, 1, 15},
		{2025, time.December, 31, 14, 0},
	}

	for _, name := range zones {
		loc, err := time.LoadLocation(name)
		if err != nil {
			t.Skipf("timezone %s not available: %v", name, err)
		}

		for _, tc := range cases {
			stored := StoreWallClock(tc.year, tc.month, tc.day, tc.hour, tc.minute)

			// simula um driver que devolve o instante em outro fuso
			back := WallClockFromStored(stored.In(loc))

			want := WallClock{Year: tc.year, Month: tc.month, Day: tc.day, Hour: tc.hour, Minute: tc.minute}
			if back != want {
				t.Errorf("%s: round trip of %s gave %s", name, want, back)
			}
		}
	}
}

func TestWallClockFormatsDSTGapLiterally(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("timezone not available: %v", err)
	}

	// 02:30 não existe em Los Angeles em 2024-03-10
	stored := StoreWallClock(2024, time.March, 10, 2, 30)
	w := WallClockFromStored(stored.In(loc))

	if w.Date() != "2024-03-10" || w.Clock() != "02:30" {
		t.Fatalf("expected 2024-03-10 02:30, got %s", w)
	}
	if got := w.In(time.UTC); !got.Equal(stored) {
		t.Fatalf("expected %s, got %s", stored, got)
	}
}

func TestStoredDayRange(t *testing.T) {
	start, end := StoredDayRange(2024, time.May, 16)

	inside := StoreWallClock(2024, time.May, 16, 23, 59)
	if inside.Before(start) || !inside.Before(end) {
		t.Fatalf("expected %s inside [%s, %s)", inside, start, end)
	}

	next := StoreWallClock(2024, time.May, 17, 0, 0)
	if next.Before(end) {
		t.Fatalf("expected next day start to be outside the range")
	}
}

func TestLocationFallsBackToDefault(t *testing.T) {
	if !IsValid(DefaultTimezone) {
		t.Skip("tzdata not available")
	}

	loc := Location("Not/AZone")
	if loc == nil || loc.String() != DefaultTimezone {
		t.Fatalf("expected fallback to %s, got %v", DefaultTimezone, loc)
	}
}
