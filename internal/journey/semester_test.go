package journey

import (
	"testing"
)

func TestResolve_OrdersChronologically(t *testing.T) {
	fall25 := Resolve("Fall 2025")
	spring26 := Resolve("Spring 2026")
	sentinel := Resolve(NotScheduled)

	if !fall25.Less(spring26) {
		t.Fatalf("expected Fall 2025 < Spring 2026, got %v vs %v", fall25, spring26)
	}
	if !spring26.Less(sentinel) {
		t.Fatalf("expected Spring 2026 < Not Scheduled, got %v vs %v", spring26, sentinel)
	}
}

func TestResolve_SeasonOrderWithinYear(t *testing.T) {
	spring := Resolve("Spring 2025")
	summer := Resolve("Summer 2025")
	fall := Resolve("Fall 2025")
	winter := Resolve("Winter 2025")

	if !spring.Less(summer) || !summer.Less(fall) || !fall.Less(winter) {
		t.Fatalf("expected Spring < Summer < Fall < Winter, got %v %v %v %v", spring, summer, fall, winter)
	}
	if spring.SeasonRank != 1 || summer.SeasonRank != 2 || fall.SeasonRank != 3 || winter.SeasonRank != 4 {
		t.Fatalf("unexpected season ranks: %v %v %v %v", spring, summer, fall, winter)
	}
}

func TestResolve_UnknownSeasonDegrades(t *testing.T) {
	got := Resolve("Blergh 2025")
	if got.SeasonRank != 98 {
		t.Fatalf("expected season rank 98, got %v", got)
	}
	if got.YearRank != 2025 {
		t.Fatalf("expected year rank 2025, got %v", got)
	}
	if !got.Less(Resolve(NotScheduled)) {
		t.Fatalf("expected unknown season to sort before the sentinel")
	}
}

func TestResolve_UnparseableYearDegrades(t *testing.T) {
	got := Resolve("Fall abc")
	if got.YearRank != 9998 {
		t.Fatalf("expected year rank 9998, got %v", got)
	}
	if got.SeasonRank != 3 {
		t.Fatalf("expected season rank 3, got %v", got)
	}
	if !Resolve("Winter 2099").Less(got) {
		t.Fatalf("expected valid years to sort before unparseable years")
	}
	if !got.Less(Resolve(NotScheduled)) {
		t.Fatalf("expected unparseable year to sort before the sentinel")
	}
}

func TestResolve_SentinelAndEmptyLabels(t *testing.T) {
	for _, label := range []string{NotScheduled, "not scheduled", "", "   "} {
		got := Resolve(label)
		if got.YearRank != 9999 || got.SeasonRank != 99 {
			t.Fatalf("expected sentinel ordinal for %q, got %v", label, got)
		}
	}
}

func TestResolve_SingleFieldLabel(t *testing.T) {
	got := Resolve("Fall")
	if got.YearRank != 9998 || got.SeasonRank != 3 {
		t.Fatalf("expected (9998, 3) for bare season, got %v", got)
	}
}

func TestResolve_SeasonMatchIsCaseInsensitive(t *testing.T) {
	if Resolve("fall 2025") != Resolve("Fall 2025") {
		t.Fatalf("expected case-insensitive season match")
	}
}

func TestResolve_NeverPanicsOnArbitraryInput(t *testing.T) {
	for _, label := range []string{"  Fall  2025  ", "2025 Fall", "Fall 2025 extra junk 2026", "!!!", "Winter -500"} {
		_ = Resolve(label)
	}
}
