package journey

import (
	"testing"
)

func TestAssignPalette_IsDeterministic(t *testing.T) {
	labels := []string{"Fall 2025", "Spring 2026", "Fall 2026"}
	first := AssignPalette(labels)
	second := AssignPalette(labels)

	for _, label := range labels {
		if first.Scheme(label) != second.Scheme(label) {
			t.Fatalf("expected identical schemes for %q across invocations", label)
		}
	}
}

func TestAssignPalette_HueFollowsPosition(t *testing.T) {
	forward := AssignPalette([]string{"Fall 2025", "Spring 2026"})
	reversed := AssignPalette([]string{"Spring 2026", "Fall 2025"})

	if forward.Scheme("Fall 2025") == reversed.Scheme("Fall 2025") {
		t.Fatalf("expected hue to change when the label moves position")
	}
	if forward.Scheme("Fall 2025") != reversed.Scheme("Spring 2026") {
		t.Fatalf("expected position 0 to keep its hue regardless of label")
	}
}

func TestAssignPalette_HueRotationStep(t *testing.T) {
	labels := []string{"a", "b", "c", "d", "e", "f", "g"}
	palette := AssignPalette(labels)

	if got := palette.Scheme("a").Background.Hue; got != 0 {
		t.Fatalf("expected hue 0 at position 0, got %d", got)
	}
	if got := palette.Scheme("b").Background.Hue; got != 67 {
		t.Fatalf("expected hue 67 at position 1, got %d", got)
	}
	// 6*67 wraps past 360.
	if got := palette.Scheme("g").Background.Hue; got != 42 {
		t.Fatalf("expected hue 42 at position 6, got %d", got)
	}
}

func TestAssignPalette_SentinelStaysOutsideRotation(t *testing.T) {
	palette := AssignPalette([]string{"Fall 2025"})

	sentinel := palette.Scheme(NotScheduled)
	if sentinel.Background.Saturation != 0 {
		t.Fatalf("expected neutral gray sentinel, got %v", sentinel.Background)
	}
	if sentinel == palette.Scheme("Fall 2025") {
		t.Fatalf("expected sentinel scheme to differ from rotation colors")
	}
	if palette.Scheme("never assigned") != sentinel {
		t.Fatalf("expected unknown labels to fall back to the sentinel scheme")
	}
}

func TestAssignPalette_TriplesShareHueAndWhiteText(t *testing.T) {
	palette := AssignPalette([]string{"Fall 2025", "Spring 2026"})

	for _, label := range []string{"Fall 2025", "Spring 2026"} {
		scheme := palette.Scheme(label)
		if scheme.Background.Hue != scheme.Border.Hue {
			t.Fatalf("expected border to share the background hue for %q", label)
		}
		if scheme.Border.Lightness >= scheme.Background.Lightness {
			t.Fatalf("expected a darker border for %q", label)
		}
		if scheme.Text.Lightness != 100 || scheme.Text.Saturation != 0 {
			t.Fatalf("expected white text for %q, got %v", label, scheme.Text)
		}
	}
}

func TestColorWithAlpha_ComposesLosslessly(t *testing.T) {
	base := Color{Hue: 67, Saturation: 70, Lightness: 60, Alpha: 1}

	dimmed := base.WithAlpha(IncompleteOpacity)
	if dimmed.Alpha != 0.6 {
		t.Fatalf("expected alpha 0.6, got %v", dimmed.Alpha)
	}
	if dimmed.Hue != base.Hue || dimmed.Saturation != base.Saturation || dimmed.Lightness != base.Lightness {
		t.Fatalf("expected alpha composition to leave the color components alone")
	}

	twice := dimmed.WithAlpha(0.5)
	if twice.Alpha != 0.3 {
		t.Fatalf("expected multiplied alpha 0.3, got %v", twice.Alpha)
	}
}

func TestColorString_RendersHSLA(t *testing.T) {
	c := Color{Hue: 67, Saturation: 70, Lightness: 38, Alpha: 1}
	if got := c.String(); got != "hsla(67, 70%, 38%, 1)" {
		t.Fatalf("unexpected color string: %q", got)
	}
	if got := c.WithAlpha(0.6).String(); got != "hsla(67, 70%, 38%, 0.6)" {
		t.Fatalf("unexpected dimmed color string: %q", got)
	}
}
