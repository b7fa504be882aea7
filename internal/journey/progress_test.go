package journey

import (
	"errors"
	"testing"
)

func TestCalculateProgress_CountsOnlyRequiredCourses(t *testing.T) {
	progress, err := CalculateProgress(scenarioCatalog(), scenarioRecords())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if progress.Completed != 1 || progress.Total != 2 {
		t.Fatalf("expected 1/2, got %d/%d", progress.Completed, progress.Total)
	}
	if progress.Percentage != 0.5 {
		t.Fatalf("expected percentage 0.5, got %v", progress.Percentage)
	}
}

func TestCalculateProgress_ElectiveOnlyCompletionsStayZero(t *testing.T) {
	catalog := []Course{
		{Code: "CS101", Required: true},
		{Code: "ART100", Required: false},
		{Code: "ART200", Required: false},
	}
	records := []CompletionRecord{
		{CourseCode: "ART100", Completed: true},
		{CourseCode: "ART200", Completed: true},
	}

	progress, err := CalculateProgress(catalog, records)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if progress.Completed != 0 || progress.Total != 1 {
		t.Fatalf("expected 0/1, got %d/%d", progress.Completed, progress.Total)
	}
	if progress.Percentage != 0 {
		t.Fatalf("expected zero percentage, got %v", progress.Percentage)
	}
}

func TestCalculateProgress_EmptyCatalogDividesSafely(t *testing.T) {
	progress, err := CalculateProgress([]Course{}, []CompletionRecord{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if progress.Completed != 0 || progress.Total != 0 || progress.Percentage != 0 {
		t.Fatalf("expected all-zero progress, got %#v", progress)
	}
}

func TestCalculateProgress_NoRecordsMeansNothingCompleted(t *testing.T) {
	progress, err := CalculateProgress(scenarioCatalog(), []CompletionRecord{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if progress.Completed != 0 || progress.Total != 2 {
		t.Fatalf("expected 0/2, got %d/%d", progress.Completed, progress.Total)
	}
}

func TestCalculateProgress_IncompleteRecordsDoNotCount(t *testing.T) {
	records := []CompletionRecord{
		{CourseCode: "CS101", Completed: false},
		{CourseCode: "CS201", Completed: false},
	}

	progress, err := CalculateProgress(scenarioCatalog(), records)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if progress.Completed != 0 {
		t.Fatalf("expected no completions, got %d", progress.Completed)
	}
}

func TestCalculateProgress_NilInputsAreErrors(t *testing.T) {
	if _, err := CalculateProgress(nil, []CompletionRecord{}); !errors.Is(err, ErrNilCatalog) {
		t.Fatalf("expected ErrNilCatalog, got %v", err)
	}
	if _, err := CalculateProgress([]Course{}, nil); !errors.Is(err, ErrNilRecords) {
		t.Fatalf("expected ErrNilRecords, got %v", err)
	}
}

func TestCalculateProgress_PercentageStaysInBounds(t *testing.T) {
	records := []CompletionRecord{
		{CourseCode: "CS101", Completed: true},
		{CourseCode: "CS101", Completed: true},
		{CourseCode: "GHOST999", Completed: true},
	}

	progress, err := CalculateProgress(scenarioCatalog(), records)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if progress.Percentage < 0 || progress.Percentage > 1 {
		t.Fatalf("percentage out of bounds: %v", progress.Percentage)
	}
	if progress.Completed > progress.Total {
		t.Fatalf("completed exceeds total: %#v", progress)
	}
}
