package extraction

import (
  "testing"
)

func TestParseCourses_FindsStructuredRows(t *testing.T) {
  text := "CORE COURSES CS 101 Introduction to Programming 3 Fall 2025 CS 201 Data Structures 3 Spring 2026"

  courses := ParseCourses(text)
  if len(courses) != 2 {
    t.Fatalf("expected 2 courses, got %#v", courses)
  }

  first := courses[0]
  if first.Code != "CS 101" || first.Name != "Introduction to Programming" {
    t.Fatalf("unexpected first course: %#v", first)
  }
  if first.Credits != 3 || first.SemesterTaken != "Fall 2025" {
    t.Fatalf("unexpected credits/semester: %#v", first)
  }
  if !first.Completed {
    t.Fatalf("expected extracted rows to be completed")
  }
  if !first.Required || first.Section != "CORE" {
    t.Fatalf("expected a required CORE course, got %#v", first)
  }

  second := courses[1]
  if second.Code != "CS 201" || second.SemesterTaken != "Spring 2026" {
    t.Fatalf("unexpected second course: %#v", second)
  }
}

func TestParseCourses_ElectiveSectionClearsRequired(t *testing.T) {
  text := "CORE COURSES IST 302 Databases 4 Fall 2025 ELECTIVE COURSES ART 110 Drawing Fundamentals 3 Spring 2026"

  courses := ParseCourses(text)
  if len(courses) != 2 {
    t.Fatalf("expected 2 courses, got %#v", courses)
  }
  if !courses[0].Required {
    t.Fatalf("expected the CORE row to be required: %#v", courses[0])
  }
  if courses[1].Required || courses[1].Section != "ELECTIVE" {
    t.Fatalf("expected the ELECTIVE row to be an elective: %#v", courses[1])
  }
}

func TestParseCourses_RowsBeforeAnyHeadingAreRequired(t *testing.T) {
  text := "IST 302 Databases 4 Fall 2025"

  courses := ParseCourses(text)
  if len(courses) != 1 {
    t.Fatalf("expected 1 course, got %#v", courses)
  }
  if !courses[0].Required || courses[0].Section != "" {
    t.Fatalf("expected a required course with no section, got %#v", courses[0])
  }
}

func TestParseCourses_DeduplicatesByCode(t *testing.T) {
  text := "CS 101 Intro to Programming 3 Fall 2025 CS 101 Intro to Programming Again 3 Spring 2026"

  courses := ParseCourses(text)
  if len(courses) != 1 {
    t.Fatalf("expected the duplicate dropped, got %#v", courses)
  }
  if courses[0].SemesterTaken != "Fall 2025" {
    t.Fatalf("expected the first occurrence kept, got %#v", courses[0])
  }
}

func TestParseCourses_NormalizesCasing(t *testing.T) {
  text := "cs 101 intro to things 3 fall 2025"

  courses := ParseCourses(text)
  if len(courses) != 1 {
    t.Fatalf("expected 1 course, got %#v", courses)
  }
  if courses[0].Code != "CS 101" {
    t.Fatalf("expected uppercased code, got %q", courses[0].Code)
  }
  if courses[0].SemesterTaken != "Fall 2025" {
    t.Fatalf("expected canonical season casing, got %q", courses[0].SemesterTaken)
  }
}

func TestParseCourses_IgnoresRowsWithoutSemester(t *testing.T) {
  text := "CS 101 Introduction to Programming 3 and some trailing prose"

  courses := ParseCourses(text)
  if len(courses) != 0 {
    t.Fatalf("expected no courses without a semester, got %#v", courses)
  }
}

func TestParseCourses_EmptyTextYieldsEmptySlice(t *testing.T) {
  courses := ParseCourses("")
  if courses == nil || len(courses) != 0 {
    t.Fatalf("expected an empty non-nil slice, got %#v", courses)
  }
}
