// Package journey converts a course catalog and one student's completion
// records into aggregate progress metrics and a laid-out dependency graph.
// Every function here is pure: inputs are read as an immutable snapshot,
// nothing is cached between invocations, and concurrent calls for different
// students never interfere.
package journey

import (
	"errors"
)

var (
	ErrNilCatalog = errors.New("Catalog must not be nil")
	ErrNilRecords = errors.New("Completion records must not be nil")
)

// Course is the catalog entry the engine reads. Prerequisites reference other
// courses by code and may dangle; dangling references never produce nodes or
// edges.
type Course struct {
	Code          string
	Name          string
	Credits       int
	Required      bool
	Prerequisites []string
}

// CompletionRecord is one student's fact about one course. An empty
// SemesterTaken means the course has no scheduled term.
type CompletionRecord struct {
	CourseCode    string
	Completed     bool
	Grade         string
	SemesterTaken string
}
