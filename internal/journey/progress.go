package journey

// Progress is the completion summary over required courses only.
type Progress struct {
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// CalculateProgress counts required catalog courses and how many of them the
// student has completed. Electives never enter either count: a student who
// has completed only electives reports zero progress. Percentage is the
// completed fraction in [0, 1] and is 0 when the catalog has no required
// courses.
func CalculateProgress(catalog []Course, records []CompletionRecord) (Progress, error) {
	if catalog == nil {
		return Progress{}, ErrNilCatalog
	}
	if records == nil {
		return Progress{}, ErrNilRecords
	}

	completedByCode := make(map[string]bool, len(records))
	for _, record := range records {
		if record.Completed {
			completedByCode[record.CourseCode] = true
		}
	}

	var progress Progress
	for _, course := range catalog {
		if !course.Required {
			continue
		}
		progress.Total++
		if completedByCode[course.Code] {
			progress.Completed++
		}
	}
	if progress.Total > 0 {
		progress.Percentage = float64(progress.Completed) / float64(progress.Total)
	}
	return progress, nil
}
