package extraction

import (
  "regexp"
  "sort"
  "strconv"
  "strings"
)

// ExtractedCourse is one parsed advising-sheet row. Rows only match when a
// semester is present, so extracted courses are always completed.
type ExtractedCourse struct {
  Code          string `json:"code"`
  Name          string `json:"name"`
  Credits       int    `json:"credits"`
  Required      bool   `json:"required"`
  Completed     bool   `json:"completed"`
  SemesterTaken string `json:"semester_taken"`
  Section       string `json:"section,omitempty"`
}

var (
  // A row reads like "IST 302 Databases 4 Fall 2025".
  courseRowPattern = regexp.MustCompile(`(?i)\b([A-Z]{2,4})\s+(\d{3})\s+([A-Za-z][A-Za-z\s]*?)\s+(\d)\s+(Fall|Spring|Summer|Winter)\s+(\d{4})\b`)

  sectionKeywords = []string{"CORE", "CONCENTRATION", "ELECTIVE"}
)

type sectionMark struct {
  pos     int
  keyword string
}

// ParseCourses runs the row pattern over extracted sheet text. Section
// headings ahead of a row set its required flag: ELECTIVE rows are electives,
// everything else (including rows before any heading) is required. Duplicate
// codes keep their first occurrence.
func ParseCourses(text string) []ExtractedCourse {
  clean := collapseWhitespace(text)

  marks := findSectionMarks(clean)

  courses := []ExtractedCourse{}
  seen := map[string]bool{}

  for _, idx := range courseRowPattern.FindAllStringSubmatchIndex(clean, -1) {
    dept := strings.ToUpper(clean[idx[2]:idx[3]])
    number := clean[idx[4]:idx[5]]
    name := strings.TrimSpace(clean[idx[6]:idx[7]])
    credits, _ := strconv.Atoi(clean[idx[8]:idx[9]])
    season := canonicalSeason(clean[idx[10]:idx[11]])
    year := clean[idx[12]:idx[13]]

    code := dept + " " + number
    if seen[code] {
      continue
    }
    seen[code] = true

    section := sectionAt(marks, idx[0])

    courses = append(courses, ExtractedCourse{
      Code:          code,
      Name:          name,
      Credits:       credits,
      Required:      section != "ELECTIVE",
      Completed:     true,
      SemesterTaken: season + " " + year,
      Section:       section,
    })
  }

  return courses
}

// findSectionMarks records where each section keyword first appears.
func findSectionMarks(text string) []sectionMark {
  upper := strings.ToUpper(text)
  marks := []sectionMark{}
  for _, keyword := range sectionKeywords {
    pos := indexWord(upper, keyword)
    if pos < 0 {
      continue
    }
    marks = append(marks, sectionMark{pos: pos, keyword: keyword})
  }
  sort.Slice(marks, func(i, j int) bool { return marks[i].pos < marks[j].pos })
  return marks
}

// indexWord finds keyword at a word boundary.
func indexWord(text, keyword string) int {
  offset := 0
  for {
    i := strings.Index(text[offset:], keyword)
    if i < 0 {
      return -1
    }
    pos := offset + i
    end := pos + len(keyword)
    beforeOK := pos == 0 || !isWordByte(text[pos-1])
    afterOK := end == len(text) || !isWordByte(text[end])
    if beforeOK && afterOK {
      return pos
    }
    offset = pos + 1
  }
}

func isWordByte(c byte) bool {
  return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}

// sectionAt returns the closest section heading before offset, or "" when the
// row precedes every heading.
func sectionAt(marks []sectionMark, offset int) string {
  section := ""
  for _, mark := range marks {
    if mark.pos < offset {
      section = mark.keyword
    }
  }
  return section
}

func canonicalSeason(s string) string {
  if s == "" {
    return s
  }
  return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
