package journey

import (
	"sort"
	"strings"
)

const (
	NodeKindCourse = "course"
	NodeKindHeader = "header"
)

// Layout pitches in abstract pixels. Columns run left to right in semester
// order; within a column the header row sits above the course stack.
const (
	columnOriginX = 80
	columnPitch   = 260
	headerRowY    = 40
	firstRowY     = 140
	rowPitch      = 110
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type VisualState struct {
	Fill    string  `json:"fill"`
	Border  string  `json:"border"`
	Text    string  `json:"text"`
	Opacity float64 `json:"opacity"`
}

// Node is one element of the rendered journey map. Course nodes carry the
// course code as ID; header nodes label a semester column and use a
// synthetic "header-<label>" ID.
type Node struct {
	ID          string      `json:"id"`
	Kind        string      `json:"kind"`
	Label       string      `json:"label"`
	Completed   bool        `json:"completed"`
	Required    bool        `json:"required"`
	Credits     int         `json:"credits"`
	Semester    *string     `json:"semester"`
	Position    Position    `json:"position"`
	VisualState VisualState `json:"visualState"`
}

// Edge points from a prerequisite course to its dependent. The ID doubles as
// the deduplication key for logical duplicates.
type Edge struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

type LegendColors struct {
	Background string `json:"background"`
	Border     string `json:"border"`
	Text       string `json:"text"`
}

type LegendEntry struct {
	Label  string       `json:"label"`
	Colors LegendColors `json:"colors"`
}

type Graph struct {
	Nodes  []Node        `json:"nodes"`
	Edges  []Edge        `json:"edges"`
	Legend []LegendEntry `json:"legend"`
}

// BuildGraph joins the catalog, its prerequisite declarations, and the
// student's completion records into a positioned, colored graph.
//
// The node set is every course the student has a record for plus the
// transitive prerequisite closure of those courses; closure-only courses
// bucket under the unscheduled sentinel as not completed. Records referencing
// codes absent from the catalog are dropped, as are prerequisite references
// to absent codes. Malformed individual inputs never fail the build; only a
// structurally absent catalog or record list does.
func BuildGraph(catalog []Course, records []CompletionRecord) (*Graph, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	if records == nil {
		return nil, ErrNilRecords
	}

	coursesByCode := make(map[string]Course, len(catalog))
	for _, course := range catalog {
		coursesByCode[course.Code] = course
	}

	recordsByCode := make(map[string]CompletionRecord, len(records))
	for _, record := range records {
		if _, ok := coursesByCode[record.CourseCode]; !ok {
			continue
		}
		recordsByCode[record.CourseCode] = record
	}

	included := includedCourses(coursesByCode, recordsByCode)

	buckets := make(map[string][]string)
	for code := range included {
		label := NotScheduled
		if record, ok := recordsByCode[code]; ok {
			if trimmed := strings.TrimSpace(record.SemesterTaken); trimmed != "" {
				label = trimmed
			}
		}
		buckets[label] = append(buckets[label], code)
	}

	labels := sortedBucketLabels(buckets)

	nonSentinel := make([]string, 0, len(labels))
	for _, label := range labels {
		if label != NotScheduled {
			nonSentinel = append(nonSentinel, label)
		}
	}
	palette := AssignPalette(nonSentinel)

	graph := &Graph{
		Nodes:  []Node{},
		Edges:  []Edge{},
		Legend: []LegendEntry{},
	}

	for i, label := range labels {
		x := columnOriginX + i*columnPitch
		scheme := palette.Scheme(label)
		headerLabel := label

		graph.Nodes = append(graph.Nodes, Node{
			ID:          "header-" + label,
			Kind:        NodeKindHeader,
			Label:       label,
			Semester:    &headerLabel,
			Position:    Position{X: x, Y: headerRowY},
			VisualState: renderVisualState(scheme, true),
		})

		codes := buckets[label]
		sort.Strings(codes)
		for j, code := range codes {
			course := coursesByCode[code]
			record, hasRecord := recordsByCode[code]
			completed := hasRecord && record.Completed

			var semester *string
			if label != NotScheduled {
				nodeLabel := label
				semester = &nodeLabel
			}

			graph.Nodes = append(graph.Nodes, Node{
				ID:          course.Code,
				Kind:        NodeKindCourse,
				Label:       course.Name,
				Completed:   completed,
				Required:    course.Required,
				Credits:     course.Credits,
				Semester:    semester,
				Position:    Position{X: x, Y: firstRowY + j*rowPitch},
				VisualState: renderVisualState(scheme, completed),
			})
		}

		graph.Legend = append(graph.Legend, LegendEntry{
			Label: label,
			Colors: LegendColors{
				Background: scheme.Background.String(),
				Border:     scheme.Border.String(),
				Text:       scheme.Text.String(),
			},
		})
	}

	graph.Edges = buildEdges(coursesByCode, included)

	return graph, nil
}

// includedCourses walks from the recorded courses through their prerequisite
// chains. The visited set bounds the walk, so prerequisite cycles terminate.
func includedCourses(coursesByCode map[string]Course, recordsByCode map[string]CompletionRecord) map[string]bool {
	included := make(map[string]bool, len(recordsByCode))
	queue := make([]string, 0, len(recordsByCode))
	for code := range recordsByCode {
		included[code] = true
		queue = append(queue, code)
	}
	for len(queue) > 0 {
		code := queue[0]
		queue = queue[1:]
		for _, prereq := range coursesByCode[code].Prerequisites {
			if included[prereq] {
				continue
			}
			if _, ok := coursesByCode[prereq]; !ok {
				continue
			}
			included[prereq] = true
			queue = append(queue, prereq)
		}
	}
	return included
}

func sortedBucketLabels(buckets map[string][]string) []string {
	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		oi, oj := Resolve(labels[i]), Resolve(labels[j])
		if oi != oj {
			return oi.Less(oj)
		}
		return labels[i] < labels[j]
	})
	return labels
}

// buildEdges emits one edge per (prerequisite, course) pair where both codes
// made it into the node set. The "<from>-<to>" ID deduplicates repeats of the
// same logical edge.
func buildEdges(coursesByCode map[string]Course, included map[string]bool) []Edge {
	codes := make([]string, 0, len(included))
	for code := range included {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	edges := []Edge{}
	seen := make(map[string]bool)
	for _, code := range codes {
		for _, prereq := range coursesByCode[code].Prerequisites {
			if !included[prereq] {
				continue
			}
			id := prereq + "-" + code
			if seen[id] {
				continue
			}
			seen[id] = true
			edges = append(edges, Edge{ID: id, From: prereq, To: code})
		}
	}
	return edges
}

func renderVisualState(scheme ColorScheme, completed bool) VisualState {
	opacity := 1.0
	if !completed {
		opacity = IncompleteOpacity
	}
	return VisualState{
		Fill:    scheme.Background.WithAlpha(opacity).String(),
		Border:  scheme.Border.WithAlpha(opacity).String(),
		Text:    scheme.Text.WithAlpha(opacity).String(),
		Opacity: opacity,
	}
}
