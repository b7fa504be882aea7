package journey

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func scenarioCatalog() []Course {
	return []Course{
		{Code: "CS101", Name: "Intro to Computer Science", Credits: 3, Required: true},
		{Code: "CS201", Name: "Data Structures", Credits: 3, Required: true, Prerequisites: []string{"CS101"}},
		{Code: "ART100", Name: "Art Appreciation", Credits: 3, Required: false},
	}
}

func scenarioRecords() []CompletionRecord {
	return []CompletionRecord{
		{CourseCode: "CS101", Completed: true, Grade: "A", SemesterTaken: "Fall 2025"},
		{CourseCode: "CS201", Completed: false},
		{CourseCode: "ART100", Completed: true},
	}
}

func findNode(t *testing.T, graph *Graph, id string) Node {
	t.Helper()
	for _, node := range graph.Nodes {
		if node.ID == id {
			return node
		}
	}
	t.Fatalf("node %q not found", id)
	return Node{}
}

func TestBuildGraph_ScenarioEndToEnd(t *testing.T) {
	graph, err := BuildGraph(scenarioCatalog(), scenarioRecords())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var courseNodes, headerNodes int
	for _, node := range graph.Nodes {
		switch node.Kind {
		case NodeKindCourse:
			courseNodes++
		case NodeKindHeader:
			headerNodes++
		default:
			t.Fatalf("unexpected node kind %q", node.Kind)
		}
	}
	if courseNodes != 3 {
		t.Fatalf("expected 3 course nodes, got %d", courseNodes)
	}
	if headerNodes != 2 {
		t.Fatalf("expected 2 header nodes, got %d", headerNodes)
	}

	if len(graph.Edges) != 1 {
		t.Fatalf("expected exactly one edge, got %d", len(graph.Edges))
	}
	edge := graph.Edges[0]
	if edge.From != "CS101" || edge.To != "CS201" || edge.ID != "CS101-CS201" {
		t.Fatalf("unexpected edge: %#v", edge)
	}

	cs101 := findNode(t, graph, "CS101")
	if !cs101.Completed || cs101.Semester == nil || *cs101.Semester != "Fall 2025" {
		t.Fatalf("unexpected CS101 node: %#v", cs101)
	}
	cs201 := findNode(t, graph, "CS201")
	if cs201.Completed || cs201.Semester != nil {
		t.Fatalf("unexpected CS201 node: %#v", cs201)
	}
	art100 := findNode(t, graph, "ART100")
	if !art100.Completed || art100.Required || art100.Semester != nil {
		t.Fatalf("unexpected ART100 node: %#v", art100)
	}

	if len(graph.Legend) != 2 {
		t.Fatalf("expected 2 legend entries, got %d", len(graph.Legend))
	}
	if graph.Legend[0].Label != "Fall 2025" || graph.Legend[1].Label != NotScheduled {
		t.Fatalf("unexpected legend order: %#v", graph.Legend)
	}
}

func TestBuildGraph_NilInputsAreConstructionErrors(t *testing.T) {
	if _, err := BuildGraph(nil, scenarioRecords()); !errors.Is(err, ErrNilCatalog) {
		t.Fatalf("expected ErrNilCatalog, got %v", err)
	}
	if _, err := BuildGraph(scenarioCatalog(), nil); !errors.Is(err, ErrNilRecords) {
		t.Fatalf("expected ErrNilRecords, got %v", err)
	}
	if _, err := BuildGraph([]Course{}, []CompletionRecord{}); err != nil {
		t.Fatalf("expected empty non-nil inputs to build, got %v", err)
	}
}

func TestBuildGraph_DropsDanglingPrerequisiteEdges(t *testing.T) {
	catalog := []Course{
		{Code: "CS101", Name: "Intro", Credits: 3, Required: true, Prerequisites: []string{"PHANTOM101"}},
	}
	records := []CompletionRecord{{CourseCode: "CS101", Completed: true, SemesterTaken: "Fall 2025"}}

	graph, err := BuildGraph(catalog, records)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(graph.Edges) != 0 {
		t.Fatalf("expected no edges, got %#v", graph.Edges)
	}
	if len(graph.Nodes) != 2 {
		t.Fatalf("expected the course node and one header, got %d nodes", len(graph.Nodes))
	}
}

func TestBuildGraph_SkipsRecordsForUnknownCourses(t *testing.T) {
	records := append(scenarioRecords(), CompletionRecord{CourseCode: "GHOST999", Completed: true})

	graph, err := BuildGraph(scenarioCatalog(), records)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, node := range graph.Nodes {
		if node.ID == "GHOST999" {
			t.Fatalf("expected no node for a record without a catalog course")
		}
	}
}

func TestBuildGraph_IncludesPrerequisiteClosure(t *testing.T) {
	catalog := []Course{
		{Code: "CS101", Name: "Intro", Credits: 3, Required: true},
		{Code: "CS201", Name: "Data Structures", Credits: 3, Required: true, Prerequisites: []string{"CS101"}},
		{Code: "CS301", Name: "Algorithms", Credits: 3, Required: true, Prerequisites: []string{"CS201"}},
	}
	records := []CompletionRecord{{CourseCode: "CS301", Completed: false, SemesterTaken: "Spring 2026"}}

	graph, err := BuildGraph(catalog, records)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	cs101 := findNode(t, graph, "CS101")
	cs201 := findNode(t, graph, "CS201")
	if cs101.Completed || cs201.Completed {
		t.Fatalf("expected closure-only courses to be not completed")
	}
	if cs101.Semester != nil || cs201.Semester != nil {
		t.Fatalf("expected closure-only courses to be unscheduled")
	}

	if len(graph.Edges) != 2 {
		t.Fatalf("expected both prerequisite edges, got %#v", graph.Edges)
	}
}

func TestBuildGraph_DeduplicatesRepeatedPrerequisites(t *testing.T) {
	catalog := []Course{
		{Code: "CS101", Name: "Intro", Credits: 3, Required: true},
		{Code: "CS201", Name: "Data Structures", Credits: 3, Required: true, Prerequisites: []string{"CS101", "CS101"}},
	}
	records := []CompletionRecord{
		{CourseCode: "CS101", Completed: true},
		{CourseCode: "CS201", Completed: false},
	}

	graph, err := BuildGraph(catalog, records)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(graph.Edges) != 1 {
		t.Fatalf("expected the duplicate edge collapsed, got %#v", graph.Edges)
	}
}

func TestBuildGraph_SurvivesPrerequisiteCycles(t *testing.T) {
	catalog := []Course{
		{Code: "A100", Name: "A", Credits: 3, Required: true, Prerequisites: []string{"B100"}},
		{Code: "B100", Name: "B", Credits: 3, Required: true, Prerequisites: []string{"A100"}},
	}
	records := []CompletionRecord{{CourseCode: "A100", Completed: false}}

	graph, err := BuildGraph(catalog, records)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(graph.Edges) != 2 {
		t.Fatalf("expected both cycle edges, got %#v", graph.Edges)
	}
}

func TestBuildGraph_IsIdempotent(t *testing.T) {
	first, err := BuildGraph(scenarioCatalog(), scenarioRecords())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := BuildGraph(scenarioCatalog(), scenarioRecords())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical graphs for identical input")
	}
}

func TestBuildGraph_LayoutColumnsAndRows(t *testing.T) {
	catalog := []Course{
		{Code: "CS101", Name: "Intro", Credits: 3, Required: true},
		{Code: "CS102", Name: "Intro II", Credits: 3, Required: true},
		{Code: "MATH200", Name: "Calculus", Credits: 4, Required: true},
	}
	records := []CompletionRecord{
		{CourseCode: "CS101", Completed: true, SemesterTaken: "Fall 2025"},
		{CourseCode: "CS102", Completed: true, SemesterTaken: "Fall 2025"},
		{CourseCode: "MATH200", Completed: false, SemesterTaken: "Spring 2026"},
	}

	graph, err := BuildGraph(catalog, records)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	fallHeader := findNode(t, graph, "header-Fall 2025")
	springHeader := findNode(t, graph, "header-Spring 2026")
	if fallHeader.Position.Y != 40 || springHeader.Position.Y != 40 {
		t.Fatalf("expected headers on the header row, got %v and %v", fallHeader.Position, springHeader.Position)
	}
	if fallHeader.Position.X != 80 || springHeader.Position.X != 340 {
		t.Fatalf("unexpected column positions: %v and %v", fallHeader.Position, springHeader.Position)
	}

	cs101 := findNode(t, graph, "CS101")
	cs102 := findNode(t, graph, "CS102")
	if cs101.Position.X != 80 || cs102.Position.X != 80 {
		t.Fatalf("expected Fall 2025 courses in the first column")
	}
	if cs101.Position.Y != 140 || cs102.Position.Y != 250 {
		t.Fatalf("expected stacked rows at 140 and 250, got %v and %v", cs101.Position, cs102.Position)
	}
}

func TestBuildGraph_VisualStateReflectsCompletion(t *testing.T) {
	graph, err := BuildGraph(scenarioCatalog(), scenarioRecords())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	completed := findNode(t, graph, "CS101")
	if completed.VisualState.Opacity != 1 {
		t.Fatalf("expected full opacity for a completed course, got %v", completed.VisualState.Opacity)
	}
	if !strings.HasSuffix(completed.VisualState.Fill, ", 1)") {
		t.Fatalf("expected fully opaque fill, got %q", completed.VisualState.Fill)
	}

	incomplete := findNode(t, graph, "CS201")
	if incomplete.VisualState.Opacity != IncompleteOpacity {
		t.Fatalf("expected reduced opacity, got %v", incomplete.VisualState.Opacity)
	}
	if !strings.HasSuffix(incomplete.VisualState.Fill, ", 0.6)") {
		t.Fatalf("expected dimmed fill, got %q", incomplete.VisualState.Fill)
	}
}

func TestBuildGraph_HeadersUseColumnColors(t *testing.T) {
	graph, err := BuildGraph(scenarioCatalog(), scenarioRecords())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	fallHeader := findNode(t, graph, "header-Fall 2025")
	if fallHeader.Kind != NodeKindHeader {
		t.Fatalf("expected header kind, got %q", fallHeader.Kind)
	}
	if fallHeader.VisualState.Opacity != 1 {
		t.Fatalf("expected headers at full opacity")
	}

	sentinelHeader := findNode(t, graph, "header-"+NotScheduled)
	if !strings.Contains(sentinelHeader.VisualState.Fill, "hsla(0, 0%, 62%") {
		t.Fatalf("expected the gray sentinel header, got %q", sentinelHeader.VisualState.Fill)
	}
}
