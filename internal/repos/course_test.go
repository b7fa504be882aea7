package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/gradpath/gradpath-backend/internal/repos/testutil"
	"github.com/gradpath/gradpath-backend/internal/types"
)

func TestCourseRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewCourseRepo(db, testutil.Logger(t))
	ctx := context.Background()

	second := &types.Course{ID: uuid.New(), Code: "CS201", Name: "Data Structures", Credits: 4, Required: true}
	if err := second.SetPrerequisiteCodes([]string{"CS101"}); err != nil {
		t.Fatalf("SetPrerequisiteCodes: %v", err)
	}
	first := &types.Course{ID: uuid.New(), Code: "CS101", Name: "Intro", Credits: 3, Required: true}
	if err := first.SetPrerequisiteCodes(nil); err != nil {
		t.Fatalf("SetPrerequisiteCodes: %v", err)
	}

	if _, err := repo.Create(ctx, tx, []*types.Course{second, first}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := repo.GetAll(ctx, tx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	idx101, idx201 := -1, -1
	for i, c := range all {
		switch c.Code {
		case "CS101":
			idx101 = i
		case "CS201":
			idx201 = i
		}
	}
	if idx101 == -1 || idx201 == -1 {
		t.Fatalf("GetAll: missing seeded courses: %+v", all)
	}
	if idx101 > idx201 {
		t.Fatalf("GetAll: expected code ASC order, got CS101 at %d and CS201 at %d", idx101, idx201)
	}

	byCodes, err := repo.GetByCodes(ctx, tx, []string{"CS201"})
	if err != nil {
		t.Fatalf("GetByCodes: %v", err)
	}
	if len(byCodes) != 1 || byCodes[0].ID != second.ID {
		t.Fatalf("GetByCodes: unexpected result: %+v", byCodes)
	}
	prereqs := byCodes[0].PrerequisiteCodes()
	if len(prereqs) != 1 || prereqs[0] != "CS101" {
		t.Fatalf("PrerequisiteCodes: expected [CS101], got %v", prereqs)
	}

	byIDs, err := repo.GetByIDs(ctx, tx, []uuid.UUID{first.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(byIDs) != 1 || byIDs[0].Code != "CS101" {
		t.Fatalf("GetByIDs: unexpected result: %+v", byIDs)
	}

	exists, err := repo.CodeExists(ctx, tx, "CS101")
	if err != nil {
		t.Fatalf("CodeExists: %v", err)
	}
	if !exists {
		t.Fatalf("CodeExists: expected true")
	}
	exists, err = repo.CodeExists(ctx, tx, "CS999")
	if err != nil {
		t.Fatalf("CodeExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("CodeExists (missing): expected false")
	}

	first.Name = "Intro to Computer Science"
	if _, err := repo.Update(ctx, tx, []*types.Course{first}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, err := repo.GetByIDs(ctx, tx, []uuid.UUID{first.ID})
	if err != nil {
		t.Fatalf("GetByIDs after update: %v", err)
	}
	if len(updated) != 1 || updated[0].Name != "Intro to Computer Science" {
		t.Fatalf("Update: change not persisted: %+v", updated)
	}
}
