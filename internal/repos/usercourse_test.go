package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/gradpath/gradpath-backend/internal/repos/testutil"
	"github.com/gradpath/gradpath-backend/internal/types"
)

func TestUserCourseRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserCourseRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "usercourserepo")
	intro := testutil.SeedCourse(t, ctx, tx, "UC101", true, nil)
	algo := testutil.SeedCourse(t, ctx, tx, "UC201", true, []string{"UC101"})

	created, err := repo.Create(ctx, tx, []*types.UserCourse{
		{
			ID:            uuid.New(),
			UserID:        user.ID,
			CourseID:      intro.ID,
			Completed:     true,
			SemesterTaken: "Fall 2025",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 record, got %d", len(created))
	}

	byUser, err := repo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
	if err != nil {
		t.Fatalf("GetByUserIDs: %v", err)
	}
	if len(byUser) != 1 || byUser[0].CourseID != intro.ID {
		t.Fatalf("GetByUserIDs: unexpected result: %+v", byUser)
	}

	both, err := repo.GetByUserAndCourseIDs(ctx, tx, user.ID, []uuid.UUID{intro.ID, algo.ID})
	if err != nil {
		t.Fatalf("GetByUserAndCourseIDs: %v", err)
	}
	if len(both) != 1 || both[0].ID != created[0].ID {
		t.Fatalf("GetByUserAndCourseIDs: unexpected result: %+v", both)
	}

	none, err := repo.GetByUserAndCourseIDs(ctx, tx, uuid.Nil, []uuid.UUID{intro.ID})
	if err != nil {
		t.Fatalf("GetByUserAndCourseIDs (nil user): %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("GetByUserAndCourseIDs (nil user): expected 0, got %d", len(none))
	}

	created[0].Grade = "A"
	created[0].Completed = true
	if _, err := repo.Update(ctx, tx, []*types.UserCourse{created[0]}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, err := repo.GetByUserAndCourseIDs(ctx, tx, user.ID, []uuid.UUID{intro.ID})
	if err != nil {
		t.Fatalf("GetByUserAndCourseIDs after update: %v", err)
	}
	if len(updated) != 1 || updated[0].Grade != "A" {
		t.Fatalf("Update: grade not persisted: %+v", updated)
	}
}
