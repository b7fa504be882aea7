package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gradpath/gradpath-backend/internal/repos/testutil"
	"github.com/gradpath/gradpath-backend/internal/types"
)

func TestAdvisingSheetRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAdvisingSheetRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "sheetrepo")

	older := &types.AdvisingSheet{
		ID:         uuid.New(),
		UserID:     user.ID,
		Filename:   "spring.pdf",
		StorageKey: "key-spring",
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	newer := &types.AdvisingSheet{
		ID:         uuid.New(),
		UserID:     user.ID,
		Filename:   "fall.pdf",
		StorageKey: "key-fall",
		CreatedAt:  time.Now(),
	}
	if _, err := repo.Create(ctx, tx, []*types.AdvisingSheet{older, newer}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byUser, err := repo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
	if err != nil {
		t.Fatalf("GetByUserIDs: %v", err)
	}
	if len(byUser) != 2 {
		t.Fatalf("GetByUserIDs: expected 2 sheets, got %d", len(byUser))
	}
	if byUser[0].ID != newer.ID || byUser[1].ID != older.ID {
		t.Fatalf("GetByUserIDs: expected newest first, got %s then %s", byUser[0].Filename, byUser[1].Filename)
	}

	older.CoursesFound = 7
	if _, err := repo.Update(ctx, tx, []*types.AdvisingSheet{older}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{older.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].CoursesFound != 7 {
		t.Fatalf("Update: courses_found not persisted: %+v", got)
	}
}
