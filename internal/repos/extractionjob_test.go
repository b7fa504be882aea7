package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/gradpath/gradpath-backend/internal/repos/testutil"
	"github.com/gradpath/gradpath-backend/internal/types"
)

func TestExtractionJobRepoClaimNextPending(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewExtractionJobRepo(db, "postgres", testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "jobrepo")

	older := &types.ExtractionJob{
		ID:         uuid.New(),
		UserID:     user.ID,
		Filename:   "first.pdf",
		StorageKey: "key-first",
		Status:     types.ExtractionJobPending,
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	newer := &types.ExtractionJob{
		ID:         uuid.New(),
		UserID:     user.ID,
		Filename:   "second.pdf",
		StorageKey: "key-second",
		Status:     types.ExtractionJobPending,
		CreatedAt:  time.Now(),
	}
	if _, err := repo.Create(ctx, tx, []*types.ExtractionJob{older, newer}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	claimed, err := repo.ClaimNextPending(ctx, tx)
	if err != nil {
		t.Fatalf("ClaimNextPending: %v", err)
	}
	if claimed == nil || claimed.ID != older.ID {
		t.Fatalf("ClaimNextPending: expected oldest pending job, got %+v", claimed)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{older.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("GetByIDs: expected 1 job, got %d", len(got))
	}
	if got[0].Status != types.ExtractionJobRunning {
		t.Fatalf("ClaimNextPending: expected running status, got %s", got[0].Status)
	}
	if got[0].Attempts != 1 {
		t.Fatalf("ClaimNextPending: expected 1 attempt, got %d", got[0].Attempts)
	}
	if got[0].StartedAt == nil {
		t.Fatalf("ClaimNextPending: started_at not set")
	}

	second, err := repo.ClaimNextPending(ctx, tx)
	if err != nil {
		t.Fatalf("ClaimNextPending (second): %v", err)
	}
	if second == nil || second.ID != newer.ID {
		t.Fatalf("ClaimNextPending (second): expected remaining pending job, got %+v", second)
	}

	third, err := repo.ClaimNextPending(ctx, tx)
	if err != nil {
		t.Fatalf("ClaimNextPending (drained): %v", err)
	}
	if third != nil {
		t.Fatalf("ClaimNextPending (drained): expected nil, got %+v", third)
	}
}

func TestExtractionJobRepoUpdateFields(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewExtractionJobRepo(db, "postgres", testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "jobupdate")
	job := testutil.SeedExtractionJob(t, ctx, tx, user.ID, types.ExtractionJobRunning)

	finished := time.Now()
	err := repo.UpdateFields(ctx, tx, job.ID, map[string]interface{}{
		"status":      types.ExtractionJobComplete,
		"result":      datatypes.JSON([]byte(`{"courses_found":3}`)),
		"finished_at": finished,
	})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{job.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("GetByIDs: expected 1 job, got %d", len(got))
	}
	if got[0].Status != types.ExtractionJobComplete {
		t.Fatalf("UpdateFields: expected complete status, got %s", got[0].Status)
	}
	if got[0].FinishedAt == nil {
		t.Fatalf("UpdateFields: finished_at not set")
	}
	if len(got[0].Result) == 0 {
		t.Fatalf("UpdateFields: result not persisted")
	}

	if err := repo.UpdateFields(ctx, tx, uuid.Nil, map[string]interface{}{"status": "x"}); err != nil {
		t.Fatalf("UpdateFields (nil id): expected no-op, got %v", err)
	}
}
