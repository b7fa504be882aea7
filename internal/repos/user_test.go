package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/gradpath/gradpath-backend/internal/repos/testutil"
	"github.com/gradpath/gradpath-backend/internal/types"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.User{
		{
			ID:       uuid.New(),
			Username: "userrepo",
			Password: "pw",
			Role:     types.RoleUser,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 user, got %d", len(created))
	}

	gotByIDs, err := repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	gotByUsernames, err := repo.GetByUsernames(ctx, tx, []string{"userrepo"})
	if err != nil {
		t.Fatalf("GetByUsernames: %v", err)
	}
	if len(gotByUsernames) != 1 || gotByUsernames[0].Username != "userrepo" {
		t.Fatalf("GetByUsernames: unexpected result: %+v", gotByUsernames)
	}

	exists, err := repo.UsernameExists(ctx, tx, "userrepo")
	if err != nil {
		t.Fatalf("UsernameExists: %v", err)
	}
	if !exists {
		t.Fatalf("UsernameExists: expected true")
	}

	exists, err = repo.UsernameExists(ctx, tx, "does-not-exist")
	if err != nil {
		t.Fatalf("UsernameExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("UsernameExists (missing): expected false")
	}
}
