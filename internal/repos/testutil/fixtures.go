package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradpath/gradpath-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Username: username,
		Password: "pw",
		Role:     types.RoleUser,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, code string, required bool, prereqs []string) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:       uuid.New(),
		Code:     code,
		Name:     "Course " + code,
		Credits:  3,
		Required: required,
	}
	if err := c.SetPrerequisiteCodes(prereqs); err != nil {
		tb.Fatalf("seed course prerequisites: %v", err)
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedUserCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID, completed bool, semester string) *types.UserCourse {
	tb.Helper()
	uc := &types.UserCourse{
		ID:            uuid.New(),
		UserID:        userID,
		CourseID:      courseID,
		Completed:     completed,
		SemesterTaken: semester,
	}
	if err := tx.WithContext(ctx).Create(uc).Error; err != nil {
		tb.Fatalf("seed user course: %v", err)
	}
	return uc
}

func SeedAdvisingSheet(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.AdvisingSheet {
	tb.Helper()
	s := &types.AdvisingSheet{
		ID:         uuid.New(),
		UserID:     userID,
		Filename:   "sheet.pdf",
		StorageKey: uuid.NewString() + "-sheet.pdf",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed advising sheet: %v", err)
	}
	return s
}

func SeedExtractionJob(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) *types.ExtractionJob {
	tb.Helper()
	j := &types.ExtractionJob{
		ID:         uuid.New(),
		UserID:     userID,
		Filename:   "sheet.pdf",
		StorageKey: uuid.NewString() + "-sheet.pdf",
		Status:     status,
	}
	if err := tx.WithContext(ctx).Create(j).Error; err != nil {
		tb.Fatalf("seed extraction job: %v", err)
	}
	return j
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
