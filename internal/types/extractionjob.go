package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ExtractionJobPending  = "pending"
	ExtractionJobRunning  = "running"
	ExtractionJobComplete = "complete"
	ExtractionJobFailed   = "failed"
)

type ExtractionJob struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SheetID    *uuid.UUID     `gorm:"type:uuid;index" json:"sheet_id,omitempty"`
	Sheet      *AdvisingSheet `gorm:"constraint:OnDelete:SET NULL;foreignKey:SheetID;references:ID" json:"sheet,omitempty"`
	Filename   string         `gorm:"not null;column:filename" json:"filename"`
	StorageKey string         `gorm:"not null;column:storage_key" json:"storage_key"`
	Status     string         `gorm:"not null;default:pending;index;column:status" json:"status"`
	Attempts   int            `gorm:"not null;default:0;column:attempts" json:"attempts"`
	LastError  string         `gorm:"column:last_error" json:"last_error,omitempty"`
	Result     datatypes.JSON `gorm:"column:result" json:"result,omitempty"`
	StartedAt  *time.Time     `gorm:"column:started_at" json:"started_at,omitempty"`
	FinishedAt *time.Time     `gorm:"column:finished_at" json:"finished_at,omitempty"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (ExtractionJob) TableName() string { return "extraction_job" }

func (j *ExtractionJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
