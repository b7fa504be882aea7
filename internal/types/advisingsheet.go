package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AdvisingSheet struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Filename     string         `gorm:"not null;column:filename" json:"filename"`
	StorageKey   string         `gorm:"not null;column:storage_key" json:"storage_key"`
	ParsedData   datatypes.JSON `gorm:"column:parsed_data" json:"parsed_data,omitempty"`
	CoursesFound int            `gorm:"not null;default:0;column:courses_found" json:"courses_found"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (AdvisingSheet) TableName() string { return "advising_sheet" }

func (s *AdvisingSheet) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
