package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserCourse struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_course" json:"user_id"`
	User          *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CourseID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_course" json:"course_id"`
	Course        *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Completed     bool      `gorm:"not null;default:false;column:completed" json:"completed"`
	Grade         string    `gorm:"column:grade" json:"grade"`
	SemesterTaken string    `gorm:"column:semester_taken" json:"semester_taken"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (UserCourse) TableName() string { return "user_course" }

func (uc *UserCourse) BeforeCreate(tx *gorm.DB) error {
	if uc.ID == uuid.Nil {
		uc.ID = uuid.New()
	}
	return nil
}
