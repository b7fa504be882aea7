package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Course struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Code          string         `gorm:"uniqueIndex;not null;column:code" json:"code"`
	Name          string         `gorm:"not null;column:name" json:"name"`
	Credits       int            `gorm:"not null;default:3;column:credits" json:"credits"`
	Required      bool           `gorm:"not null;default:true;column:required" json:"required"`
	Prerequisites datatypes.JSON `gorm:"column:prerequisites" json:"prerequisites"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
}

func (Course) TableName() string { return "course" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// PrerequisiteCodes decodes the stored JSON array of course codes. Malformed
// or empty payloads decode to nil rather than erroring; a bad prerequisite
// list is a data-quality problem, not a request failure.
func (c *Course) PrerequisiteCodes() []string {
	if len(c.Prerequisites) == 0 {
		return nil
	}
	var codes []string
	if err := json.Unmarshal(c.Prerequisites, &codes); err != nil {
		return nil
	}
	return codes
}

// SetPrerequisiteCodes encodes codes into the stored JSON column. A nil or
// empty slice stores an empty JSON array.
func (c *Course) SetPrerequisiteCodes(codes []string) error {
	if codes == nil {
		codes = []string{}
	}
	raw, err := json.Marshal(codes)
	if err != nil {
		return err
	}
	c.Prerequisites = datatypes.JSON(raw)
	return nil
}
