package models

import (
	"time"

	"github.com/google/uuid"
)

// CourseProgress is the per-user, per-course record created on enrollment.
type CourseProgress struct {
	Base
	UserID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_course" json:"user_id"`
	CourseID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_course" json:"course_id"`
	Course         *Course         `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty"`
	CompletedUnits []CompletedUnit `gorm:"foreignKey:ProgressID;constraint:OnDelete:CASCADE" json:"completed_units"`
}

// CompletedUnit is one member of a progress record's completed set.
// The composite primary key keeps the set free of duplicates.
type CompletedUnit struct {
	ProgressID uuid.UUID `gorm:"type:uuid;primaryKey" json:"progress_id"`
	UnitID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"unit_id"`
	CreatedAt  time.Time `json:"completed_at"`
}

func (p *CourseProgress) HasCompleted(unitID uuid.UUID) bool {
	for _, cu := range p.CompletedUnits {
		if cu.UnitID == unitID {
			return true
		}
	}
	return false
}
