package models

import "github.com/google/uuid"

type Course struct {
	Base
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    uuid.UUID `gorm:"type:uuid;index" json:"author_id"`
	Sections    []Section `gorm:"constraint:OnDelete:CASCADE" json:"sections"`
}

// Section groups units inside a course. Units are the addressable lessons.
type Section struct {
	Base
	CourseID      uuid.UUID `gorm:"type:uuid;index;not null" json:"course_id"`
	Title         string    `json:"title"`
	SequenceOrder int       `json:"sequence_order"`
	Units         []Unit    `gorm:"constraint:OnDelete:CASCADE" json:"units"`
}

type Unit struct {
	Base
	SectionID     uuid.UUID `gorm:"type:uuid;index;not null" json:"section_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	VideoURL      string    `json:"video_url"`
	SequenceOrder int       `json:"sequence_order"`
}

// UnitCount is the number of addressable units across all sections.
func (c *Course) UnitCount() int {
	total := 0
	for _, section := range c.Sections {
		total += len(section.Units)
	}
	return total
}
