package models

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

type User struct {
	Base
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:student" json:"role"`
}

// All returns every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Course{},
		&Section{},
		&Unit{},
		&CourseProgress{},
		&CompletedUnit{},
	}
}
