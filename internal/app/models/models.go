package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleTeacher RoleType = "teacher"
)

// UserStatus defines the account status
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusDisabled UserStatus = "disabled"
)

// ClassLevels lists the class levels a course may target
var ClassLevels = []int{8, 9, 10}

// Subjects is the fixed whitelist of course subjects
var Subjects = []string{"Mathematics", "Science", "English", "Social Studies", "Hindi"}

// ValidClassLevel reports whether level is an allowed class level
func ValidClassLevel(level int) bool {
	for _, l := range ClassLevels {
		if l == level {
			return true
		}
	}
	return false
}

// ValidSubject reports whether subject is in the whitelist
func ValidSubject(subject string) bool {
	for _, s := range Subjects {
		if s == subject {
			return true
		}
	}
	return false
}
