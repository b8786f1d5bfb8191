package models

import "time"

// Course defines the course model based on the 'courses' table
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ClassLevel  int       `json:"class" db:"class_level" example:"9"`          // Class level the course targets (8, 9 or 10)
	Subject     string    `json:"subject" db:"subject" example:"Science"`      // Subject from the fixed whitelist
	IsPremium   bool      `json:"isPremium" db:"is_premium"`                   // Premium courses require payment before enrollment
	Price       int64     `json:"price" db:"price"`                            // Price in the smallest currency unit, 0 for free courses
	TeacherID   int64     `json:"teacherId" db:"teacher_id"`                   // Owning teacher, immutable after creation
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Teacher  *User           `json:"teacher,omitempty"`
	Students []*User         `json:"students,omitempty"`
	Lectures []*Lecture      `json:"lectures,omitempty"`
	Syllabus []*SyllabusItem `json:"syllabus,omitempty"`
}

// SyllabusItem is an ordered descriptive sub-record of a course. It is not
// independently addressable and carries no uniqueness constraint.
type SyllabusItem struct {
	ID          int64  `json:"-" db:"id"`
	CourseID    int64  `json:"-" db:"course_id"`
	Position    int    `json:"-" db:"position"`
	Topic       string `json:"topic" db:"topic"`
	Description string `json:"description" db:"description"`
	Duration    string `json:"duration" db:"duration"`
}

// Enrollment links a student to a course they may access. The unique
// (course_id, student_id) pair keeps the course's student set and the
// student's course list consistent with a single row.
type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`
}
