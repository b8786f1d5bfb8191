package models

import "time"

// Progress records completed lectures per (student, course) pair. At most one
// row exists per pair; the percentage is derived from the completed set and
// recomputed on every update, never edited directly.
type Progress struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	Percentage float64   `json:"percentage" db:"percentage"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	// IDs of completed lectures; relation, no db tag
	CompletedLectures []int64 `json:"completedLectures"`
}
