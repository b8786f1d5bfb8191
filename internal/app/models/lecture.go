package models

import "time"

// Lecture defines the lecture model based on the 'lectures' table
type Lecture struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	VideoURL  *string   `json:"videoUrl,omitempty" db:"video_url"` // Durable media URL (nullable)
	PdfURL    *string   `json:"pdfUrl,omitempty" db:"pdf_url"`     // Durable media URL (nullable)
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
