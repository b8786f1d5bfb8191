package dto

// SyllabusItemInput is one ordered syllabus entry of a course
type SyllabusItemInput struct {
	Topic       string `json:"topic" binding:"required"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

// CreateCourseRequest represents course creation input
type CreateCourseRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Class       int                 `json:"class" binding:"required"`
	Subject     string              `json:"subject" binding:"required"`
	IsPremium   bool                `json:"isPremium"`
	Price       int64               `json:"price" binding:"min=0"`
	Syllabus    []SyllabusItemInput `json:"syllabus"`
}

// AddLectureRequest represents lecture creation input. Video and PDF
// references may be plain URLs or inline "data:" payloads; inline payloads
// are uploaded to the media store and replaced with durable URLs.
type AddLectureRequest struct {
	Title    string `json:"title" binding:"required"`
	VideoURL string `json:"videoUrl"`
	PdfURL   string `json:"pdfUrl"`
}
