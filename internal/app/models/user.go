package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID               int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email            string     `json:"email" db:"email" example:"student@example.com"`           // User's email address (stored lower-case)
	Password         string     `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	Name             string     `json:"name" db:"name" example:"Asha Verma"`                      // User's display name
	RoleType         RoleType   `json:"role" db:"role_type" example:"student"`                    // User's role (student or teacher)
	IsEmailVerified  bool       `json:"isEmailVerified" db:"is_email_verified" example:"true"`    // Whether the email address is verified
	ProfileCompleted bool       `json:"profileCompleted" db:"profile_completed" example:"false"`  // Whether the user finished their profile
	Status           UserStatus `json:"status" db:"status" example:"active"`                      // Account status
	Bio              *string    `json:"bio,omitempty" db:"bio"`                                   // Profile bio (nullable)
	AvatarURL        *string    `json:"avatarUrl,omitempty" db:"avatar_url"`                      // Avatar URL (nullable)
	Phone            *string    `json:"phone,omitempty" db:"phone"`                               // Phone number (nullable)
	CreatedAt        time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated

	// Courses the user is enrolled in (students); relation, no db tag
	Courses []*Course `json:"courses,omitempty"`
}
