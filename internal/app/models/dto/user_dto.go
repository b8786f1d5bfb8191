package dto

// UpdateProfileRequest represents profile update data. All fields are
// optional; only provided fields are applied.
type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty"`
	Bio    *string `json:"bio,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
	Phone  *string `json:"phone,omitempty"`
}
