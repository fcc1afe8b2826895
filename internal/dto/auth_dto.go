package dto

import "github.com/MateusVidalm/ECOTANQUE/internal/model"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UserResponse is a user without the password field.
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CompanyID *string    `json:"companyId,omitempty"`
	PhotoURL  *string    `json:"photoUrl,omitempty"`
	Synced    bool       `json:"synced"`
}

func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CompanyID: u.CompanyID,
		PhotoURL:  u.PhotoURL,
		Synced:    u.Synced,
	}
}
