package packets

// RegisterRequest creates an account. Names follow the original wire format.
type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	FirstName string  `json:"first_name" binding:"required,notblank,min=3"`
	LastName  string  `json:"last_name" binding:"required,notblank,min=3"`
	Nickname  *string `json:"nickname"`
	Password  string  `json:"password" binding:"required,min=3"`
}

type EmailTakenQuery struct {
	Email string `form:"email" binding:"required,email"`
}

type VerifyEmailQuery struct {
	Token string `form:"token" binding:"required,min=3"`
}

type ResendEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1"`
}

// UpdateUserRequest is the partial userinfo update; absent fields stay
// untouched.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,notblank,min=3"`
	LastName  *string `json:"last_name" binding:"omitempty,notblank,min=3"`
	Nickname  *string `json:"nickname"`
}

// ReplaceUserRequest is the full userinfo update; a nil nickname clears it.
type ReplaceUserRequest struct {
	FirstName string  `json:"first_name" binding:"required,notblank,min=3"`
	LastName  string  `json:"last_name" binding:"required,notblank,min=3"`
	Nickname  *string `json:"nickname"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=3"`
}
