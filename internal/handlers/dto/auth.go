package dto

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Hometown  string `json:"hometown,omitempty"`
	Education string `json:"education,omitempty"`
	Job       string `json:"job,omitempty"`
	Company   string `json:"company,omitempty"`
	Status    string `json:"status,omitempty"`
	Interests string `json:"interests,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
