package models

// Response is the envelope every portfolio-service endpoint answers with.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// AdminAuthRequest is the body of POST /auth/admin.
type AdminAuthRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// AdminAuthData is the payload of a credential exchange. Token is nil when
// access is refused.
type AdminAuthData struct {
	EditAccess bool    `json:"edit_access"`
	Token      *string `json:"token"`
}
