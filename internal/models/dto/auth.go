package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenRequest struct {
	Token string `json:"token"`
}

type SelectUnitRequest struct {
	UnitID int64 `json:"unitId" validate:"required,gt=0"`
}

// ValidateResponse carries the verified token payload, or a null payload when
// the token is invalid or expired.
type ValidateResponse struct {
	Valid   bool `json:"valid"`
	Payload any  `json:"payload"`
}
