package auth

import (
	errors "github.com/Skenwise/Loan-Management-System/internal"
	"github.com/Skenwise/Loan-Management-System/internal/core/common/validation"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate rejects empty fields before any store access. Length and format
// policy deliberately stay out of the login path: anything non-empty is
// answered by the credential check and its one generic failure.
func (d LoginDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("username", d.Username).Required()
	validator.Field("password", d.Password).Required()
	return validator.Validate()
}
