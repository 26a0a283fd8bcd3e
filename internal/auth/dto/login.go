package dto

import (
	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
)

type LoginInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

func (in *LoginInput) Validate() error {
	fields := map[string]string{}

	if !validEmail(in.Email) {
		fields["email"] = "please provide a valid email"
	}

	if in.Password == "" {
		fields["password"] = "is required"
	}

	if len(fields) > 0 {
		return autherror.NewValidationError(fields)
	}

	return nil
}

type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *UserOutput `json:"user,omitempty"`
}
