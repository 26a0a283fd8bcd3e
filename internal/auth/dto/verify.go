package dto

import (
	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
)

type VerifyEmailInput struct {
	Token string `json:"token"`
}

func (in *VerifyEmailInput) Validate() error {
	if in.Token == "" {
		return autherror.NewValidationError(map[string]string{"token": "is required"})
	}

	return nil
}

type ResendVerificationInput struct {
	Email string `json:"email"`
}

func (in *ResendVerificationInput) Validate() error {
	if !validEmail(in.Email) {
		return autherror.NewValidationError(map[string]string{"email": "please provide a valid email"})
	}

	return nil
}
