package dto

import (
	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
)

type ForgotPasswordInput struct {
	Email     string `json:"email"`
	IPAddress string `json:"-"`
}

func (in *ForgotPasswordInput) Validate() error {
	if !validEmail(in.Email) {
		return autherror.NewValidationError(map[string]string{"email": "please provide a valid email"})
	}

	return nil
}

type ResetPasswordInput struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (in *ResetPasswordInput) Validate() error {
	fields := map[string]string{}

	if in.Token == "" {
		fields["token"] = "is required"
	}

	if msg := passwordComplexity(in.NewPassword); msg != "" {
		fields["new_password"] = msg
	}

	if len(fields) > 0 {
		return autherror.NewValidationError(fields)
	}

	return nil
}
