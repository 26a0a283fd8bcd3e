package dto

import (
	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
)

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (in *RegisterInput) Validate() error {
	fields := map[string]string{}

	if !validEmail(in.Email) {
		fields["email"] = "please provide a valid email"
	}

	if msg := passwordComplexity(in.Password); msg != "" {
		fields["password"] = msg
	}

	if msg := requiredName(in.FirstName); msg != "" {
		fields["first_name"] = msg
	}

	if msg := requiredName(in.LastName); msg != "" {
		fields["last_name"] = msg
	}

	if len(fields) > 0 {
		return autherror.NewValidationError(fields)
	}

	return nil
}

type RegisterOutput struct {
	User    *UserOutput `json:"user"`
	Message string      `json:"message"`
}
