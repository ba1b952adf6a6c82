package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"reportctl/internal/model"
	"reportctl/pkg/util"
)

// ValidateCredentials checks login inputs before they are sent.
func ValidateCredentials(c model.Credentials) error {
	return translate(util.Validator().Struct(c))
}

// ValidateRegistration checks sign-up inputs before they are sent. A password
// mismatch is reported ahead of any other problem.
func ValidateRegistration(r model.Registration) error {
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return translate(util.Validator().Struct(r))
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	if fe.Tag() == "email" {
		return ErrInvalidEmail
	}
	return fmt.Errorf("%w: %s", ErrRequiredField, strings.ToLower(fe.Field()))
}
