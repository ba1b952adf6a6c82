package report

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"reportctl/internal/model"
	"reportctl/pkg/util"
)

// ValidateForm rejects a report request before it reaches the network.
func ValidateForm(f model.ReportForm) error {
	if err := util.Validator().Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return err
		}
		fe := verrs[0]
		if fe.Tag() == "required" {
			return fmt.Errorf("%w: %s", ErrRequiredField, fe.Field())
		}
		switch fe.Field() {
		case "GithubURL":
			return ErrInvalidGithubURL
		case "Email":
			return ErrInvalidEmail
		default:
			return fmt.Errorf("%w: %s", ErrInvalidDate, fe.Field())
		}
	}

	start, err := util.StrToDate(f.StartDate)
	if err != nil {
		return fmt.Errorf("%w: StartDate", ErrInvalidDate)
	}
	end, err := util.StrToDate(f.EndDate)
	if err != nil {
		return fmt.Errorf("%w: EndDate", ErrInvalidDate)
	}
	if end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}
