package util

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	githubRepoRe = regexp.MustCompile(`(?i)^https://github\.com/[^/\s]+/[^/\s]+/?$`)

	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the module's custom rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("github_repo", func(fl validator.FieldLevel) bool {
			return IsGithubRepoURL(fl.Field().String())
		})
	})
	return validate
}

// IsGithubRepoURL reports whether u looks like https://github.com/<owner>/<repo>.
func IsGithubRepoURL(u string) bool {
	return githubRepoRe.MatchString(u)
}
