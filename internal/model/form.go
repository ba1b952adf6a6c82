package model

// ReportForm is the user's request for a new report.
type ReportForm struct {
	GithubURL string `json:"githubUrl" validate:"required,github_repo"`
	Email     string `json:"email" validate:"required,email"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// Credentials are the login inputs.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration are the sign-up inputs.
type Registration struct {
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}
