package usecase

import "errors"

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrJobClosed           = errors.New("this position is no longer accepting applications")
	ErrApplicationNotFound = errors.New("application not found")
	ErrResumeMissing       = errors.New("no resume available for this application")
	ErrResumeExternal      = errors.New("resume is not stored in the resume bucket")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnauthorized        = errors.New("authentication required")
	ErrForbidden           = errors.New("Unauthorized. Admin access only.")
	ErrUpstream            = errors.New("upstream service unavailable")
)
