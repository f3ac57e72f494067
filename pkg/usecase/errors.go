package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrProjectNotFound  = errors.New("project not found")
	ErrLogEntryNotFound = errors.New("log entry not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrTemplateNotFound = errors.New("template not found")

	// Validation errors
	ErrEmptyProjectName = errors.New("project name is required")
	ErrEmptyLogContent  = errors.New("log content is required")
	ErrInvalidStatus    = errors.New("invalid project status")

	// Access control errors
	ErrPermissionDenied = errors.New("permission denied")

	// Auth errors
	ErrInvalidToken = errors.New("invalid or expired token")
)
