package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ProjectID is the unique identifier of a project in the dispatch pool
type ProjectID string

// NewProjectID generates a new project ID
func NewProjectID() ProjectID {
	return ProjectID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the project ID
func (id ProjectID) String() string {
	return string(id)
}

// Validate checks if the project ID is valid
func (id ProjectID) Validate() error {
	if id == "" {
		return goerr.New("project ID is empty")
	}
	return nil
}

// LogID is the unique identifier of a history entry
type LogID string

// NewLogID generates a new history entry ID
func NewLogID() LogID {
	return LogID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the log ID
func (id LogID) String() string {
	return string(id)
}

// Validate checks if the log ID is valid
func (id LogID) Validate() error {
	if id == "" {
		return goerr.New("log ID is empty")
	}
	return nil
}

// AttachmentID is the unique identifier of an attachment
type AttachmentID string

// NewAttachmentID generates a new attachment ID
func NewAttachmentID() AttachmentID {
	return AttachmentID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the attachment ID
func (id AttachmentID) String() string {
	return string(id)
}

// UserID is the unique identifier of a user
type UserID string

// NewUserID generates a new user ID
func NewUserID() UserID {
	return UserID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the user ID
func (id UserID) String() string {
	return string(id)
}

// Validate checks if the user ID is valid
func (id UserID) Validate() error {
	if id == "" {
		return goerr.New("user ID is empty")
	}
	return nil
}

// TemplateID is the unique identifier of a prompt template
type TemplateID string

// NewTemplateID generates a new template ID
func NewTemplateID() TemplateID {
	return TemplateID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the template ID
func (id TemplateID) String() string {
	return string(id)
}

// Validate checks if the template ID is valid
func (id TemplateID) Validate() error {
	if id == "" {
		return goerr.New("template ID is empty")
	}
	return nil
}
