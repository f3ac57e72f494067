package types

import "fmt"

// TemplateKey identifies which AI feature a prompt template drives.
// Lookups select the first template matching a key, so exactly one
// template per key should be treated as active.
type TemplateKey string

const (
	TemplateKeyProjectSummary          TemplateKey = "PROJECT_SUMMARY"
	TemplateKeyDuplicateCheck          TemplateKey = "DUPLICATE_CHECK"
	TemplateKeyWorkflowContext         TemplateKey = "WORKFLOW_CONTEXT"
	TemplateKeyArchitectRecommendation TemplateKey = "ARCHITECT_RECOMMENDATION"
	TemplateKeyUserPersona             TemplateKey = "USER_PERSONA"
)

// AllTemplateKeys returns all valid template keys
func AllTemplateKeys() []TemplateKey {
	return []TemplateKey{
		TemplateKeyProjectSummary,
		TemplateKeyDuplicateCheck,
		TemplateKeyWorkflowContext,
		TemplateKeyArchitectRecommendation,
		TemplateKeyUserPersona,
	}
}

// IsValid checks if the template key is valid
func (k TemplateKey) IsValid() bool {
	switch k {
	case TemplateKeyProjectSummary,
		TemplateKeyDuplicateCheck,
		TemplateKeyWorkflowContext,
		TemplateKeyArchitectRecommendation,
		TemplateKeyUserPersona:
		return true
	default:
		return false
	}
}

// String returns the string representation of the template key
func (k TemplateKey) String() string {
	return string(k)
}

// ParseTemplateKey parses a string into a TemplateKey
func ParseTemplateKey(s string) (TemplateKey, error) {
	key := TemplateKey(s)
	if !key.IsValid() {
		return "", fmt.Errorf("invalid template key: %s", s)
	}
	return key, nil
}
