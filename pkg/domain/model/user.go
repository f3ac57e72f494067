package model

import (
	"time"

	"github.com/archops-lab/dispatchboard/pkg/domain/types"
)

// Persona is the AI-synthesized profile of a user's working history
type Persona struct {
	Summary          string   // past project support history
	Domains          []string // strong project domains
	WorkStyle        string   // preferred way of working
	ImprovementAreas string   // capabilities to strengthen
}

// User is a department member seeded at startup
type User struct {
	ID        types.UserID
	Email     string
	Name      string
	Role      types.UserRole
	Title     string
	JoinDate  string
	AvatarURL string

	Persona          *Persona
	PersonaUpdatedAt time.Time

	// Revision increments on every repository update, guarding persona
	// writes against stale generation responses.
	Revision int64
}
