package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/types"
)

// User represents an account row
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Public returns the client-facing view of the user, without the password hash.
func (u *User) Public() *types.User {
	if u == nil {
		return nil
	}
	return &types.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// VersionConflictError is returned when an update carries a stale document version
type VersionConflictError struct {
	ResumeID uuid.UUID
	Expected int64
	Actual   int64
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("resume %s was modified concurrently: have version %d, stored version %d",
		e.ResumeID, e.Expected, e.Actual)
}

// JobMatchRecord is a stored match report
type JobMatchRecord struct {
	ID             uuid.UUID          `json:"id"`
	ResumeID       uuid.UUID          `json:"resume_id"`
	JobDescription string             `json:"job_description"`
	Report         *types.MatchResult `json:"report"`
	CreatedAt      time.Time          `json:"created_at"`
}
