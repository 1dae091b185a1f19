package profile

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
)

// Mode is the UI mode the user last picked. It never gates permissions.
type Mode string

const (
	ModeBuyer  Mode = "buyer"
	ModeSeller Mode = "seller"
)

func (m Mode) Valid() bool {
	return m == ModeBuyer || m == ModeSeller
}

var ErrNotFound = fmt.Errorf("profile %w", apperr.ErrNotFound)

// Profile is keyed by the user id of the identity that owns it.
type Profile struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Mode        Mode
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Name returns the display name, falling back to the mailbox part of the email.
func (p *Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}

	for i, r := range p.Email {
		if r == '@' {
			return p.Email[:i]
		}
	}

	return p.Email
}
