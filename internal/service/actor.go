package service

import (
	"github.com/Zar-ufo/Pentagon/internal/model"

	"github.com/google/uuid"
)

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) Admin() bool { return a.Role == model.RoleAdmin }
