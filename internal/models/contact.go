package models

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
	Name      string
	Phone     string
}
