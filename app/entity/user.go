package entity

import (
	"database/sql"
	"time"
)

type User struct {
	ID               uint64
	Name             string
	Username         string
	Description      sql.NullString
	Email            string
	PasswordHash     string
	IsActive         bool
	RefreshTokenHash sql.NullString
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
