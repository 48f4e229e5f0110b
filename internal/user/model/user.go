package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	// Email = unique campus address (used for login and identity)
	Email string `bun:",unique,notnull"`

	PasswordHash string `bun:",notnull"`

	// Verified is set once the campus address has been confirmed
	Verified bool `bun:",notnull,default:false"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

type UserWithToken struct {
	User  *User
	Token string
}
