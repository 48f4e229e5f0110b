package user

import (
	"context"

	"github.com/google/uuid"
)

type UserUsecase interface {
	// Register a new account; only campus email addresses are accepted
	Register(ctx context.Context, cmd RegisterCommand) (*UserDTO, error)

	// Login verifies the password and issues an access token
	Login(ctx context.Context, cmd LoginCommand) (*LoginResponse, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
}
