package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gatorkeys/config"
	"gatorkeys/internal/user"
	models "gatorkeys/internal/user/model"
	"gatorkeys/pkg/errors"
	"gatorkeys/pkg/logger"
	"gatorkeys/pkg/utils"
)

// campusDomain gates registration to university addresses.
const campusDomain = "@ufl.edu"

const minPasswordLength = 8

type UserUsecase struct {
	repo   user.UserRepository
	logger logger.Logger
	config config.Config
}

func NewUserUsecase(repo user.UserRepository, logger logger.Logger, config config.Config) *UserUsecase {
	return &UserUsecase{repo: repo, logger: logger, config: config}
}

func (uc *UserUsecase) Register(ctx context.Context, cmd user.RegisterCommand) (*user.UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.ErrInvalidEmail
	}
	if !strings.HasSuffix(email, campusDomain) {
		return nil, errors.ErrNotCampusEmail
	}
	if len(cmd.Password) < minPasswordLength {
		return nil, errors.ErrPasswordTooShort
	}

	if exists, err := uc.repo.EmailExists(ctx, email); err != nil {
		uc.logger.Error("database error checking email", "err", err)
		return nil, errors.Internal("internal server error")
	} else if exists {
		return nil, errors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.ErrRegistrationFailed(err)
	}

	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Verified:     true,
	}
	if err := uc.repo.CreateUser(ctx, u); err != nil {
		uc.logger.Errorf("error while saving user in db: %v", err)
		return nil, errors.ErrRegistrationFailed(err)
	}

	return &user.UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Verified: u.Verified,
	}, nil
}

func (uc *UserUsecase) Login(ctx context.Context, cmd user.LoginCommand) (*user.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	u, err := uc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		uc.logger.Warn("login attempt for unknown email", "email", email)
		return nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(cmd.Password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}
	if !u.Verified {
		return nil, errors.ErrEmailNotVerified
	}

	token, err := utils.GenerateJWTToken(u.ID.String(), u.Email, uc.config)
	if err != nil {
		uc.logger.Error("failed to sign access token", "err", err)
		return nil, errors.ErrLoginFailed(err)
	}

	expiresIn := uc.config.JWT.ExpiredIn * 3600
	if expiresIn <= 0 {
		expiresIn = 7200
	}
	return &user.LoginResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		TokenType:   "Bearer",
		User:        &user.UserDTO{ID: u.ID, Email: u.Email, Verified: u.Verified},
	}, nil
}

func (uc *UserUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user.UserDTO{ID: u.ID, Email: u.Email, Verified: u.Verified}, nil
}
