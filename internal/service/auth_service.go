package service

import (
	"context"
	"errors"
	"time"

	"github.com/Zar-ufo/Pentagon/internal/apierror"
	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/infra"
	"github.com/Zar-ufo/Pentagon/internal/model"
	"github.com/Zar-ufo/Pentagon/internal/repository"
	"github.com/Zar-ufo/Pentagon/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// TokenDenylist revokes access tokens until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService covers login, self-registration and the caller's own account.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Logout(ctx context.Context, claims *token.Claims) error
	Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error
}

type authService struct {
	users    repository.UserRepository
	tokens   *token.Manager
	denylist TokenDenylist
}

func NewAuthService(users repository.UserRepository, tokens *token.Manager, denylist TokenDenylist) AuthService {
	return &authService{users: users, tokens: tokens, denylist: denylist}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.users.FindByUsernameOrEmail(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			infra.LoginAttempts.WithLabelValues("failure").Inc()
			return nil, apierror.Auth("invalid username or password")
		}
		return nil, apierror.Internal("looking up user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		infra.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, apierror.Auth("invalid username or password")
	}
	if !u.Active() {
		infra.LoginAttempts.WithLabelValues("inactive").Inc()
		return nil, apierror.Auth("account is inactive")
	}
	infra.LoginAttempts.WithLabelValues("success").Inc()

	now := time.Now()
	u.LastLogin = &now
	if err := s.users.Update(ctx, u); err != nil {
		return nil, apierror.Internal("recording login", err)
	}

	signed, _, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, apierror.Internal("issuing token", err)
	}
	return &dto.LoginResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
		User:        toUserResponse(u),
	}, nil
}

// Register always creates a sales account. Admin accounts go through the
// users endpoint so only an existing admin can mint them.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := s.checkUnique(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apierror.Internal("hashing password", err)
	}
	u := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         model.RoleSales,
		Status:       model.StatusActive,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, apierror.Internal("creating user", err)
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, claims *token.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return apierror.Internal("revoking token", err)
	}
	return nil
}

func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("user not found")
		}
		return nil, apierror.Internal("loading profile", err)
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("user not found")
		}
		return nil, apierror.Internal("loading profile", err)
	}

	if req.Email != "" && req.Email != u.Email {
		if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
			return nil, apierror.Conflict("email already in use")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Internal("checking email", err)
		}
		u.Email = req.Email
	}
	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, apierror.Internal("updating profile", err)
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("user not found")
		}
		return apierror.Internal("loading profile", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return apierror.Auth("current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return apierror.Internal("hashing password", err)
	}
	u.PasswordHash = string(hash)
	if err := s.users.Update(ctx, u); err != nil {
		return apierror.Internal("updating password", err)
	}
	return nil
}

func (s *authService) checkUnique(ctx context.Context, username, email string) error {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return apierror.Conflict("username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.Internal("checking username", err)
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return apierror.Conflict("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.Internal("checking email", err)
	}
	return nil
}
