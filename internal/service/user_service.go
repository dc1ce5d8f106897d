package service

import (
	"context"
	"errors"
	"time"

	"github.com/Zar-ufo/Pentagon/internal/apierror"
	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/model"
	"github.com/Zar-ufo/Pentagon/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService is the admin-facing account management surface.
type UserService interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Deactivate(ctx context.Context, actor Actor, id uuid.UUID) error
	ResetPassword(ctx context.Context, id uuid.UUID, req dto.ResetPasswordRequest) error
	SalesPeople(ctx context.Context) ([]dto.UserResponse, error)
	Stats(ctx context.Context) (*dto.UserStatsResponse, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, apierror.Conflict("username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Internal("checking username", err)
	}
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, apierror.Conflict("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Internal("checking email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apierror.Internal("hashing password", err)
	}
	role := req.Role
	if role == "" {
		role = model.RoleSales
	}
	u := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         role,
		Status:       model.StatusActive,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, apierror.Internal("creating user", err)
	}
	resp := toUserResponse(u)
	return &resp, nil
}

// Get returns one account. Sales callers can only read themselves.
func (s *userService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.UserResponse, error) {
	if !actor.Admin() && actor.ID != id {
		return nil, apierror.Permission("you can only view your own account")
	}
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apierror.Internal("listing users", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

// Update edits an account. Role and status changes take effect only for an
// admin caller; anyone else has them silently ignored.
func (s *userService) Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.Admin() && actor.ID != id {
		return nil, apierror.Permission("you can only edit your own account")
	}
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
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
	if actor.Admin() {
		if req.Role != "" {
			u.Role = req.Role
		}
		if req.Status != "" {
			u.Status = req.Status
		}
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, apierror.Internal("updating user", err)
	}
	resp := toUserResponse(u)
	return &resp, nil
}

// Deactivate soft-deletes an account. Admins cannot deactivate themselves so
// the system always keeps at least the acting admin alive.
func (s *userService) Deactivate(ctx context.Context, actor Actor, id uuid.UUID) error {
	if actor.ID == id {
		return apierror.Validation("cannot deactivate your own account")
	}
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.users.Deactivate(ctx, id); err != nil {
		return apierror.Internal("deactivating user", err)
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, id uuid.UUID, req dto.ResetPasswordRequest) error {
	u, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return apierror.Internal("hashing password", err)
	}
	u.PasswordHash = string(hash)
	if err := s.users.Update(ctx, u); err != nil {
		return apierror.Internal("resetting password", err)
	}
	return nil
}

func (s *userService) SalesPeople(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.ListActiveByRole(ctx, model.RoleSales)
	if err != nil {
		return nil, apierror.Internal("listing sales people", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

func (s *userService) Stats(ctx context.Context) (*dto.UserStatsResponse, error) {
	stats := &dto.UserStatsResponse{}
	var err error
	if stats.TotalUsers, err = s.users.CountAll(ctx); err != nil {
		return nil, apierror.Internal("counting users", err)
	}
	if stats.AdminUsers, err = s.users.CountByRole(ctx, model.RoleAdmin); err != nil {
		return nil, apierror.Internal("counting admins", err)
	}
	if stats.SalesUsers, err = s.users.CountByRole(ctx, model.RoleSales); err != nil {
		return nil, apierror.Internal("counting sales users", err)
	}
	if stats.ActiveUsers, err = s.users.CountByStatus(ctx, model.StatusActive); err != nil {
		return nil, apierror.Internal("counting active users", err)
	}
	if stats.InactiveUsers, err = s.users.CountByStatus(ctx, model.StatusInactive); err != nil {
		return nil, apierror.Internal("counting inactive users", err)
	}
	since := time.Now().AddDate(0, 0, -30)
	if stats.RecentRegistrations, err = s.users.CountCreatedSince(ctx, since); err != nil {
		return nil, apierror.Internal("counting recent registrations", err)
	}
	return stats, nil
}

func (s *userService) find(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("user not found")
		}
		return nil, apierror.Internal("loading user", err)
	}
	return u, nil
}
