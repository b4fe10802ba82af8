package services

import (
	"context"
	"strings"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/Salvaberticci/proyecto-laboratorio/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSelfDelete     = apperr.New(apperr.Validation, "You cannot delete your own account")
	ErrSelfDeactivate = apperr.New(apperr.Validation, "You cannot deactivate your own account")
	ErrSelfDemote     = apperr.New(apperr.Validation, "You cannot remove your own admin role")
	ErrInvalidRole    = apperr.New(apperr.Validation, "Role must be 'user' or 'admin'")
)

// UserService is the admin-facing user management.
type UserService struct {
	users    store.UserStore
	hashCost int
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users, hashCost: bcrypt.DefaultCost}
}

func (s *UserService) WithHashCost(cost int) *UserService {
	s.hashCost = cost
	return s
}

type NewUser struct {
	Username string
	Email    string
	Password string
	Role     models.Role
	Active   bool
}

// UserChanges holds the optional fields of an edit. An empty password leaves
// the digest untouched.
type UserChanges struct {
	Username *string
	Email    *string
	Password *string
	Role     *models.Role
	Active   *bool
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.GetAllUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, actor auth.Identity, in NewUser) (*models.User, error) {
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}
	hashed, err := hashPassword(in.Password, s.hashCost)
	if err != nil {
		return nil, err
	}
	user, err := s.users.CreateUser(ctx, models.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hashed,
		Role:         in.Role,
		Active:       in.Active,
	})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("user created", zap.Uint("user_id", user.ID), zap.String("by", actor.Username))
	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor auth.Identity, id uint, in UserChanges) (*models.User, error) {
	if in.Role != nil && !in.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if actor.UserID == id {
		if in.Active != nil && !*in.Active {
			return nil, ErrSelfDeactivate
		}
		if in.Role != nil && !in.Role.Satisfies(models.RoleAdmin) {
			return nil, ErrSelfDemote
		}
	}

	update := models.UserUpdate{
		Username: in.Username,
		Email:    in.Email,
		Role:     in.Role,
		Active:   in.Active,
	}
	if in.Password != nil && *in.Password != "" {
		hashed, err := hashPassword(*in.Password, s.hashCost)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hashed
	}

	user, err := s.users.UpdateUser(ctx, id, update)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("user updated", zap.Uint("user_id", id), zap.String("by", actor.Username))
	return user, nil
}

// Deactivate flips the active flag off, keeping the record.
func (s *UserService) Deactivate(ctx context.Context, actor auth.Identity, id uint) (*models.User, error) {
	if actor.UserID == id {
		return nil, ErrSelfDeactivate
	}
	inactive := false
	user, err := s.users.UpdateUser(ctx, id, models.UserUpdate{Active: &inactive})
	if err != nil {
		return nil, err
	}
	logger.Log.Info("user deactivated", zap.Uint("user_id", id), zap.String("by", actor.Username))
	return user, nil
}

// Delete removes the record permanently.
func (s *UserService) Delete(ctx context.Context, actor auth.Identity, id uint) (*models.User, error) {
	if actor.UserID == id {
		return nil, ErrSelfDelete
	}
	user, err := s.users.DeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("user deleted", zap.Uint("user_id", id), zap.String("by", actor.Username))
	return user, nil
}
