package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/intl-tools/translator-service/internal/domain/dto"
	"github.com/intl-tools/translator-service/internal/domain/model"
	"github.com/intl-tools/translator-service/internal/repository"
)

// AdminUsername is the bootstrap account. Exactly one user with this name
// and the admin role exists at all times.
const AdminUsername = "admin"

const adminEmail = "admin@translator.local"

// dummyPasswordHash is compared against when a login name matches no user,
// so the not-found path pays the same bcrypt cost as a real check and the
// two failures cannot be told apart by timing.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// IdentityService provides user management, password handling and
// bearer-token issuance.
type IdentityService interface {
	CreateUser(ctx context.Context, actor *model.User, req dto.CreateUserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateUserRequest) (*model.User, error)
	UpdatePassword(ctx context.Context, actor *model.User, id uuid.UUID, password string) (*model.User, error)
	DeleteUser(ctx context.Context, actor *model.User, id uuid.UUID) error
	ListUsers(ctx context.Context) ([]model.User, error)
	Login(ctx context.Context, userOrEmail, password string) (*dto.LoginResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*model.User, error)
	EnsureAdminUser(ctx context.Context, defaultPassword string) (*model.User, error)
}

// IdentityServiceImpl implements IdentityService.
type IdentityServiceImpl struct {
	userRepo  repository.UserRepositoryInterface
	tokenRepo repository.TokenRepositoryInterface
	now       nowFunc
}

// NewIdentityService creates a new identity service.
func NewIdentityService(
	userRepo repository.UserRepositoryInterface,
	tokenRepo repository.TokenRepositoryInterface,
) *IdentityServiceImpl {
	return &IdentityServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		now:       defaultNow,
	}
}

// CreateUser creates a user with a bcrypt-hashed password. Admin only.
func (s *IdentityServiceImpl) CreateUser(ctx context.Context, actor *model.User, req dto.CreateUserRequest) (*model.User, error) {
	if actor != nil && !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Role:         role,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update; omitted fields keep current values.
func (s *IdentityServiceImpl) UpdateUser(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateUserRequest) (*model.User, error) {
	if actor != nil && !actor.Role.IsAdmin() && actor.ID != id {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// The bootstrap admin account keeps its name and role.
	if user.Username == AdminUsername && (req.Username != nil || req.Role != nil) {
		return nil, ErrForbidden
	}

	if req.Role != nil {
		role, err := model.ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		if actor != nil && !actor.Role.IsAdmin() {
			return nil, ErrForbidden
		}
		user.Role = role
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword rehashes and stores a new password.
func (s *IdentityServiceImpl) UpdatePassword(ctx context.Context, actor *model.User, id uuid.UUID, password string) (*model.User, error) {
	if actor != nil && !actor.Role.IsAdmin() && actor.ID != id {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes a user and revokes their tokens. Admin only; the
// bootstrap admin account cannot be deleted.
func (s *IdentityServiceImpl) DeleteUser(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if actor != nil && !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Username == AdminUsername {
		return ErrForbidden
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.tokenRepo.DeleteByUserID(ctx, id)
}

// ListUsers returns all users with password hashes blanked.
func (s *IdentityServiceImpl) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx, repository.UserFilter{})
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, nil
}

// Login authenticates by username or email and issues an opaque auth token.
func (s *IdentityServiceImpl) Login(ctx context.Context, userOrEmail, password string) (*dto.LoginResponse, error) {
	users, err := s.userRepo.List(ctx, repository.UserFilter{Username: &userOrEmail})
	if err != nil {
		return nil, err
	}
	if len(users) != 1 {
		users, err = s.userRepo.List(ctx, repository.UserFilter{Email: &userOrEmail})
		if err != nil {
			return nil, err
		}
	}
	if len(users) != 1 {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		return nil, ErrUserNotFound
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	token := &model.Token{
		Kind:   model.TokenKindAuth,
		Token:  uuid.NewString(),
		UserID: user.ID,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		User:  user.Sanitized(),
		Token: *token,
	}, nil
}

// ValidateToken resolves a presented opaque token into its acting user.
// Tokens that are missing, revoked or expired are rejected.
func (s *IdentityServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}
	token, err := s.tokenRepo.FindByToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !token.Valid(s.now()) {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	if user.DeletedAt != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// EnsureAdminUser bootstraps the admin account if it does not exist yet.
// Idempotent and safe to run on every startup.
func (s *IdentityServiceImpl) EnsureAdminUser(ctx context.Context, defaultPassword string) (*model.User, error) {
	username := AdminUsername
	users, err := s.userRepo.List(ctx, repository.UserFilter{Username: &username})
	if err != nil {
		return nil, err
	}
	if len(users) > 0 {
		return &users[0], nil
	}

	log.Info().Msg("Creating admin user")
	return s.CreateUser(ctx, nil, dto.CreateUserRequest{
		Role:     string(model.RoleAdmin),
		Email:    adminEmail,
		Username: username,
		Password: defaultPassword,
	})
}
