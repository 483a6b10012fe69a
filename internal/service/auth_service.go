package service

import (
	"context"
	"errors"
	"strconv"

	"leave-api/internal/apperror"
	"leave-api/internal/model"
	"leave-api/internal/repository"
	"leave-api/internal/token"

	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role"` // defaults to Employee
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"userId"`
	Role    string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"` // "Bearer <jwt>"
	Role    string `json:"role"`
}

// UserResponse exposes a user without its password hash
type UserResponse struct {
	UserID    int    `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	RoleName  string `json:"role_name"`
}

var (
	errUserExists   = apperror.Conflict("User already exists")
	errInvalidRole  = apperror.Validation("Invalid role provided")
	errUserNotFound = apperror.NotFound("User not found")
)

// TokenIssuer signs tokens for authenticated identities
type TokenIssuer interface {
	Issue(identity model.Identity) (string, error)
}

// AuthService covers registration, login and profile lookups
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GetProfile(ctx context.Context, userID int) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
}

type authService struct {
	users      repository.UserRepository
	audit      repository.AuditRepository
	tx         repository.TransactionManager
	tokens     TokenIssuer
	bcryptCost int
}

// NewAuthService returns a new instance of AuthService
func NewAuthService(users repository.UserRepository, audit repository.AuditRepository, tx repository.TransactionManager, tokens TokenIssuer, bcryptCost int) AuthService {
	return &authService{users: users, audit: audit, tx: tx, tokens: tokens, bcryptCost: bcryptCost}
}

func mapToResponse(user *model.UserWithRole) *UserResponse {
	return &UserResponse{
		UserID:    user.UserID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		RoleName:  user.RoleName,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return nil, apperror.Validation("First name, last name, email and password are required")
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, errUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError("failed to check existing user", err)
	}

	roleName := req.Role
	if roleName == "" {
		roleName = model.RoleEmployee
	}
	role, err := s.users.FindRoleByName(ctx, roleName)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errInvalidRole
	}
	if err != nil {
		return nil, storeError("failed to resolve role", err)
	}

	// Hash outside the store lock
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperror.Validation("Password must be at most 72 bytes")
	}
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	user := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		RoleID:       role.ID,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// a concurrent registration may have taken the email since the first check
		if _, err := s.users.GetByEmail(txCtx, req.Email); err == nil {
			return errUserExists
		}
		if err := s.users.Create(txCtx, user); err != nil {
			return err
		}
		return s.audit.Log(txCtx, &model.AuditLog{
			UserID:   &user.UserID,
			Action:   model.ActionRegisterUser,
			EntityID: strconv.Itoa(user.UserID),
			Details:  auditDetails(map[string]any{"email": user.Email, "role": role.Name}),
		})
	})
	if err != nil {
		return nil, storeError("failed to register user", err)
	}

	return &RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.UserID,
		Role:    role.Name,
	}, nil
}

// Login never reveals whether the email or the password was wrong
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmailWithRole(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.ErrInvalidCredentials
	}
	if err != nil {
		return nil, storeError("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	role := model.RoleClaim(user.RoleName)
	signed, err := s.tokens.Issue(model.Identity{UserID: user.UserID, Email: user.Email, Role: role})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Message: "Login successful",
		Token:   token.BearerPrefix + signed,
		Role:    role,
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID int) (*UserResponse, error) {
	user, err := s.users.GetByIDWithRole(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, storeError("failed to load profile", err)
	}
	return mapToResponse(user), nil
}

func (s *authService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, 0, storeError("failed to list users", err)
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapToResponse(&users[i]))
	}
	return responses, total, nil
}
