package repository

import (
	"context"

	"leave-api/internal/model"
	"leave-api/pkg/pagination"
)

// UserRepository defines the data access of User entities
type UserRepository interface {
	FindRoleByName(ctx context.Context, name string) (*model.Role, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByEmailWithRole(ctx context.Context, email string) (*model.UserWithRole, error)
	GetByIDWithRole(ctx context.Context, id int) (*model.UserWithRole, error)
	Create(ctx context.Context, user *model.User) error
	List(ctx context.Context, page, limit int) ([]model.UserWithRole, int64, error)
}

type userRepository struct {
	d *Dispatcher
}

// NewUserRepository returns a new instance of UserRepository
func NewUserRepository(d *Dispatcher) UserRepository {
	return &userRepository{d: d}
}

func (r *userRepository) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	res, err := r.d.Execute(ctx, LookupRoleByName{Name: name})
	if err != nil {
		return nil, err
	}
	if len(res.Roles) == 0 {
		return nil, ErrNotFound
	}
	return &res.Roles[0], nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	res, err := r.d.Execute(ctx, LookupUserByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if len(res.Users) == 0 {
		return nil, ErrNotFound
	}
	return &res.Users[0].User, nil
}

func (r *userRepository) GetByEmailWithRole(ctx context.Context, email string) (*model.UserWithRole, error) {
	if email == "" {
		return nil, ErrNotFound
	}
	return r.lookupWithRole(ctx, LookupUserWithRole{Email: email})
}

func (r *userRepository) GetByIDWithRole(ctx context.Context, id int) (*model.UserWithRole, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return r.lookupWithRole(ctx, LookupUserWithRole{UserID: id})
}

func (r *userRepository) lookupWithRole(ctx context.Context, cmd LookupUserWithRole) (*model.UserWithRole, error) {
	res, err := r.d.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if len(res.Users) == 0 {
		return nil, ErrNotFound
	}
	return &res.Users[0], nil
}

// Create inserts the user and sets its assigned id
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	res, err := r.d.Execute(ctx, InsertUser{
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		RoleID:       user.RoleID,
	})
	if err != nil {
		return err
	}
	user.UserID = res.InsertID
	return nil
}

func (r *userRepository) List(ctx context.Context, page, limit int) ([]model.UserWithRole, int64, error) {
	res, err := r.d.Execute(ctx, ListUsers{})
	if err != nil {
		return nil, 0, err
	}
	return pagination.Slice(res.Users, page, limit), int64(len(res.Users)), nil
}
