package service

import (
	"context"
	"errors"

	"github.com/timetrack/timetrack-go/internal/crypto"
	"github.com/timetrack/timetrack-go/internal/model"
	"github.com/timetrack/timetrack-go/internal/repository"
)

var (
	ErrUsernameTaken = errors.New("user already exists")
	ErrUserNotFound  = errors.New("user not found")
)

// UserService handles user lifecycle business logic. It also owns the
// user side of cascade deletion: a user's tasks go first.
type UserService struct {
	users UserRepository
	tasks TaskRepository
}

// NewUserService creates a new UserService.
func NewUserService(users UserRepository, tasks TaskRepository) *UserService {
	return &UserService{users: users, tasks: tasks}
}

// Create registers a new user. The password is hashed before it ever
// reaches the store and the response never carries it back.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (model.UserResponse, error) {
	if req.UserName == "" {
		return model.UserResponse{}, ErrUsernameRequired
	}
	if req.Email == "" {
		return model.UserResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.UserResponse{}, ErrPasswordRequired
	}

	if _, err := s.users.GetByUsername(ctx, req.UserName); err == nil {
		return model.UserResponse{}, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.UserResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		UserName: req.UserName,
		Password: hash,
		Email:    req.Email,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The unique index backstops the pre-check against a concurrent
		// create with the same username.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.UserResponse{}, ErrUsernameTaken
		}
		return model.UserResponse{}, err
	}

	return user.Response(), nil
}

// Get retrieves a single user by ID.
func (s *UserService) Get(ctx context.Context, id int64) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}
	return user.Response(), nil
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.UserResponse, len(users))
	for i := range users {
		result[i] = users[i].Response()
	}
	return result, nil
}

// Update applies a partial update: only fields present in the request
// overwrite stored values.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	if req.UserName != nil {
		user.UserName = *req.UserName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.UserResponse{}, ErrUsernameTaken
		}
		return model.UserResponse{}, err
	}

	return user.Response(), nil
}

// Delete removes a user and, first, every task the user owns. Children
// must go before the parent to satisfy the foreign key constraint.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.tasks.DeleteByUser(ctx, id); err != nil {
		return err
	}

	err := s.users.Delete(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}
