package repository

import (
	"context"
	"errors"

	"github.com/taskvault/taskvault/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")
	ErrTodoNotFound = errors.New("todo not found")
)

// Repository persists users and todos. All todo operations are scoped by
// owner ID; a todo belonging to another owner behaves as if it did not exist.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	CreateTodo(ctx context.Context, todo *models.Todo) error
	ListTodosByOwner(ctx context.Context, ownerID string) ([]*models.Todo, error)
	GetTodo(ctx context.Context, id, ownerID string) (*models.Todo, error)
	UpdateTodo(ctx context.Context, todo *models.Todo) error
	DeleteTodo(ctx context.Context, id, ownerID string) error
}
