package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskvault/taskvault/internal/apperr"
	"github.com/taskvault/taskvault/internal/logging"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/repository"
)

// TodoService is owner-scoped CRUD. Every read and write filters by the
// authenticated owner, so a foreign todo behaves as not-found rather than
// forbidden.
type TodoService struct {
	repo repository.Repository
	log  *logging.Logger
}

func NewTodoService(repo repository.Repository, log *logging.Logger) *TodoService {
	return &TodoService{repo: repo, log: log}
}

func (s *TodoService) Create(ctx context.Context, ownerID string, req *models.CreateTodoRequest) (*models.Todo, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validation(apperr.CodeInvalidPayload, "title is required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	todo := &models.Todo{
		ID:          id.String(),
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := s.repo.CreateTodo(ctx, todo); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "todo created", logging.TodoID(todo.ID), logging.UserID(ownerID))
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	return s.repo.ListTodosByOwner(ctx, ownerID)
}

// Get validates the id shape before touching the store, then performs the
// ownership-scoped lookup.
func (s *TodoService) Get(ctx context.Context, id, ownerID string) (*models.Todo, error) {
	if err := validateTodoID(id); err != nil {
		return nil, err
	}

	todo, err := s.repo.GetTodo(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, apperr.NotFound(apperr.CodeTodoNotFound, "todo not found with ID "+id)
		}
		return nil, err
	}
	return todo, nil
}

// Update re-runs the ownership check via Get and applies a partial merge.
func (s *TodoService) Update(ctx context.Context, id, ownerID string, req *models.UpdateTodoRequest) (*models.Todo, error) {
	todo, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperr.Validation(apperr.CodeInvalidPayload, "title must not be empty")
		}
		todo.Title = *req.Title
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	todo.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateTodo(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, apperr.NotFound(apperr.CodeTodoNotFound, "todo not found with ID "+id)
		}
		return nil, err
	}

	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id, ownerID string) (*models.MessageResponse, error) {
	if _, err := s.Get(ctx, id, ownerID); err != nil {
		return nil, err
	}

	if err := s.repo.DeleteTodo(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, apperr.NotFound(apperr.CodeTodoNotFound, "todo not found with ID "+id)
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "todo deleted", logging.TodoID(id), logging.UserID(ownerID))
	return &models.MessageResponse{Message: "Todo successfully deleted"}, nil
}

func validateTodoID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Validation(apperr.CodeTodoInvalidID, "invalid todo ID: "+id)
	}
	return nil
}
