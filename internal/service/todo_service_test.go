package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/apperr"
	"github.com/taskvault/taskvault/internal/logging"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/repository"
)

func newTestTodoService(t *testing.T) *TodoService {
	t.Helper()
	return NewTodoService(repository.NewMemoryRepository(), logging.New(slog.LevelError, "text"))
}

func TestTodoCreate(t *testing.T) {
	svc := newTestTodoService(t)
	ctx := context.Background()

	t.Run("defaults to not completed", func(t *testing.T) {
		todo, err := svc.Create(ctx, "owner-1", &models.CreateTodoRequest{Title: "buy milk"})
		require.NoError(t, err)
		assert.NotEmpty(t, todo.ID)
		assert.Equal(t, "buy milk", todo.Title)
		assert.False(t, todo.Completed)
		assert.Equal(t, "owner-1", todo.OwnerID)
	})

	t.Run("honors explicit completed flag", func(t *testing.T) {
		done := true
		todo, err := svc.Create(ctx, "owner-1", &models.CreateTodoRequest{Title: "done already", Completed: &done})
		require.NoError(t, err)
		assert.True(t, todo.Completed)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, "owner-1", &models.CreateTodoRequest{Title: "   "})
		appErr := apperr.From(err)
		assert.Equal(t, 400, appErr.Status)
	})
}

func TestTodoOwnershipIsolation(t *testing.T) {
	svc := newTestTodoService(t)
	ctx := context.Background()

	mine, err := svc.Create(ctx, "owner-1", &models.CreateTodoRequest{Title: "mine"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "owner-2", &models.CreateTodoRequest{Title: "theirs"})
	require.NoError(t, err)

	t.Run("list only shows own todos", func(t *testing.T) {
		todos, err := svc.List(ctx, "owner-1")
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, "mine", todos[0].Title)
	})

	t.Run("foreign todo reads as not found", func(t *testing.T) {
		_, err := svc.Get(ctx, mine.ID, "owner-2")
		appErr := apperr.From(err)
		assert.Equal(t, 404, appErr.Status)
		assert.Equal(t, apperr.CodeTodoNotFound, appErr.Code)
	})

	t.Run("foreign update is not found", func(t *testing.T) {
		title := "hijacked"
		_, err := svc.Update(ctx, mine.ID, "owner-2", &models.UpdateTodoRequest{Title: &title})
		appErr := apperr.From(err)
		assert.Equal(t, 404, appErr.Status)
	})

	t.Run("foreign delete is not found and leaves the todo", func(t *testing.T) {
		_, err := svc.Delete(ctx, mine.ID, "owner-2")
		appErr := apperr.From(err)
		assert.Equal(t, 404, appErr.Status)

		got, err := svc.Get(ctx, mine.ID, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "mine", got.Title)
	})
}

func TestTodoGet(t *testing.T) {
	svc := newTestTodoService(t)
	ctx := context.Background()

	t.Run("malformed id is a validation error", func(t *testing.T) {
		_, err := svc.Get(ctx, "not-a-uuid", "owner-1")
		appErr := apperr.From(err)
		assert.Equal(t, 400, appErr.Status)
		assert.Equal(t, apperr.CodeTodoInvalidID, appErr.Code)
	})

	t.Run("well-formed unknown id is not found", func(t *testing.T) {
		_, err := svc.Get(ctx, "0198c0de-0000-7000-8000-000000000000", "owner-1")
		appErr := apperr.From(err)
		assert.Equal(t, 404, appErr.Status)
	})
}

func TestTodoUpdate(t *testing.T) {
	svc := newTestTodoService(t)
	ctx := context.Background()

	todo, err := svc.Create(ctx, "owner-1", &models.CreateTodoRequest{
		Title:       "original",
		Description: "keep me",
	})
	require.NoError(t, err)

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		done := true
		updated, err := svc.Update(ctx, todo.ID, "owner-1", &models.UpdateTodoRequest{Completed: &done})
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, "original", updated.Title)
		assert.Equal(t, "keep me", updated.Description)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		empty := "  "
		_, err := svc.Update(ctx, todo.ID, "owner-1", &models.UpdateTodoRequest{Title: &empty})
		appErr := apperr.From(err)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("description can be cleared", func(t *testing.T) {
		none := ""
		updated, err := svc.Update(ctx, todo.ID, "owner-1", &models.UpdateTodoRequest{Description: &none})
		require.NoError(t, err)
		assert.Empty(t, updated.Description)
	})
}

func TestTodoDelete(t *testing.T) {
	svc := newTestTodoService(t)
	ctx := context.Background()

	todo, err := svc.Create(ctx, "owner-1", &models.CreateTodoRequest{Title: "short-lived"})
	require.NoError(t, err)

	resp, err := svc.Delete(ctx, todo.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Todo successfully deleted", resp.Message)

	_, err = svc.Get(ctx, todo.ID, "owner-1")
	appErr := apperr.From(err)
	assert.Equal(t, 404, appErr.Status)
}
