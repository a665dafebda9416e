package services_test

import (
	"testing"
	"time"

	"tugas/internal/models"
	"tugas/internal/repositories"
	"tugas/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReminderPublisher is a mock implementation of services.ReminderPublisher
type MockReminderPublisher struct {
	mock.Mock
}

func (m *MockReminderPublisher) PublishReminderScheduled(event map[string]interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestTodoService_CreateTodo(t *testing.T) {
	repo := repositories.NewMockTodoRepository()
	todoService := services.NewTodoService(repo, nil)

	todo := &models.Todo{
		UserID:      "user-1",
		Title:       "Buy groceries",
		Description: "Milk and eggs",
	}
	err := todoService.CreateTodo(todo)
	assert.NoError(t, err)
	assert.NotEmpty(t, todo.ID)
	assert.False(t, todo.Completed)

	stored, err := todoService.GetTodoByID(todo.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Buy groceries", stored.Title)
}

func TestTodoService_CreateTodoPublishesReminder(t *testing.T) {
	repo := repositories.NewMockTodoRepository()
	publisher := new(MockReminderPublisher)
	todoService := services.NewTodoService(repo, publisher)

	publisher.On("PublishReminderScheduled", mock.Anything).Return(nil).Once()

	todo := &models.Todo{
		UserID: "user-1",
		Title:  "Dentist",
		Date:   "2026-09-15",
		Time:   "09:30",
		Remind: strPtr("30m"),
	}
	err := todoService.CreateTodo(todo)
	assert.NoError(t, err)
	publisher.AssertExpectations(t)

	// No reminder set: nothing published.
	err = todoService.CreateTodo(&models.Todo{UserID: "user-1", Title: "No reminder"})
	assert.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestTodoService_GetTodosByUserNewestFirst(t *testing.T) {
	repo := repositories.NewMockTodoRepository()
	todoService := services.NewTodoService(repo, nil)

	base := time.Now()
	for i, title := range []string{"oldest", "middle", "newest"} {
		todo := &models.Todo{UserID: "user-1", Title: title}
		todo.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		assert.NoError(t, todoService.CreateTodo(todo))
	}
	// Another user's item must not leak into the listing.
	other := &models.Todo{UserID: "user-2", Title: "not mine"}
	assert.NoError(t, todoService.CreateTodo(other))

	todos, err := todoService.GetTodosByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, todos, 3)
	assert.Equal(t, "newest", todos[0].Title)
	assert.Equal(t, "middle", todos[1].Title)
	assert.Equal(t, "oldest", todos[2].Title)
}

func TestTodoService_UpdateTodo(t *testing.T) {
	repo := repositories.NewMockTodoRepository()
	todoService := services.NewTodoService(repo, nil)

	todo := &models.Todo{
		UserID: "user-1",
		Title:  "Write report",
		Remind: strPtr("1h"),
	}
	assert.NoError(t, todoService.CreateTodo(todo))

	// Partial update: only completed changes, remind is re-sent.
	updated, err := todoService.UpdateTodo(todo.ID, models.TodoUpdate{
		Completed: boolPtr(true),
		Remind:    strPtr("1h"),
	})
	assert.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Write report", updated.Title)
	assert.NotNil(t, updated.Remind)

	// An update that omits remind clears the stored reminder.
	updated, err = todoService.UpdateTodo(todo.ID, models.TodoUpdate{
		Title: strPtr("Write final report"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Write final report", updated.Title)
	assert.Nil(t, updated.Remind)

	_, err = todoService.UpdateTodo("no-such-id", models.TodoUpdate{})
	assert.ErrorIs(t, err, services.ErrTodoNotFound)
}

func TestTodoService_DeleteTodo(t *testing.T) {
	repo := repositories.NewMockTodoRepository()
	todoService := services.NewTodoService(repo, nil)

	todo := &models.Todo{UserID: "user-1", Title: "Temporary"}
	assert.NoError(t, todoService.CreateTodo(todo))

	assert.NoError(t, todoService.DeleteTodo(todo.ID))

	_, err := todoService.GetTodoByID(todo.ID)
	assert.ErrorIs(t, err, services.ErrTodoNotFound)

	assert.ErrorIs(t, todoService.DeleteTodo(todo.ID), services.ErrTodoNotFound)
}
