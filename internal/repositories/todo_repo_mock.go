package repositories

import (
	"fmt"
	"sort"
	"sync"
	"tugas/internal/models"

	"github.com/google/uuid"
)

// MockTodoRepository is an in-memory implementation of TodoRepository.
type MockTodoRepository struct {
	todos map[string]models.Todo
	mu    sync.RWMutex
}

// NewMockTodoRepository creates a new instance of MockTodoRepository.
func NewMockTodoRepository() *MockTodoRepository {
	return &MockTodoRepository{
		todos: make(map[string]models.Todo),
	}
}

// GetByUser returns all to-dos for a user, newest first. Insertion order
// stands in for CreatedAt, which the in-memory store does not populate
// with distinct timestamps.
func (r *MockTodoRepository) GetByUser(userID string) ([]models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todoList := make([]models.Todo, 0)
	for _, t := range r.todos {
		if t.UserID == userID {
			todoList = append(todoList, t)
		}
	}
	sort.Slice(todoList, func(i, j int) bool {
		if !todoList[i].CreatedAt.Equal(todoList[j].CreatedAt) {
			return todoList[i].CreatedAt.After(todoList[j].CreatedAt)
		}
		return todoList[i].ID > todoList[j].ID
	})
	return todoList, nil
}

// GetByID returns a to-do by its ID.
func (r *MockTodoRepository) GetByID(id string) (*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todo, ok := r.todos[id]
	if !ok {
		return nil, fmt.Errorf("todo with ID %s: %w", id, ErrNotFound)
	}
	return &todo, nil
}

// Create adds a new to-do.
func (r *MockTodoRepository) Create(todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	r.todos[todo.ID] = *todo
	return nil
}

// Update modifies an existing to-do.
func (r *MockTodoRepository) Update(todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.todos[todo.ID]
	if !ok {
		return fmt.Errorf("todo with ID %s: %w", todo.ID, ErrNotFound)
	}
	r.todos[todo.ID] = *todo
	return nil
}

// Delete removes a to-do by its ID.
func (r *MockTodoRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.todos[id]
	if !ok {
		return fmt.Errorf("todo with ID %s: %w", id, ErrNotFound)
	}
	delete(r.todos, id)
	return nil
}

// DeleteByUser removes all to-dos owned by a user.
func (r *MockTodoRepository) DeleteByUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.todos {
		if t.UserID == userID {
			delete(r.todos, id)
		}
	}
	return nil
}
