package services

import (
	"errors"
	"log"

	"tugas/internal/models"
	"tugas/internal/repositories"

	"github.com/google/uuid"
)

// ErrTodoNotFound is returned when a to-do does not exist.
var ErrTodoNotFound = errors.New("todo not found")

// ReminderPublisher publishes reminder-scheduled events for to-dos.
// Satisfied by *rabbitmq.Client.
type ReminderPublisher interface {
	PublishReminderScheduled(event map[string]interface{}) error
}

// TodoService handles business logic related to to-do items.
type TodoService struct {
	todoRepo  repositories.TodoRepository
	publisher ReminderPublisher // may be nil when messaging is disabled
}

// NewTodoService creates a new TodoService.
func NewTodoService(todoRepo repositories.TodoRepository, publisher ReminderPublisher) *TodoService {
	return &TodoService{
		todoRepo:  todoRepo,
		publisher: publisher,
	}
}

// GetTodosByUser retrieves all to-dos owned by a user, newest first.
func (s *TodoService) GetTodosByUser(userID string) ([]models.Todo, error) {
	return s.todoRepo.GetByUser(userID)
}

// GetTodoByID retrieves a single to-do by its ID.
func (s *TodoService) GetTodoByID(id string) (*models.Todo, error) {
	todo, err := s.todoRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}

// CreateTodo creates a new to-do and, when a reminder is set, publishes
// a reminder-scheduled event.
func (s *TodoService) CreateTodo(todo *models.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	if err := s.todoRepo.Create(todo); err != nil {
		return err
	}

	s.publishReminder(todo)
	return nil
}

// UpdateTodo applies a partial update to an existing to-do and returns
// the updated record. Remind is always written: an update that omits it
// clears the reminder, matching the mobile client's contract.
func (s *TodoService) UpdateTodo(id string, upd models.TodoUpdate) (*models.Todo, error) {
	todo, err := s.GetTodoByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		todo.Title = *upd.Title
	}
	if upd.Description != nil {
		todo.Description = *upd.Description
	}
	if upd.Completed != nil {
		todo.Completed = *upd.Completed
	}
	if upd.Date != nil {
		todo.Date = *upd.Date
	}
	if upd.Time != nil {
		todo.Time = *upd.Time
	}
	todo.Remind = upd.Remind

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, err
	}

	s.publishReminder(todo)
	return todo, nil
}

// DeleteTodo deletes a to-do by its ID.
func (s *TodoService) DeleteTodo(id string) error {
	if err := s.todoRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTodoNotFound
		}
		return err
	}
	return nil
}

// publishReminder emits a reminder-scheduled event when the to-do has a
// reminder and a publisher is configured. Publishing is best effort: a
// broker outage must not fail the write that already happened.
func (s *TodoService) publishReminder(todo *models.Todo) {
	if todo.Remind == nil || *todo.Remind == "" {
		return
	}
	if s.publisher == nil {
		log.Println("RabbitMQ client is not initialized. Skipping reminder publication.")
		return
	}

	event := map[string]interface{}{
		"todoID": todo.ID,
		"userID": todo.UserID,
		"title":  todo.Title,
		"date":   todo.Date,
		"time":   todo.Time,
		"remind": *todo.Remind,
	}
	if err := s.publisher.PublishReminderScheduled(event); err != nil {
		log.Printf("Warning: Failed to publish reminder event for todo %s: %v", todo.ID, err)
	} else {
		log.Printf("Successfully published reminder event for todo %s", todo.ID)
	}
}
