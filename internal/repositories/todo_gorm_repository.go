package repositories

import (
	"errors"
	"fmt"
	"tugas/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTodoRepository is a GORM implementation of TodoRepository.
type GORMTodoRepository struct {
	db *gorm.DB
}

// NewGORMTodoRepository creates a new instance of GORMTodoRepository.
func NewGORMTodoRepository(db *gorm.DB) *GORMTodoRepository {
	return &GORMTodoRepository{
		db: db,
	}
}

// GetByUser returns all to-dos owned by a user, newest first.
func (r *GORMTodoRepository) GetByUser(userID string) ([]models.Todo, error) {
	var todos []models.Todo
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("failed to list todos for user %s: %w", userID, err)
	}
	return todos, nil
}

// GetByID retrieves a single to-do by its ID.
func (r *GORMTodoRepository) GetByID(id string) (*models.Todo, error) {
	var todo models.Todo
	if err := r.db.First(&todo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("todo with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get todo by ID %s: %w", id, err)
	}
	return &todo, nil
}

// Create inserts a new to-do.
func (r *GORMTodoRepository) Create(todo *models.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	if err := r.db.Create(todo).Error; err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

// Update saves the full to-do record. Save writes every column, so a
// nil Remind clears the stored reminder.
func (r *GORMTodoRepository) Update(todo *models.Todo) error {
	if err := r.db.Save(todo).Error; err != nil {
		return fmt.Errorf("failed to update todo %s: %w", todo.ID, err)
	}
	return nil
}

// Delete removes a to-do by its ID.
func (r *GORMTodoRepository) Delete(id string) error {
	res := r.db.Unscoped().Delete(&models.Todo{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete todo %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("todo with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteByUser removes every to-do owned by a user. Used by account
// deletion to keep referential integrity before the user row goes away.
func (r *GORMTodoRepository) DeleteByUser(userID string) error {
	if err := r.db.Unscoped().Delete(&models.Todo{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete todos for user %s: %w", userID, err)
	}
	return nil
}
