package repositories

import "tugas/internal/models"

// TodoRepository defines the interface for to-do data access.
type TodoRepository interface {
	GetByUser(userID string) ([]models.Todo, error)
	GetByID(id string) (*models.Todo, error)
	Create(todo *models.Todo) error
	Update(todo *models.Todo) error
	Delete(id string) error
	DeleteByUser(userID string) error
}
