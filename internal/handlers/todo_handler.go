package handlers

import (
	"errors"
	"log"

	"tugas/internal/middleware"
	"tugas/internal/models"
	"tugas/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TodoHandler handles HTTP requests for to-do items.
type TodoHandler struct {
	service  *services.TodoService
	validate *validator.Validate
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(service *services.TodoService) *TodoHandler {
	return &TodoHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the to-do routes with the Fiber app. The
// route shapes match the mobile client: list by user, item by ID.
func (h *TodoHandler) RegisterRoutes(router fiber.Router) {
	todoRoutes := router.Group("/todo")
	todoRoutes.Get("/item/:id", h.HandleGetTodoByID)
	todoRoutes.Get("/:userId", h.HandleGetTodos)
	todoRoutes.Post("/", h.HandleCreateTodo)
	todoRoutes.Put("/:id", h.HandleUpdateTodo)
	todoRoutes.Delete("/:id", h.HandleDeleteTodo)
}

// ownedTodo loads a to-do and checks it belongs to the authenticated
// user. On rejection it writes the response itself and returns a nil
// todo; callers must check the todo, not the error, which only reports
// a failed response write.
func (h *TodoHandler) ownedTodo(c *fiber.Ctx, id string) (*models.Todo, error) {
	todo, err := h.service.GetTodoByID(id)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Todo not found",
			})
		}
		log.Printf("Error loading todo %s: %v", id, err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve todo",
		})
	}
	if todo.UserID != middleware.UserID(c) {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden",
		})
	}
	return todo, nil
}

// HandleGetTodos lists the authenticated user's to-dos, newest first.
func (h *TodoHandler) HandleGetTodos(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID != middleware.UserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden",
		})
	}

	todos, err := h.service.GetTodosByUser(userID)
	if err != nil {
		log.Printf("Error listing todos for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve todos",
		})
	}
	return c.JSON(todos)
}

// HandleGetTodoByID retrieves a single to-do.
func (h *TodoHandler) HandleGetTodoByID(c *fiber.Ctx) error {
	todo, err := h.ownedTodo(c, c.Params("id"))
	if todo == nil {
		return err
	}
	return c.JSON(todo)
}

// HandleCreateTodo creates a new to-do for the authenticated user.
func (h *TodoHandler) HandleCreateTodo(c *fiber.Ctx) error {
	var todo models.Todo
	if err := c.BodyParser(&todo); err != nil {
		log.Printf("Error parsing create todo request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Ownership comes from the token. A body that names someone else's
	// userId is rejected rather than silently rewritten.
	authUserID := middleware.UserID(c)
	if todo.UserID != "" && todo.UserID != authUserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden",
		})
	}
	todo.UserID = authUserID

	if err := h.validate.Struct(todo); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.CreateTodo(&todo); err != nil {
		log.Printf("Error creating todo: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create todo",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(todo)
}

// HandleUpdateTodo applies a partial update to a to-do.
func (h *TodoHandler) HandleUpdateTodo(c *fiber.Ctx) error {
	todo, err := h.ownedTodo(c, c.Params("id"))
	if todo == nil {
		return err
	}

	var upd models.TodoUpdate
	if err := c.BodyParser(&upd); err != nil {
		log.Printf("Error parsing update todo request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updated, err := h.service.UpdateTodo(todo.ID, upd)
	if err != nil {
		log.Printf("Error updating todo %s: %v", todo.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update todo",
		})
	}
	return c.JSON(updated)
}

// HandleDeleteTodo deletes a to-do.
func (h *TodoHandler) HandleDeleteTodo(c *fiber.Ctx) error {
	todo, err := h.ownedTodo(c, c.Params("id"))
	if todo == nil {
		return err
	}

	if err := h.service.DeleteTodo(todo.ID); err != nil {
		log.Printf("Error deleting todo %s: %v", todo.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete todo",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Todo deleted",
	})
}
