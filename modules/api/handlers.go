package api

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	domain "github.com/example/taskflow/domain/user"
	"github.com/example/taskflow/modules/auth"
	"github.com/example/taskflow/modules/task"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	taskContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, taskContainer mono.ServiceContainer, authAdapter auth.AuthPort) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		taskContainer: taskContainer,
		authAdapter:   authAdapter,
	}
}

// Register handles POST /api/auth/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return badRequest(c, "Email, password and name are required")
	}

	authReq := auth.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}
	var resp auth.RegisterResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"register",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse{
		User:  toUserResponse(resp.User),
		Token: resp.Token,
	})
}

// Login handles POST /api/auth/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	authReq := auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(authResponse{
		User:  toUserResponse(resp.User),
		Token: resp.Token,
	})
}

// Me handles GET /api/auth/me. The middleware has already validated the
// token; this refreshes the user record behind it.
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	user, err := h.authAdapter.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve user",
		})
	}

	return c.Status(fiber.StatusOK).JSON(meResponse{
		User: userResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	})
}

// ListTodos handles GET /api/todos.
func (h *Handlers) ListTodos(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	taskReq := task.ListTasksRequest{OwnerID: claims.UserID}
	var resp task.ListTasksResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		"list-tasks",
		json.Marshal,
		json.Unmarshal,
		&taskReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	todos := make([]todoResponse, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		todos = append(todos, toTodoResponse(t))
	}

	return c.Status(fiber.StatusOK).JSON(todos)
}

// CreateTodo handles POST /api/todos.
func (h *Handlers) CreateTodo(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req createTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	taskReq := task.CreateTaskRequest{
		OwnerID:   claims.UserID,
		Name:      req.Title,
		Completed: req.Completed,
	}
	var resp task.TaskPayload

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		"create-task",
		json.Marshal,
		json.Unmarshal,
		&taskReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTodoResponse(resp))
}

// PatchTodo handles PATCH /api/todos/:id.
func (h *Handlers) PatchTodo(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req patchTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	taskReq := task.UpdateTaskRequest{
		OwnerID:   claims.UserID,
		TaskID:    c.Params("id"),
		Name:      req.Title,
		Completed: req.Completed,
	}
	var resp task.TaskPayload

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		"update-task",
		json.Marshal,
		json.Unmarshal,
		&taskReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTodoResponse(resp))
}

// DeleteTodo handles DELETE /api/todos/:id.
func (h *Handlers) DeleteTodo(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	taskReq := task.DeleteTaskRequest{
		OwnerID: claims.UserID,
		TaskID:  c.Params("id"),
	}
	var resp task.DeleteTaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		"delete-task",
		json.Marshal,
		json.Unmarshal,
		&taskReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Todo deleted"})
}

// handleServiceError maps errors coming back over the service container to
// HTTP responses. Errors cross the container as strings, so known messages
// are matched textually; anything unrecognized is a 500.
func (h *Handlers) handleServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid email or password"):
		return unauthorized(c, "Invalid email or password")
	case strings.Contains(errStr, "already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email already exists",
		})
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	case strings.Contains(errStr, "invalid email format"),
		strings.Contains(errStr, "invalid gmail address"),
		strings.Contains(errStr, "password must"),
		strings.Contains(errStr, "password is required"),
		strings.Contains(errStr, "name must"),
		strings.Contains(errStr, "name may"),
		strings.Contains(errStr, "is required"):
		return badRequest(c, firstServiceMessage(errStr))
	default:
		// Log the actual error but don't expose it to the client.
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// firstServiceMessage strips the wrapping the service container adds so the
// client sees only the validation reason.
func firstServiceMessage(errStr string) string {
	if idx := strings.LastIndex(errStr, ": "); idx >= 0 {
		return errStr[idx+2:]
	}
	return errStr
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

func toUserResponse(u auth.UserPayload) userResponse {
	return userResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

func toTodoResponse(t task.TaskPayload) todoResponse {
	return todoResponse{
		ID:        t.ID,
		Title:     t.Name,
		Completed: t.Status == "complete",
		CreatedAt: t.CreatedAt,
		User:      t.OwnerID,
	}
}
