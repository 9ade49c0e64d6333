package api

import "time"

// userResponse is the wire shape of a user.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// authResponse is returned by register and login.
type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// meResponse is returned by GET /auth/me.
type meResponse struct {
	User userResponse `json:"user"`
}

// todoResponse is the wire shape of a task: id maps to _id, name to title,
// status to the completed flag, and the owner id to user.
type todoResponse struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	User      string    `json:"user"`
}

// registerRequest is the body of POST /auth/register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// createTodoRequest is the body of POST /todos.
type createTodoRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// patchTodoRequest is the body of PATCH /todos/:id. Absent fields are left
// unchanged.
type patchTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// ErrorResponse is the error payload for all non-2xx responses. Message is
// the user-facing text clients display.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
