package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	domain "github.com/example/taskflow/domain/user"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "invalid credentials",
			err:            errors.New("service call failed: invalid email or password"),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid email or password",
		},
		{
			name:           "duplicate email",
			err:            errors.New("service call failed: user with this email already exists"),
			expectedStatus: http.StatusConflict,
			expectedBody:   "already exists",
		},
		{
			name:           "task not found",
			err:            errors.New("service call failed: task not found"),
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Task not found",
		},
		{
			name:           "validation failure surfaces the reason",
			err:            errors.New("service call failed: invalid gmail address"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid gmail address",
		},
		{
			name:           "password rule surfaces the reason",
			err:            errors.New("service call failed: password must contain a digit"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "password must contain a digit",
		},
		{
			name:           "unknown errors stay opaque",
			err:            errors.New("database connection lost"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "An internal error occurred",
		},
	}

	h := &Handlers{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/test", func(c *fiber.Ctx) error {
				return h.handleServiceError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/test", nil), -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("body = %v, want to contain %v", string(body), tt.expectedBody)
			}
		})
	}
}

func TestFirstServiceMessage(t *testing.T) {
	tests := []struct {
		name   string
		errStr string
		want   string
	}{
		{
			name:   "wrapped once",
			errStr: "service call failed: invalid email format",
			want:   "invalid email format",
		},
		{
			name:   "wrapped twice",
			errStr: "request failed: handler: password must contain a digit",
			want:   "password must contain a digit",
		},
		{
			name:   "no wrapping",
			errStr: "name is required",
			want:   "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstServiceMessage(tt.errStr); got != tt.want {
				t.Errorf("firstServiceMessage(%q) = %q, want %q", tt.errStr, got, tt.want)
			}
		})
	}
}

func TestMeHandler(t *testing.T) {
	mockAuth := &mockAuthPort{
		validateTokenFunc: func(_ context.Context, _ string) (*domain.Claims, error) {
			return &domain.Claims{UserID: "user-123", Email: "alice@example.com"}, nil
		},
		getUserFunc: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "user-123" {
				return nil, errors.New("user not found")
			}
			return &domain.User{
				ID:    "user-123",
				Email: "alice@example.com",
				Name:  "Alice",
			}, nil
		},
	}
	h := &Handlers{authAdapter: mockAuth}

	app := fiber.New()
	app.Use(AuthMiddleware(mockAuth))
	app.Get("/api/auth/me", h.Me)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}

	var body meResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.User.ID != "user-123" {
		t.Errorf("user.ID = %q, want %q", body.User.ID, "user-123")
	}
	if body.User.Name != "Alice" {
		t.Errorf("user.Name = %q, want %q", body.User.Name, "Alice")
	}
}

func TestMeHandlerWithoutToken(t *testing.T) {
	h := &Handlers{authAdapter: &mockAuthPort{}}

	app := fiber.New()
	app.Use(AuthMiddleware(&mockAuthPort{}))
	app.Get("/api/auth/me", h.Me)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/auth/me", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusUnauthorized)
	}
}
