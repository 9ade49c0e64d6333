package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/taskflow/modules/api"
	"github.com/example/taskflow/modules/auth"
	"github.com/example/taskflow/modules/notification"
	"github.com/example/taskflow/modules/task"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== TaskFlow Server ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())         // Independent module (provides auth services)
	app.Register(task.NewModule())         // Independent module (provides task services)
	app.Register(notification.NewModule()) // Consumes task events
	app.Register(api.NewModule())          // Depends on auth and task modules

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:5000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/auth/register  - Register a new user")
	log.Println("  POST   /api/auth/login     - Login and get a token")
	log.Println("  GET    /health             - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/auth/me        - Get current user")
	log.Println("  GET    /api/todos          - List tasks")
	log.Println("  POST   /api/todos          - Create a task")
	log.Println("  PATCH  /api/todos/:id      - Rename or complete a task")
	log.Println("  DELETE /api/todos/:id      - Delete a task")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
