package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/taskflow/client/kv"
	"github.com/example/taskflow/client/localauth"
	"github.com/example/taskflow/client/rest"
	"github.com/example/taskflow/client/session"
	"github.com/example/taskflow/client/taskstore"
	"github.com/example/taskflow/domain/user"
)

var errNotLoggedIn = errors.New("not logged in (run `taskflow login` first)")

// App wires the credential store, session store and task store together for
// one command invocation. The backend flag selects between the embedded
// Badger store and the TaskFlow REST API.
type App struct {
	store   *kv.Store
	session *session.Store
	tasks   taskstore.Store
}

func newApp() (*App, error) {
	store, err := kv.Open(flagDataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data dir %s: %w", flagDataDir, err)
	}

	app := &App{store: store}

	switch flagBackend {
	case "local":
		app.session = session.NewStore(localauth.NewBackend(store), store)
		app.tasks = taskstore.NewLocal(store)
	case "remote":
		api := rest.NewClient(flagAPIURL)
		app.session = session.NewStore(rest.NewAuth(api), store)
		app.tasks = taskstore.NewRemote(api)
	default:
		store.Close()
		return nil, fmt.Errorf("unknown backend %q (want local or remote)", flagBackend)
	}

	return app, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

// requireUser replays the persisted session and fails unless it yields an
// authenticated user.
func (a *App) requireUser(ctx context.Context) (user.User, error) {
	a.session.Restore(ctx)
	if a.session.State() != session.StateAuthenticated {
		return user.User{}, errNotLoggedIn
	}
	return a.session.User(), nil
}
