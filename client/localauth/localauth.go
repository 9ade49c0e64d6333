// Package localauth implements the session AuthBackend against the
// on-device store, so the local task store variant works fully offline.
// Accounts and their bcrypt hashes live in the key-value store; tokens are
// opaque random strings. Logout only drops the client's copy of the token;
// the backend session entry stays until the data directory is removed.
package localauth

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/taskflow/client/kv"
	"github.com/example/taskflow/client/session"
	"github.com/example/taskflow/domain/user"
)

// Sentinel errors for local authentication.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

const bcryptCost = 12

const tokenChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
const tokenLength = 32

// account is the stored shape of a local user, hash included.
type account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"passwordHash"`
}

// Backend stores accounts and sessions in the on-device key-value store.
type Backend struct {
	store *kv.Store
}

var _ session.AuthBackend = (*Backend)(nil)

// NewBackend creates a local auth backend on top of the given store.
func NewBackend(store *kv.Store) *Backend {
	return &Backend{store: store}
}

// Login checks the password against the stored hash and issues a token.
func (b *Backend) Login(_ context.Context, email, password string) (user.User, string, error) {
	accounts, err := b.loadAccounts()
	if err != nil {
		return user.User{}, "", err
	}

	acct, found := accounts[normalizeEmail(email)]
	if !found {
		return user.User{}, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := b.issueToken(acct.ID)
	if err != nil {
		return user.User{}, "", err
	}
	return toUser(acct), token, nil
}

// Register creates a new account and issues a token for it.
func (b *Backend) Register(_ context.Context, email, password, name string) (user.User, string, error) {
	accounts, err := b.loadAccounts()
	if err != nil {
		return user.User{}, "", err
	}

	key := normalizeEmail(email)
	if _, exists := accounts[key]; exists {
		return user.User{}, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return user.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	acct := account{
		ID:           uuid.New().String(),
		Email:        key,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	accounts[key] = acct
	if err := b.saveAccounts(accounts); err != nil {
		return user.User{}, "", err
	}

	token, err := b.issueToken(acct.ID)
	if err != nil {
		return user.User{}, "", err
	}
	return toUser(acct), token, nil
}

// Validate resolves a token back to its user.
func (b *Backend) Validate(_ context.Context, token string) (user.User, error) {
	sessions, err := b.loadSessions()
	if err != nil {
		return user.User{}, err
	}
	userID, found := sessions[token]
	if !found {
		return user.User{}, ErrInvalidToken
	}

	accounts, err := b.loadAccounts()
	if err != nil {
		return user.User{}, err
	}
	for _, acct := range accounts {
		if acct.ID == userID {
			return toUser(acct), nil
		}
	}
	return user.User{}, ErrInvalidToken
}

func (b *Backend) issueToken(userID string) (string, error) {
	token, err := generateToken(tokenLength)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	sessions, err := b.loadSessions()
	if err != nil {
		return "", err
	}
	sessions[token] = userID
	if err := b.saveSessions(sessions); err != nil {
		return "", err
	}
	return token, nil
}

func (b *Backend) loadAccounts() (map[string]account, error) {
	accounts := make(map[string]account)
	raw, found, err := b.store.Get(kv.KeyLocalUsers)
	if err != nil {
		return nil, err
	}
	if found {
		if err := json.Unmarshal(raw, &accounts); err != nil {
			return nil, fmt.Errorf("decode accounts: %w", err)
		}
	}
	return accounts, nil
}

func (b *Backend) saveAccounts(accounts map[string]account) error {
	raw, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	return b.store.Set(kv.KeyLocalUsers, raw)
}

func (b *Backend) loadSessions() (map[string]string, error) {
	sessions := make(map[string]string)
	raw, found, err := b.store.Get(kv.KeySessions)
	if err != nil {
		return nil, err
	}
	if found {
		if err := json.Unmarshal(raw, &sessions); err != nil {
			return nil, fmt.Errorf("decode sessions: %w", err)
		}
	}
	return sessions, nil
}

func (b *Backend) saveSessions(sessions map[string]string) error {
	raw, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	return b.store.Set(kv.KeySessions, raw)
}

func generateToken(length int) (string, error) {
	max := big.NewInt(int64(len(tokenChars)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = tokenChars[n.Int64()]
	}
	return string(out), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUser(acct account) user.User {
	return user.User{
		ID:    acct.ID,
		Email: acct.Email,
		Name:  acct.Name,
	}
}
