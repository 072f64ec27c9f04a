package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAILENDHRAB21/PriceBite/internal/domain"
	"github.com/SAILENDHRAB21/PriceBite/internal/store"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type record struct {
	user         domain.User
	passwordHash []byte
	createdAt    time.Time
}

// Service keeps the registered users in memory and mirrors the
// authenticated {email, name} to the store's user slot. Passwords are
// bcrypt-hashed; tokens come from the TokenManager.
type Service struct {
	mu      sync.RWMutex
	byEmail map[string]*record
	byID    map[string]*record
	tokens  *TokenManager
	store   store.Store
}

func NewService(tokens *TokenManager, st store.Store) *Service {
	return &Service{
		byEmail: make(map[string]*record),
		byID:    make(map[string]*record),
		tokens:  tokens,
		store:   st,
	}
}

// Register creates a new user and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, name, email, password string) (domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", err
	}

	s.mu.Lock()
	if _, exists := s.byEmail[email]; exists {
		s.mu.Unlock()
		return domain.User{}, "", ErrEmailTaken
	}

	rec := &record{
		user:         domain.User{ID: uuid.NewString(), Name: name, Email: email},
		passwordHash: hash,
		createdAt:    time.Now(),
	}
	s.byEmail[email] = rec
	s.byID[rec.user.ID] = rec
	s.mu.Unlock()

	token, err := s.tokens.Issue(rec.user.ID, rec.user.Email)
	if err != nil {
		return domain.User{}, "", err
	}

	s.persistUser(ctx, rec.user)
	return rec.user, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	s.mu.RLock()
	rec, ok := s.byEmail[email]
	s.mu.RUnlock()

	if !ok {
		return domain.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(rec.user.ID, rec.user.Email)
	if err != nil {
		return domain.User{}, "", err
	}

	s.persistUser(ctx, rec.user)
	return rec.user, token, nil
}

// Verify resolves a bearer token back to its user.
func (s *Service) Verify(tokenString string) (domain.User, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return domain.User{}, err
	}

	s.mu.RLock()
	rec, ok := s.byID[claims.UserID]
	s.mu.RUnlock()

	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return rec.user, nil
}

// Profile returns the user and registration time for the profile endpoint.
func (s *Service) Profile(userID string) (domain.User, time.Time, error) {
	s.mu.RLock()
	rec, ok := s.byID[userID]
	s.mu.RUnlock()

	if !ok {
		return domain.User{}, time.Time{}, ErrUserNotFound
	}
	return rec.user, rec.createdAt, nil
}

// persistUser mirrors the authenticated identity to the user slot.
// Non-fatal on failure.
func (s *Service) persistUser(ctx context.Context, u domain.User) {
	value := map[string]string{"email": u.Email, "name": u.Name}
	if err := s.store.Set(ctx, store.UserKey(u.ID), value); err != nil {
		log.Printf("user slot write error for user %s: %v", u.ID, err)
	}
}
