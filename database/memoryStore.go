package database

import (
	"context"
	"sync"

	"golang-exercisetracker/models"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps users and exercises in process, in insertion order. It is
// used with STORE=memory and by tests.
type MemoryStore struct {
	mu        sync.RWMutex
	users     []models.User
	exercises []models.Exercise
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append(s.users, *user)
	return nil
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, len(s.users))
	copy(users, s.users)
	return users, nil
}

func (s *MemoryStore) FindUser(_ context.Context, userID string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.UserID == userID {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) AddExercise(_ context.Context, exercise *models.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.exercises = append(s.exercises, *exercise)
	return nil
}

func (s *MemoryStore) FindExercises(_ context.Context, userID string, filter models.LogFilter) ([]models.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var owned []models.Exercise
	for _, e := range s.exercises {
		if e.UserID == userID {
			owned = append(owned, e)
		}
	}
	return filter.Apply(owned), nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close(context.Context) error {
	return nil
}
