package memstore

import (
	"context"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
)

func (s *Store) GetAllUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.list(), nil
}

func (s *Store) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users.rows[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users.rows {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// checkUnique must be called with s.mu held. self is skipped so a user can
// keep their own username and email on update.
func (s *Store) checkUnique(self uint, username, email string) error {
	for id, u := range s.users.rows {
		if id == self {
			continue
		}
		if u.Username == username {
			return store.ErrUsernameTaken
		}
		if u.Email == email {
			return store.ErrEmailTaken
		}
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUnique(0, user.Username, user.Email); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	created := s.users.insert(user, func(u *models.User, id uint) { u.ID = id })
	return &created, nil
}

func (s *Store) UpdateUser(ctx context.Context, id uint, update models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users.rows[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if err := s.checkUnique(id, user.Username, user.Email); err != nil {
		return nil, err
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.Active != nil {
		user.Active = *update.Active
	}
	user.UpdatedAt = s.clock.Now()
	s.users.rows[id] = user
	return &user, nil
}

func (s *Store) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users.rows[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	delete(s.users.rows, id)
	return &user, nil
}
