package repository

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"clarity/internal/errors"
	"clarity/internal/model"
	"clarity/internal/store"
)

// seed account kept for the demo environment
const (
	seedUserName     = "Nikhil"
	seedUserEmail    = "Nikhil31@gmail.com"
	seedUserPassword = "QOG1"
)

// usersDoc is the users.json document shape.
type usersDoc struct {
	Users map[string]model.User `json:"users"`
}

func emptyUsersDoc() usersDoc {
	return usersDoc{Users: map[string]model.User{}}
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, name, email, password string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	EnsureSeedUser(ctx context.Context) error
}

type userRepository struct {
	store *store.Store
	path  string
}

// NewUserRepository builds a users.json-backed repository.
func NewUserRepository(s *store.Store, path string) UserRepository {
	return &userRepository{store: s, path: path}
}

// Create registers a user. The duplicate-email check runs inside the store
// update, so concurrent signups for the same email cannot both succeed.
func (r *userRepository) Create(ctx context.Context, name, email, password string) (*model.User, error) {
	now := model.NowISO()
	user := model.User{
		ID:        "user-" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := store.Update(r.store, r.path, emptyUsersDoc(), func(doc usersDoc) (usersDoc, error) {
		if doc.Users == nil {
			doc.Users = map[string]model.User{}
		}
		if findByEmail(doc, email) != nil {
			return doc, errors.ErrEmailTaken
		}
		doc.Users[user.ID] = user
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, errors.ErrUserNotFound
	}
	doc := store.Read(r.store, r.path, emptyUsersDoc())
	if user, ok := doc.Users[id]; ok {
		return &user, nil
	}
	return nil, errors.ErrUserNotFound
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	doc := store.Read(r.store, r.path, emptyUsersDoc())
	if user := findByEmail(doc, email); user != nil {
		return user, nil
	}
	return nil, errors.ErrUserNotFound
}

// EnsureSeedUser inserts the demo account unless its email is already taken.
func (r *userRepository) EnsureSeedUser(ctx context.Context) error {
	if _, err := r.FindByEmail(ctx, seedUserEmail); err == nil {
		return nil
	}
	if _, err := r.Create(ctx, seedUserName, seedUserEmail, seedUserPassword); err != nil {
		if err == errors.ErrEmailTaken {
			return nil
		}
		return err
	}
	log.Printf("seeded demo user %s", seedUserEmail)
	return nil
}

// findByEmail matches case-insensitively: emails are unique regardless of case.
func findByEmail(doc usersDoc, email string) *model.User {
	lowered := strings.ToLower(strings.TrimSpace(email))
	if lowered == "" {
		return nil
	}
	for _, user := range doc.Users {
		if strings.ToLower(user.Email) == lowered {
			u := user
			return &u
		}
	}
	return nil
}
