package auth

import (
	"context"

	"inventory/internal/core/id"
	"inventory/internal/domain"
)

// UserRepository defines user storage operations.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves user by ID.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByEmail retrieves user by normalized email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Exists checks if email is already registered.
	Exists(ctx context.Context, email string) (bool, error)

	// Update writes columns of user and reloads it from the stored row.
	Update(ctx context.Context, user *User, columns []string) error

	// Delete removes a user; false when it did not exist.
	Delete(ctx context.Context, userID id.ID) (bool, error)

	// List retrieves users with filtering.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*User], error)
}

// WelcomeNotifier sends the post-registration greeting.
type WelcomeNotifier interface {
	SendWelcome(ctx context.Context, email, name string) error
}
