package user

import "context"

// Repository defines the interface for user data operations
type Repository interface {
	// Create creates a new user; a duplicate email yields a conflict error
	Create(ctx context.Context, user *User) error


	// GetByEmail retrieves a user by exact email, returning nil when absent
	GetByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks if a user exists by email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns all users ordered by creation
	List(ctx context.Context) ([]*User, error)

	// UpdatePasswordHash is a write: it replaces the stored credential for userID
	UpdatePasswordHash(ctx context.Context, userID uint, hash string) error
}
