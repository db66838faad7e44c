package database

import (
	"context"
)

// Database defines the methods for database operations.
type Database interface {
	// Close closes the database connection.
	Close() error

	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error

	// Transaction runs fn inside a database transaction. The transaction is
	// carried in the context and picked up by every method called with it.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	// CreateUser creates a new user account.
	CreateUser(ctx context.Context, user *User) error

	// GetUser gets a user by id.
	GetUser(ctx context.Context, id uint) (*User, error)

	// GetUserByUsername gets a user by exact username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// GetUserByEmail gets a user by email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// ListUsers lists all user accounts.
	ListUsers(ctx context.Context) ([]*User, error)

	// CountUsers counts all user accounts.
	CountUsers(ctx context.Context) (int64, error)

	// UpdateUser persists changes to an existing user.
	UpdateUser(ctx context.Context, user *User) error

	// DeleteUser removes a user by id.
	DeleteUser(ctx context.Context, id uint) error

	// CreateTPE creates a new terminal record.
	CreateTPE(ctx context.Context, tpe *TPE) error

	// GetTPE gets a terminal record by id.
	GetTPE(ctx context.Context, id uint) (*TPE, error)

	// GetTPEByShopID gets a terminal record by its shop identifier.
	GetTPEByShopID(ctx context.Context, shopID string) (*TPE, error)

	// ListTPEs returns one page of terminal records matching the filter,
	// plus the total match count before pagination.
	ListTPEs(ctx context.Context, filter TPEFilter, page, pageSize int) ([]*TPE, int64, error)

	// ListAllTPEs returns every terminal record in the default list order.
	ListAllTPEs(ctx context.Context) ([]*TPE, error)

	// UpdateTPE persists changes to an existing terminal record.
	UpdateTPE(ctx context.Context, tpe *TPE) error

	// DeleteTPE removes a terminal record by id.
	DeleteTPE(ctx context.Context, id uint) error

	// GetTPEStats computes the dashboard summary counts from a single
	// transactional snapshot.
	GetTPEStats(ctx context.Context) (*TPEStats, error)
}
