package repositories

import (
	"context"
)

// Repository aggregates the per-entity repositories behind one handle so
// services depend on a single interface and transactions can span entities.
type Repository interface {
	Quiz() QuizRepository
	Course() CourseRepository
	Progress() ProgressRepository
	User() UserRepository
	Dashboard() DashboardRepository

	// WithTransaction runs fn against a Repository bound to one database
	// transaction. Returning an error rolls everything back.
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns the repository lifecycle: connect, serve, shut down.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
