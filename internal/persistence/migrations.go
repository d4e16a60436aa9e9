package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// RunMigrations creates or updates the users and tickets tables.
func RunMigrations(ctx context.Context, db *Database, logger *zap.Logger) error {
	if db == nil || db.DB == nil {
		logger.Warn("no database available; skipping migrations")
		return nil
	}

	models := []any{&domain.User{}, &domain.Ticket{}}
	if err := db.DB.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logger.Info("migrations applied", zap.String("driver", db.Driver()), zap.Int("models", len(models)))
	return nil
}
