package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sipas-org/sipas-api/internal/auth"
	"github.com/sipas-org/sipas-api/internal/catalog"
	"github.com/sipas-org/sipas-api/internal/config"
	"github.com/sipas-org/sipas-api/internal/crud"
	"github.com/sipas-org/sipas-api/internal/models"
	"github.com/sipas-org/sipas-api/internal/storage/postgres"
)

// UserCreator is the part of the users service the bootstrap needs.
type UserCreator interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, input map[string]any) (models.User, error)
}

// BootstrapAdmin creates the configured administrator when the users table
// is empty. It does nothing when no administrator is configured.
func BootstrapAdmin(ctx context.Context, cfg config.Config, store *postgres.Store) error {
	if !cfg.BootstrapAdmin() {
		return nil
	}
	users := crud.New[models.User](postgres.NewTable[models.User](store, catalog.Users), crud.WithPrepare(auth.PrepareUserRecord))
	return bootstrapAdmin(ctx, cfg, users)
}

func bootstrapAdmin(ctx context.Context, cfg config.Config, users UserCreator) error {
	n, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		slog.Debug("bootstrap admin skipped: users already exist", "count", n)
		return nil
	}
	admin, err := users.Create(ctx, map[string]any{
		"name":     cfg.BootstrapAdminName,
		"email":    cfg.BootstrapAdminEmail,
		"password": cfg.BootstrapAdminPassword,
		"isAdmin":  true,
		"active":   true,
	})
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	slog.Info("bootstrap admin created", "userId", admin.ID, "email", admin.Email)
	return nil
}
