package seed

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"clientportal/internal/apperr"
	"clientportal/internal/config"
	"clientportal/internal/model"
	"clientportal/internal/repository"
	"clientportal/internal/util"
)

// Run creates the bootstrap accounts on first start: the configured admin
// and a test client. On an existing admin record it repairs the role set
// instead of recreating the user.
func Run(ctx context.Context, users *repository.UserRepository, cfg config.AdminConfig, logger *zap.Logger) error {
	if err := seedAdmin(ctx, users, cfg, logger); err != nil {
		return err
	}
	return seedTestClient(ctx, users, logger)
}

func seedAdmin(ctx context.Context, users *repository.UserRepository, cfg config.AdminConfig, logger *zap.Logger) error {
	admin, err := users.FindByUsername(ctx, cfg.Username)
	if errors.Is(err, apperr.ErrNotFound) {
		admin, err = users.FindByEmail(ctx, cfg.Email)
	}
	switch {
	case err == nil:
		if ensureRoles(admin, model.RoleAdmin, model.RoleUser) {
			if err := users.Save(ctx, admin); err != nil {
				return err
			}
			logger.Info("admin roles updated", zap.String("username", admin.Username))
		}
		return nil
	case errors.Is(err, apperr.ErrNotFound):
		hash, err := util.HashPassword(cfg.Password)
		if err != nil {
			return err
		}
		admin = &model.User{
			Username:     cfg.Username,
			Email:        cfg.Email,
			PasswordHash: hash,
			FullName:     "System Admin",
			CompanyName:  "NAVAM",
			Roles:        []model.Role{model.RoleAdmin, model.RoleUser},
		}
		if err := users.Create(ctx, admin); err != nil {
			return err
		}
		logger.Info("default admin user created", zap.String("username", cfg.Username))
		return nil
	default:
		return err
	}
}

func seedTestClient(ctx context.Context, users *repository.UserRepository, logger *zap.Logger) error {
	exists, err := users.ExistsByUsername(ctx, "testclient")
	if err != nil || exists {
		return err
	}

	hash, err := util.HashPassword("password")
	if err != nil {
		return err
	}
	client := &model.User{
		Username:     "testclient",
		Email:        "client@test.com",
		PasswordHash: hash,
		FullName:     "Test Client",
		CompanyName:  "Test Corp",
		Roles:        []model.Role{model.RoleClient},
	}
	if err := users.Create(ctx, client); err != nil {
		return err
	}
	logger.Info("test client created")
	return nil
}

// ensureRoles adds any missing roles and reports whether the set changed.
func ensureRoles(u *model.User, roles ...model.Role) bool {
	changed := false
	for _, role := range roles {
		if !u.HasRole(role) {
			u.Roles = append(u.Roles, role)
			changed = true
		}
	}
	return changed
}
