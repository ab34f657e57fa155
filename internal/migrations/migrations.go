// Package migrations применяет схему журнала прогонов через golang-migrate.
package migrations

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"pageObject/internal/config"
	"pageObject/internal/database"
	"pageObject/internal/logger"
)

// Run накатывает все миграции из cfg.Migrations.Path.
func Run(cfg *config.Cfg, log *logger.Zap) error {
	m, err := migrate.New(cfg.Migrations.Path, database.URL(cfg.Database))
	if err != nil {
		return fmt.Errorf("инициализация миграций: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn("Ошибка закрытия миграций", zap.NamedError("source", srcErr), zap.NamedError("db", dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Миграции не требуются")
			return nil
		}
		return fmt.Errorf("применение миграций: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info("Миграции применены", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
