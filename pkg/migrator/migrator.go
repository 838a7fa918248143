package migrator

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Up накатывает все миграции из каталога sourcePath (например "file://migrations")
// Отсутствие новых миграций ошибкой не считается
func Up(sourcePath, databaseURL string) error {
	m, err := migrate.New(sourcePath, databaseURL)
	if err != nil {
		return fmt.Errorf("migrator: init: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrator: up: %w", err)
	}
	return nil
}

// Down откатывает steps последних миграций
func Down(sourcePath, databaseURL string, steps int) error {
	m, err := migrate.New(sourcePath, databaseURL)
	if err != nil {
		return fmt.Errorf("migrator: init: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrator: down: %w", err)
	}
	return nil
}

// Version текущая версия схемы
func Version(sourcePath, databaseURL string) (uint, bool, error) {
	m, err := migrate.New(sourcePath, databaseURL)
	if err != nil {
		return 0, false, fmt.Errorf("migrator: init: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}
