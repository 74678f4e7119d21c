// Package repository is the persistence gateway: table-scoped reads and
// writes over gorm, schema migration and startup seeding.
// File: repository/database.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catering-admin/config"
	"catering-admin/logger"
	"catering-admin/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// ------------------- connection -------------------

// Open connects to the configured database and checks it is reachable.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(logger.Warn, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info.Printf("[repository.Open] Connected to %s database", cfg.Driver)
	return db, nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// ------------------- schema -------------------

// Migrate creates or updates every table, both schema generations included.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Review{},
		&models.Inquiry{},
		&models.LegacyContact{},
		&models.MenuItem{},
		&models.LegacyMenuItem{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// MigrateLegacyMenu copies first-generation menu rows into menu_items and
// removes them from the legacy table. Rows already present are left alone,
// so a crashed run can simply be repeated.
func MigrateLegacyMenu(ctx context.Context, db *gorm.DB) (int, error) {
	var legacy []models.LegacyMenuItem
	if err := db.WithContext(ctx).Find(&legacy).Error; err != nil {
		return 0, fmt.Errorf("read legacy menu: %w", err)
	}
	if len(legacy) == 0 {
		return 0, nil
	}

	items := make([]models.MenuItem, 0, len(legacy))
	ids := make([]string, 0, len(legacy))
	for _, l := range legacy {
		items = append(items, l.Normalize())
		ids = append(ids, l.ID)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&items).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.LegacyMenuItem{}).Error
	})
	if err != nil {
		return 0, fmt.Errorf("migrate legacy menu: %w", err)
	}

	logger.Info.Printf("[repository.MigrateLegacyMenu] Migrated %d legacy menu items", len(items))
	return len(items), nil
}

// ------------------- seeding -------------------

// SeedAdmin creates the configured admin when the admin table is empty.
// Without a configured password a random one is generated and logged once.
func SeedAdmin(ctx context.Context, db *gorm.DB, seed config.SeedConfig) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if seed.AdminEmail == "" {
		return false, errors.New("admin table is empty and SEED_ADMIN_EMAIL is not set")
	}

	password := seed.AdminPassword
	generated := password == ""
	if generated {
		password = uuid.NewString()
	}

	admin := &models.Admin{Username: seed.AdminUsername, Email: seed.AdminEmail}
	if admin.Username == "" {
		admin.Username = "admin"
	}
	if err := admin.SetPassword(password); err != nil {
		return false, fmt.Errorf("hash seed password: %w", err)
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return false, fmt.Errorf("create seed admin: %w", err)
	}

	if generated {
		logger.Warn.Printf("[repository.SeedAdmin] Created admin %s with generated password %s; change it after first login", admin.Email, password)
	} else {
		logger.Info.Printf("[repository.SeedAdmin] Created admin %s", admin.Email)
	}
	return true, nil
}
