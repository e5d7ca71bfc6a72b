package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskboard-backend/pkg/config"
)

// Manager owns the pooled database connection. It is constructed once at
// startup and handed to every service; there is no package-level singleton.
type Manager struct {
	db  *gorm.DB
	log *logrus.Logger
}

// PoolStatus is a snapshot of the connection pool counters.
type PoolStatus struct {
	Open    int `json:"open"`
	InUse   int `json:"in_use"`
	Idle    int `json:"idle"`
	MaxOpen int `json:"max_open"`
}

// New opens the store described by cfg and configures the pool: bounded
// open/idle connections, connection recycling after a fixed age, and a
// construction-time ping. A bad configuration or unreachable store is
// returned as an error; callers treat it as fatal.
func New(cfg *config.DatabaseConfig, log *logrus.Logger) (*Manager, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Manager{db: db, log: log}, nil
}

// DB returns the shared handle. Repositories derive their own scoped
// sessions or transactions from it.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Session returns a fresh unit-of-work handle with its own statement state.
func (m *Manager) Session() *gorm.DB {
	return m.db.Session(&gorm.Session{})
}

// Transaction runs fn inside one unit of work. fn returning an error rolls
// the whole unit back.
func (m *Manager) Transaction(fn func(tx *gorm.DB) error) error {
	return m.db.Transaction(fn)
}

// CreateTables provisions the schema for the given models.
func (m *Manager) CreateTables(models ...interface{}) error {
	return m.db.AutoMigrate(models...)
}

// DropTables removes the tables behind the given models.
func (m *Manager) DropTables(models ...interface{}) error {
	return m.db.Migrator().DropTable(models...)
}

// TestConnection probes the store. It reports false instead of returning an
// error so callers can degrade gracefully.
func (m *Manager) TestConnection() bool {
	sqlDB, err := m.db.DB()
	if err != nil {
		return false
	}
	if err := sqlDB.Ping(); err != nil {
		if m.log != nil {
			m.log.WithError(err).Warn("database probe failed")
		}
		return false
	}
	return true
}

// PoolStatus reports current pool counters.
func (m *Manager) PoolStatus() PoolStatus {
	sqlDB, err := m.db.DB()
	if err != nil {
		return PoolStatus{}
	}
	stats := sqlDB.Stats()
	return PoolStatus{
		Open:    stats.OpenConnections,
		InUse:   stats.InUse,
		Idle:    stats.Idle,
		MaxOpen: stats.MaxOpenConnections,
	}
}

// Close releases all pooled connections. Called on graceful shutdown.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
