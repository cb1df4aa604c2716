package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"easiernav/boreholed/internal/config"
	"easiernav/boreholed/internal/logging"
	models "easiernav/boreholed/internal/models/gorm"
)

// sqliteBusyTimeout is how long a SQLite writer waits on a locked database
// before giving up.
const sqliteBusyTimeout = 5 * time.Second

// Options selects and tunes the backing store.
type Options struct {
	Driver   string
	DSN      string
	LogLevel gormlogger.LogLevel
}

// Database owns the connection pool. Repositories borrow a connection per
// call through ORM; nothing holds one across requests.
type Database struct {
	ORM    *gorm.DB
	SQL    *sqlx.DB
	Driver string
}

// Open connects to the configured store and verifies it answers a ping.
func Open(ctx context.Context, opts Options) (*Database, error) {
	if opts.LogLevel == 0 {
		opts.LogLevel = gormlogger.Warn
	}

	var (
		dialector  gorm.Dialector
		sqlxDriver string
	)
	switch opts.Driver {
	case config.DriverSQLite, "":
		dialector = sqlite.Open(sqliteDSN(opts.DSN))
		sqlxDriver = "sqlite3"
	case config.DriverPostgres:
		dialector = postgres.Open(opts.DSN)
		sqlxDriver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	orm, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Driver, err)
	}

	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}

	// SQLite allows one writer at a time; a single pooled connection makes
	// concurrent requests queue instead of failing with "database is locked".
	if sqlxDriver == "sqlite3" {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", opts.Driver, err)
	}

	driver := opts.Driver
	if driver == "" {
		driver = config.DriverSQLite
	}

	logging.Info("Connected to database", "driver", driver)
	return &Database{
		ORM:    orm,
		SQL:    sqlx.NewDb(sqlDB, sqlxDriver),
		Driver: driver,
	}, nil
}

// Initialize creates the boreholes table and its unique hole_id index if
// they are missing. With extended set it also creates the surveys and
// collision_checks tables. Safe to call any number of times; existing rows
// are never touched.
func (d *Database) Initialize(ctx context.Context, extended bool) error {
	tables := []interface{}{&models.Borehole{}}
	if extended {
		tables = append(tables, &models.Survey{}, &models.CollisionCheck{})
	}

	if err := d.ORM.WithContext(ctx).AutoMigrate(tables...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	logging.Info("Database schema ready", "extended", extended)
	return nil
}

// Ping checks the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	return d.SQL.PingContext(ctx)
}

// Close releases every pooled connection.
func (d *Database) Close() error {
	return d.SQL.Close()
}

func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "database.db"
	}
	params := []string{
		fmt.Sprintf("_busy_timeout=%d", sqliteBusyTimeout.Milliseconds()),
		"_foreign_keys=on",
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}
