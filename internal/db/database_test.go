package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"easiernav/boreholed/internal/config"
	models "easiernav/boreholed/internal/models/gorm"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()

	database, err := Open(context.Background(), Options{
		Driver:   config.DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "boreholes.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestInitialize_Idempotent(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, database.Initialize(ctx, false))
	require.NoError(t, database.ORM.Create(&models.Borehole{
		HoleID: "BH-001", Azimuth: 45.5, Inclination: 12.3, Depth: 1500,
	}).Error)

	for i := 0; i < 3; i++ {
		require.NoError(t, database.Initialize(ctx, false))
	}

	var count int64
	require.NoError(t, database.ORM.Model(&models.Borehole{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.True(t, database.ORM.Migrator().HasIndex(&models.Borehole{}, "idx_boreholes_hole_id"))
	assert.False(t, database.ORM.Migrator().HasTable(&models.Survey{}))
}

func TestInitialize_ExtendedSchema(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, database.Initialize(ctx, true))
	require.NoError(t, database.Initialize(ctx, true))

	migrator := database.ORM.Migrator()
	assert.True(t, migrator.HasTable(&models.Borehole{}))
	assert.True(t, migrator.HasTable(&models.Survey{}))
	assert.True(t, migrator.HasTable(&models.CollisionCheck{}))
	assert.True(t, migrator.HasColumn(&models.Survey{}, "survey_point"))
	assert.True(t, migrator.HasColumn(&models.CollisionCheck{}, "risk_level"))

	var ddl string
	require.NoError(t, database.ORM.Raw(
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", "boreholes",
	).Scan(&ddl).Error)
	assert.NotContains(t, strings.ToUpper(ddl), "REFERENCES")
}

func TestInitialize_ExtendedSchemaKeepsBoreholesWritable(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, database.Initialize(ctx, true))

	first := &models.Borehole{HoleID: "BH-001", Azimuth: 45.5, Inclination: 12.3, Depth: 1500}
	require.NoError(t, database.ORM.Create(first).Error)
	require.NoError(t, database.ORM.Create(&models.Borehole{HoleID: "BH-002", Depth: 20}).Error)

	err := database.ORM.Create(&models.Borehole{HoleID: "BH-001", Depth: 1}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var got []models.Borehole
	require.NoError(t, database.ORM.Order("id ASC").Find(&got).Error)
	require.Len(t, got, 2)
	assert.Equal(t, *first, got[0])
	assert.Equal(t, "BH-002", got[1].HoleID)
}

func TestInitialize_SchemaSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()
	opts := Options{Driver: config.DriverSQLite, DSN: path, LogLevel: gormlogger.Silent}

	first, err := Open(ctx, opts)
	require.NoError(t, err)
	require.NoError(t, first.Initialize(ctx, false))
	require.NoError(t, first.ORM.Create(&models.Borehole{HoleID: "BH-007", Depth: 10}).Error)
	require.NoError(t, first.Close())

	second, err := Open(ctx, opts)
	require.NoError(t, err)
	defer second.Close()
	require.NoError(t, second.Initialize(ctx, false))

	var got models.Borehole
	require.NoError(t, second.ORM.Where("hole_id = ?", "BH-007").First(&got).Error)
	assert.Equal(t, 10.0, got.Depth)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestPingAndClose(t *testing.T) {
	database := openTestDB(t)

	require.NoError(t, database.Ping(context.Background()))
	require.NoError(t, database.Close())
	assert.Error(t, database.Ping(context.Background()))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "database.db?_busy_timeout=5000&_foreign_keys=on", sqliteDSN(""))
	assert.Equal(t, "file:x.db?mode=rwc&_busy_timeout=5000&_foreign_keys=on", sqliteDSN("file:x.db?mode=rwc"))
}
