package repositories

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"easiernav/boreholed/internal/config"
	"easiernav/boreholed/internal/db"
	"easiernav/boreholed/internal/errs"
	"easiernav/boreholed/internal/metrics"
	"easiernav/boreholed/internal/models/gorm"
)

var schemaModes = []struct {
	name     string
	extended bool
}{
	{"base schema", false},
	{"extended schema", true},
}

func setupRepo(t *testing.T) (*BoreholeRepository, *db.Database, *metrics.MetricsRegistry) {
	t.Helper()
	return setupRepoWithSchema(t, false)
}

func setupRepoWithSchema(t *testing.T, extended bool) (*BoreholeRepository, *db.Database, *metrics.MetricsRegistry) {
	t.Helper()

	database, err := db.Open(context.Background(), db.Options{
		Driver:   config.DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "boreholes.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Initialize(context.Background(), extended))

	metricsReg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	return NewBoreholeRepository(database.ORM, metricsReg), database, metricsReg
}

func f64(v float64) *float64 { return &v }

func countBoreholes(t *testing.T, database *db.Database) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.ORM.Model(&gorm.Borehole{}).Count(&count).Error)
	return count
}

func TestBoreholeRepository_InsertThenList(t *testing.T) {
	for _, mode := range schemaModes {
		t.Run(mode.name, func(t *testing.T) {
			repo, _, metricsReg := setupRepoWithSchema(t, mode.extended)
			ctx := context.Background()

			in := &gorm.Borehole{HoleID: "BH-001", Azimuth: 45.5, Inclination: 12.3, Depth: 1500.0}
			require.NoError(t, repo.Insert(ctx, in))
			assert.NotZero(t, in.ID)

			got, err := repo.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, *in, got[0])
			assert.Equal(t, 1.0, testutil.ToFloat64(metricsReg.BoreholesInserted))
		})
	}
}

func TestBoreholeRepository_RoundTripFidelity(t *testing.T) {
	repo, _, _ := setupRepo(t)
	ctx := context.Background()

	in := &gorm.Borehole{
		HoleID:      "BH-NEG",
		Azimuth:     -0.000123,
		Inclination: 89.999999,
		Depth:       1234.5678901234,
		Northing:    f64(-6543210.125),
		Easting:     f64(0.1),
		TVD:         f64(-12.75),
		Deviation:   f64(1e-9),
	}
	require.NoError(t, repo.Insert(ctx, in))

	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, *in, got[0])
}

func TestBoreholeRepository_OptionalFieldsStayNull(t *testing.T) {
	repo, _, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &gorm.Borehole{HoleID: "BH-002", Depth: 10, Easting: f64(0)}))

	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Northing)
	assert.Nil(t, got[0].TVD)
	assert.Nil(t, got[0].Deviation)
	require.NotNil(t, got[0].Easting)
	assert.Equal(t, 0.0, *got[0].Easting)
}

func TestBoreholeRepository_DuplicateHoleID(t *testing.T) {
	for _, mode := range schemaModes {
		t.Run(mode.name, func(t *testing.T) {
			repo, database, metricsReg := setupRepoWithSchema(t, mode.extended)
			ctx := context.Background()

			existing := &gorm.Borehole{HoleID: "BH-001", Azimuth: 45.5, Inclination: 12.3, Depth: 1500.0}
			require.NoError(t, repo.Insert(ctx, existing))

			dup := &gorm.Borehole{HoleID: "BH-001", Azimuth: 1, Inclination: 2, Depth: 3}
			err := repo.Insert(ctx, dup)
			assert.ErrorIs(t, err, errs.ErrDuplicateKey)
			assert.Zero(t, dup.ID)

			got, err := repo.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, *existing, got[0])

			assert.EqualValues(t, 1, countBoreholes(t, database))
			assert.Equal(t, 1.0, testutil.ToFloat64(metricsReg.DuplicateRejections))
		})
	}
}

func TestBoreholeRepository_ListEmpty(t *testing.T) {
	repo, _, _ := setupRepo(t)

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBoreholeRepository_InsertionOrder(t *testing.T) {
	repo, _, _ := setupRepo(t)
	ctx := context.Background()

	ids := []string{"C-3", "A-1", "B-2"}
	for _, id := range ids {
		require.NoError(t, repo.Insert(ctx, &gorm.Borehole{HoleID: id, Depth: 1}))
	}

	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, id := range ids {
		assert.Equal(t, id, got[i].HoleID)
	}
	assert.Less(t, got[0].ID, got[1].ID)
	assert.Less(t, got[1].ID, got[2].ID)
}

func TestBoreholeRepository_ConcurrentDuplicateInserts(t *testing.T) {
	repo, database, _ := setupRepoWithSchema(t, true)
	ctx := context.Background()

	const writers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
		others     []error
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(depth float64) {
			defer wg.Done()
			err := repo.Insert(ctx, &gorm.Borehole{HoleID: "BH-RACE", Depth: depth})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, errs.ErrDuplicateKey):
				duplicates++
			default:
				others = append(others, err)
			}
		}(float64(i))
	}
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, 1, successes)
	assert.Equal(t, writers-1, duplicates)

	assert.EqualValues(t, 1, countBoreholes(t, database))
}

func TestBoreholeRepository_StorageError(t *testing.T) {
	repo, database, _ := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, database.Close())

	err := repo.Insert(ctx, &gorm.Borehole{HoleID: "BH-X", Depth: 1})
	se, ok := errs.AsStorageError(err)
	require.True(t, ok, "expected StorageError, got %v", err)
	assert.Equal(t, "insert_borehole", se.Op)
	assert.False(t, errs.IsDuplicateKey(err))

	_, err = repo.ListAll(ctx)
	_, ok = errs.AsStorageError(err)
	assert.True(t, ok)
}

func TestIsDuplicateKey_DriverMessages(t *testing.T) {
	assert.True(t, isDuplicateKey(errors.New("UNIQUE constraint failed: boreholes.hole_id")))
	assert.True(t, isDuplicateKey(errors.New(`ERROR: duplicate key value violates unique constraint "idx_boreholes_hole_id" (SQLSTATE 23505)`)))
	assert.False(t, isDuplicateKey(errors.New("NOT NULL constraint failed: boreholes.hole_id")))
}
