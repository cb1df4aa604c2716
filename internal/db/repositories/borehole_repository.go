package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"easiernav/boreholed/internal/errs"
	"easiernav/boreholed/internal/metrics"
	"easiernav/boreholed/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

const (
	queryInsertBorehole = "insert_borehole"
	queryListBoreholes  = "list_boreholes"
)

// BoreholeStore is what the HTTP layer needs from persistence.
type BoreholeStore interface {
	Insert(ctx context.Context, borehole *gorm.Borehole) error
	ListAll(ctx context.Context) ([]gorm.Borehole, error)
}

// BoreholeRepository handles boreholes table operations
type BoreholeRepository struct {
	db      *gormlib.DB
	metrics *metrics.MetricsRegistry
}

var _ BoreholeStore = (*BoreholeRepository)(nil)

// NewBoreholeRepository creates a new borehole repository. metricsReg may
// be nil.
func NewBoreholeRepository(db *gormlib.DB, metricsReg *metrics.MetricsRegistry) *BoreholeRepository {
	return &BoreholeRepository{db: db, metrics: metricsReg}
}

// Insert writes one borehole in its own transaction and sets borehole.ID.
// A taken hole_id yields errs.ErrDuplicateKey and leaves the table as it
// was; any other failure is an *errs.StorageError.
func (r *BoreholeRepository) Insert(ctx context.Context, borehole *gorm.Borehole) error {
	start := time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gormlib.DB) error {
		return tx.Create(borehole).Error
	})

	switch {
	case err == nil:
		r.observe(queryInsertBorehole, "ok", start)
		if r.metrics != nil {
			r.metrics.BoreholesInserted.Inc()
		}
		return nil
	case isDuplicateKey(err):
		borehole.ID = 0
		r.observe(queryInsertBorehole, "duplicate", start)
		if r.metrics != nil {
			r.metrics.DuplicateRejections.Inc()
		}
		return errs.ErrDuplicateKey
	default:
		borehole.ID = 0
		r.observe(queryInsertBorehole, "error", start)
		return errs.NewStorageError(queryInsertBorehole, err)
	}
}

// ListAll returns every borehole in insertion order. An empty table gives
// an empty, non-nil slice.
func (r *BoreholeRepository) ListAll(ctx context.Context) ([]gorm.Borehole, error) {
	start := time.Now()
	boreholes := []gorm.Borehole{}

	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&boreholes).Error
	if err != nil {
		r.observe(queryListBoreholes, "error", start)
		return nil, errs.NewStorageError(queryListBoreholes, err)
	}

	r.observe(queryListBoreholes, "ok", start)
	return boreholes, nil
}

func (r *BoreholeRepository) observe(queryType, outcome string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.DBQueriesTotal.WithLabelValues(queryType, outcome).Inc()
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}

// isDuplicateKey recognises a unique violation whether or not the dialect
// translated it to gorm.ErrDuplicatedKey.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gormlib.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
