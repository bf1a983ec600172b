package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suresh-yadav/portfolio-backend/errs"
)

// RecordRepo is the CRUD repository behind the admin surface. It works for any model
// keyed by an "id" column. Writes never cascade into associations.
type RecordRepo[T any] struct {
	db       *gorm.DB
	order    string
	preloads []string
}

func NewRecordRepo[T any](db *gorm.DB, order string, preloads ...string) *RecordRepo[T] {
	return &RecordRepo[T]{db: db, order: order, preloads: preloads}
}

func (r *RecordRepo[T]) query(ctx context.Context) *gorm.DB {
	tx := r.db.WithContext(ctx)
	for _, association := range r.preloads {
		tx = tx.Preload(association)
	}
	return tx
}

// FindAll returns every record in the repository's order
func (r *RecordRepo[T]) FindAll(ctx context.Context) ([]T, error) {
	records := []T{}
	tx := r.query(ctx)
	if r.order != "" {
		tx = tx.Order(r.order)
	}
	err := tx.Order("id ASC").Find(&records).Error
	return records, err
}

// FindByID returns the record with id, or nil when it does not exist
func (r *RecordRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	err := r.query(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Add inserts a new record
func (r *RecordRepo[T]) Add(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error
}

// Update writes every column of an existing record
func (r *RecordRepo[T]) Update(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(record).Error
}

// Delete removes the record with id. It reports whether a record was removed.
func (r *RecordRepo[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	return result.RowsAffected > 0, result.Error
}

// Count returns the number of stored records
func (r *RecordRepo[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&count).Error
	return count, err
}

// ReplaceAll inserts records into an empty table, keeping their IDs and timestamps. It
// fails with errs.ErrTableNotEmpty if the table already holds rows.
func (r *RecordRepo[T]) ReplaceAll(ctx context.Context, records []T) error {
	count, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		var model T
		stmt := &gorm.Statement{DB: r.db}
		if err := stmt.Parse(&model); err != nil {
			return err
		}
		return errs.NewTableNotEmptyError(stmt.Schema.Table)
	}
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(&records, 100).Error
}

// WithTx returns a copy of the repository bound to tx.
func (r *RecordRepo[T]) WithTx(tx *gorm.DB) *RecordRepo[T] {
	return &RecordRepo[T]{db: tx, order: r.order, preloads: r.preloads}
}

// Bare returns a copy of the repository that loads no associations. Updates decode onto a
// bare record so stale associations never reach Save.
func (r *RecordRepo[T]) Bare() *RecordRepo[T] {
	return &RecordRepo[T]{db: r.db, order: r.order}
}
