package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ragulator-backend/internal/logger"
)

// Base implements the shared store operations for one entity family.
// Every operation resolves against the supplied transaction when given,
// otherwise against the root connection, so a single call is always
// commit-or-rollback atomic on its own.
type Base[T any] struct {
	db       *gorm.DB
	log      *logger.Logger
	name     string
	sortable map[string]bool
}

func NewBase[T any](db *gorm.DB, baseLog *logger.Logger, name string, sortableColumns []string) *Base[T] {
	cols := make(map[string]bool, len(sortableColumns))
	for _, c := range sortableColumns {
		cols[c] = true
	}
	return &Base[T]{
		db:       db,
		log:      baseLog.With("repo", name),
		name:     name,
		sortable: cols,
	}
}

func (b *Base[T]) resolve(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return b.db
}

func (b *Base[T]) Create(ctx context.Context, tx *gorm.DB, obj *T) (*T, error) {
	transaction := b.resolve(tx)
	start := time.Now()

	if err := transaction.WithContext(ctx).Create(obj).Error; err != nil {
		b.log.Error("Create failed", "entity", b.name, "error", err)
		return nil, err
	}

	b.log.Info("Created entity", "entity", b.name, "elapsed", time.Since(start))
	return obj, nil
}

func (b *Base[T]) CreateBulk(ctx context.Context, tx *gorm.DB, objs []*T) ([]*T, error) {
	transaction := b.resolve(tx)

	if len(objs) == 0 {
		return []*T{}, nil
	}
	start := time.Now()

	if err := transaction.WithContext(ctx).Create(&objs).Error; err != nil {
		b.log.Error("CreateBulk failed", "entity", b.name, "count", len(objs), "error", err)
		return nil, err
	}

	b.log.Info("Created entities", "entity", b.name, "count", len(objs), "elapsed", time.Since(start))
	return objs, nil
}

// GetByID returns (nil, nil) when no row matches; the services turn that
// into their own NotFound kind.
func (b *Base[T]) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*T, error) {
	transaction := b.resolve(tx)

	var obj T
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&obj).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		b.log.Error("GetByID failed", "entity", b.name, "id", id, "error", err)
		return nil, err
	}
	return &obj, nil
}

func (b *Base[T]) GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int, orderBy string, ascending bool) ([]*T, error) {
	transaction := b.resolve(tx)
	start := time.Now()

	if !b.sortable[orderBy] {
		b.log.Warn("Invalid sort column, falling back to created_at", "entity", b.name, "order_by", orderBy)
		orderBy = "created_at"
	}
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	var results []*T
	if err := transaction.WithContext(ctx).
		Order(fmt.Sprintf("%s %s", orderBy, direction)).
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		b.log.Error("GetMulti failed", "entity", b.name, "error", err)
		return nil, err
	}

	b.log.Info("Retrieved entities", "entity", b.name, "count", len(results), "elapsed", time.Since(start))
	return results, nil
}

func (b *Base[T]) Update(ctx context.Context, tx *gorm.DB, obj *T, fields map[string]interface{}) (*T, error) {
	transaction := b.resolve(tx)

	if len(fields) == 0 {
		return obj, nil
	}
	start := time.Now()

	if err := transaction.WithContext(ctx).Model(obj).Updates(fields).Error; err != nil {
		b.log.Error("Update failed", "entity", b.name, "error", err)
		return nil, err
	}
	// Refresh from the store so generated/auto-updated columns come back.
	if err := transaction.WithContext(ctx).First(obj).Error; err != nil {
		b.log.Error("Refresh after update failed", "entity", b.name, "error", err)
		return nil, err
	}

	b.log.Info("Updated entity", "entity", b.name, "elapsed", time.Since(start))
	return obj, nil
}

func (b *Base[T]) Delete(ctx context.Context, tx *gorm.DB, obj *T) (*T, error) {
	transaction := b.resolve(tx)
	start := time.Now()

	if err := transaction.WithContext(ctx).Delete(obj).Error; err != nil {
		b.log.Error("Delete failed", "entity", b.name, "error", err)
		return nil, err
	}

	b.log.Warn("Deleted entity", "entity", b.name, "elapsed", time.Since(start))
	return obj, nil
}

func (b *Base[T]) DeleteBulk(ctx context.Context, tx *gorm.DB, objs []*T) ([]*T, error) {
	transaction := b.resolve(tx)

	if len(objs) == 0 {
		return []*T{}, nil
	}
	start := time.Now()

	if err := transaction.WithContext(ctx).Delete(&objs).Error; err != nil {
		b.log.Error("DeleteBulk failed", "entity", b.name, "count", len(objs), "error", err)
		return nil, err
	}

	b.log.Warn("Deleted entities", "entity", b.name, "count", len(objs), "elapsed", time.Since(start))
	return objs, nil
}
