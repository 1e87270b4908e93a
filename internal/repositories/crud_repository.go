package repositories

import (
	"errors"
	"time"

	"poolservice_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRecordNotFound = NotFound("record")
	ErrDuplicate      = errors.New("duplicate record")
)

type notFoundError struct {
	entity string
}

func (e *notFoundError) Error() string { return e.entity + " not found" }

// Is makes every entity-specific not-found error match ErrRecordNotFound.
func (e *notFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}

// NotFound returns the not-found error of entity.
func NotFound(entity string) error {
	return &notFoundError{entity: entity}
}

// ListOptions controls List queries.
type ListOptions struct {
	Page     int
	PageSize int
	Order    string
	Preload  []string
	Scopes   []func(*gorm.DB) *gorm.DB
}

// CrudRepository implements the common persistence operations for model T.
// Soft-deletable models (embedding models.SoftDelete) are filtered on every
// read and soft-deleted on Delete.
type CrudRepository[T any] struct {
	notFound   error
	softDelete bool
}

func NewCrudRepository[T any](notFound error) *CrudRepository[T] {
	if notFound == nil {
		notFound = ErrRecordNotFound
	}
	return &CrudRepository[T]{
		notFound:   notFound,
		softDelete: models.IsSoftDeletable(new(T)),
	}
}

// Scoped returns a query on T with the soft-delete predicate applied.
func (r *CrudRepository[T]) Scoped(db *gorm.DB) *gorm.DB {
	q := db.Model(new(T))
	if r.softDelete {
		q = q.Scopes(NotDeleted)
	}
	return q
}

func (r *CrudRepository[T]) Create(db *gorm.DB, entity *T) error {
	if err := db.Create(entity).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *CrudRepository[T]) FindByID(db *gorm.DB, id interface{}, preload ...string) (*T, error) {
	var entity T
	q := r.Scoped(db)
	for _, p := range preload {
		q = q.Preload(p)
	}
	if err := q.Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *CrudRepository[T]) List(db *gorm.DB, opts ListOptions) ([]T, int64, error) {
	query := func() *gorm.DB {
		return r.Scoped(db).Scopes(opts.Scopes...)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := opts.Order
	if order == "" {
		order = "created_at DESC"
	}

	q := query().Order(order).Scopes(Paginate(opts.Page, opts.PageSize))
	for _, p := range opts.Preload {
		q = q.Preload(p)
	}

	var items []T
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// All returns every row ordered by order, without pagination.
func (r *CrudRepository[T]) All(db *gorm.DB, order string, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	var items []T
	if err := r.Scoped(db).Scopes(scopes...).Order(order).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update writes every column of entity except the key and creation time.
func (r *CrudRepository[T]) Update(db *gorm.DB, entity *T) error {
	q := db.Model(entity)
	if r.softDelete {
		q = q.Scopes(NotDeleted)
	}
	result := q.Select("*").Omit("id", "created_at", "deleted_at", clause.Associations).Updates(entity)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return r.notFound
	}
	return nil
}

// UpdateFields updates selected columns of the row with id.
func (r *CrudRepository[T]) UpdateFields(db *gorm.DB, id interface{}, fields map[string]interface{}) error {
	result := r.Scoped(db).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return r.notFound
	}
	return nil
}

func (r *CrudRepository[T]) Delete(db *gorm.DB, id interface{}) error {
	var result *gorm.DB
	if r.softDelete {
		now := time.Now().UTC()
		result = r.Scoped(db).Where("id = ?", id).Updates(map[string]interface{}{
			"deleted_at": now,
			"updated_at": now,
		})
	} else {
		result = db.Where("id = ?", id).Delete(new(T))
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.notFound
	}
	return nil
}

// Exists reports whether a live row matches query/args.
func (r *CrudRepository[T]) Exists(db *gorm.DB, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := r.Scoped(db).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
