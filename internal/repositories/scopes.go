package repositories

import (
	"strings"

	"gorm.io/gorm"
)

// NotDeleted is the default read predicate for soft-deletable tables.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// Paginate applies offset/limit for a 1-based page.
func Paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 {
			page = 1
		}
		if pageSize <= 0 {
			pageSize = 20
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// Search matches term case-insensitively against any of columns.
func Search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + strings.ToLower(term) + "%"
		conds := make([]string, 0, len(columns))
		args := make([]interface{}, 0, len(columns))
		for _, c := range columns {
			conds = append(conds, "LOWER("+c+") LIKE ?")
			args = append(args, like)
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}
