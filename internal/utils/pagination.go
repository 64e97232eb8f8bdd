// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaginationParams struct {
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

func GetPaginationParams(c *gin.Context) (PaginationParams, []string) {
	var errs []string

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		errs = append(errs, "page must be a positive integer")
		page = 1
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		errs = append(errs, "pageSize must be an integer between 1 and 100")
		pageSize = 10
	}

	sortOrder := c.DefaultQuery("sortOrder", "asc")
	if sortOrder != "asc" && sortOrder != "desc" {
		errs = append(errs, "sortOrder must be either 'asc' or 'desc'")
	}

	return PaginationParams{
		Page:      page,
		PageSize:  pageSize,
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: sortOrder,
	}, errs
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	offset := (params.Page - 1) * params.PageSize
	return db.Offset(offset).Limit(params.PageSize)
}

// ApplySort maps API sort fields onto column names through an allowlist;
// a field outside the allowlist is a caller error, not a silent default.
func ApplySort(db *gorm.DB, params PaginationParams, sortFields map[string]string) (*gorm.DB, bool) {
	column, ok := sortFields[params.SortBy]
	if !ok {
		return db, false
	}

	order := params.SortOrder
	if order != "asc" && order != "desc" {
		order = "asc"
	}

	return db.Order(column + " " + order), true
}
