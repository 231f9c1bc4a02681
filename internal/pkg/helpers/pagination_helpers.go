package helpers

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based
)

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	if size <= 0 || size > MaxPageSize {
		limit = DefaultPageSize
	} else {
		limit = size
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * limit)
	return offset, limit
}

// TotalPages returns ceil(totalItems / size); zero items means zero pages.
func TotalPages(totalItems int64, size int) int {
	if totalItems <= 0 || size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalItems) / float64(size)))
}

// NewPage builds the paginated envelope for one fetched page.
func NewPage[T any](items []T, totalItems int64, page, size int) *dto.Page[T] {
	if items == nil {
		items = []T{}
	}
	return &dto.Page[T]{
		Items:      items,
		TotalCount: totalItems,
		Page:       page,
		PageSize:   size,
		TotalPages: TotalPages(totalItems, size),
	}
}

// ValidatePage rejects page/size pairs outside the list contract.
func ValidatePage(page, size int) error {
	if page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", apperrors.ErrValidationFailed, page)
	}
	if size < 1 || size > MaxPageSize {
		return fmt.Errorf("%w: pageSize must be between 1 and %d, got %d", apperrors.ErrValidationFailed, MaxPageSize, size)
	}
	return nil
}

// ParsePaginationParams extracts pagination parameters from the request.
// The page size is read from pageSize, falling back to limit and size.
func ParsePaginationParams(c *gin.Context) (page, size int, err error) {
	page = DefaultPage
	if raw := c.Query("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil {
			return 0, 0, fmt.Errorf("%w: page must be an integer", apperrors.ErrValidationFailed)
		}
	}

	size = DefaultPageSize
	for _, key := range []string{"pageSize", "limit", "size"} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		if size, err = strconv.Atoi(raw); err != nil {
			return 0, 0, fmt.Errorf("%w: %s must be an integer", apperrors.ErrValidationFailed, key)
		}
		break
	}

	if err := ValidatePage(page, size); err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

// CalculateSliceBounds returns the [start, end) window of an in-memory result set
// for the offset/limit pair produced by CalculateOffsetLimit. An offset past the
// end or a non-positive limit yields an empty window.
func CalculateSliceBounds(offset uint64, limit, totalItems int) (start, end int) {
	if limit <= 0 || offset >= uint64(totalItems) {
		return totalItems, totalItems
	}

	start = int(offset)
	end = start + limit
	if end > totalItems {
		end = totalItems
	}
	return start, end
}
