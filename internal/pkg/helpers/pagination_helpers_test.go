package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 32, TotalPages(320, 10))
	assert.Equal(t, 33, TotalPages(321, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
}

func TestNewPageNeverReturnsNilItems(t *testing.T) {
	page := NewPage[string](nil, 0, 1, 10)
	require.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}

func TestCalculateSliceBounds(t *testing.T) {
	offset, limit := CalculateOffsetLimit(32, 10)
	start, end := CalculateSliceBounds(offset, limit, 320)
	assert.Equal(t, 310, start)
	assert.Equal(t, 320, end)

	start, end = CalculateSliceBounds(20, 10, 25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = CalculateSliceBounds(40, 10, 25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)

	start, end = CalculateSliceBounds(0, 0, 25)
	assert.Equal(t, start, end)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parse := func(query string) (int, int, error) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/students?"+query, nil)
		return ParsePaginationParams(c)
	}

	page, size, err := parse("")
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size, err = parse("page=3&pageSize=25")
	require.NoError(t, err)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)

	_, size, err = parse("limit=5")
	require.NoError(t, err)
	assert.Equal(t, 5, size)

	_, _, err = parse("page=0")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, _, err = parse("page=abc")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, _, err = parse("pageSize=1000")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStartedMonths(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, 6, StartedMonths(day(2024, 1, 15), day(2024, 7, 15)))
	assert.Equal(t, 7, StartedMonths(day(2024, 1, 15), day(2024, 7, 16)))
	assert.Equal(t, 1, StartedMonths(day(2024, 1, 15), day(2024, 1, 20)))
	assert.Equal(t, 1, StartedMonths(day(2024, 1, 15), day(2024, 1, 15)))
}
