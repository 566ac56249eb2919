package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 10)
	assert.Zero(t, offset)
	assert.Equal(t, 10, limit)

	offset, limit = CalculateOffsetLimit(3, 25)
	assert.Equal(t, 50, offset)
	assert.Equal(t, 25, limit)

	// Out-of-range values fall back to defaults.
	offset, limit = CalculateOffsetLimit(0, 0)
	assert.Zero(t, offset)
	assert.Equal(t, DefaultPageSize, limit)

	_, limit = CalculateOffsetLimit(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 5, info.TotalPages)
	assert.EqualValues(t, 45, info.TotalItems)

	// A page beyond the end is clamped to the last page.
	info = NewPaginationInfo(45, 9, 10)
	assert.Equal(t, 5, info.CurrentPage)

	// An empty result still reports one page.
	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", "/events?page=3&size=20", nil)
	page, size := ParsePaginationParams(ctx)
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, size)

	ctx, _ = gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", "/events?page=junk&size=-5", nil)
	page, size = ParsePaginationParams(ctx)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("not-a-duration", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
}

func TestEndOfCalendarYear(t *testing.T) {
	eoy := time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, eoy, EndOfCalendarYear(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, eoy, EndOfCalendarYear(time.Date(2025, time.December, 31, 23, 59, 58, 0, time.UTC)))

	// The boundary is computed in UTC regardless of the input zone.
	pacific := time.FixedZone("PST", -8*3600)
	assert.Equal(t, eoy, EndOfCalendarYear(time.Date(2025, time.June, 14, 9, 0, 0, 0, pacific)))
}
