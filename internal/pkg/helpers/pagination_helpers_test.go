package helpers

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateSliceIndices(t *testing.T) {
	tests := []struct {
		name               string
		page, size, total  int
		wantStart, wantEnd int
	}{
		{"first page", 1, 20, 45, 0, 20},
		{"last partial page", 3, 20, 45, 40, 45},
		{"page past the end", 4, 20, 45, 45, 45},
		{"exact fit", 2, 5, 10, 5, 10},
		{"empty set", 1, 20, 0, 0, 0},
		{"zero page falls back to first", 0, 10, 3, 0, 3},
		{"zero size falls back to default", 1, 0, 30, 0, DefaultPageSize},
		{"page large enough to overflow", math.MaxInt/4 + 2, 4, 7, 7, 7},
		{"largest page", math.MaxInt, MaxPageSize, 7, 7, 7},
		{"largest size", 1, math.MaxInt, 7, 0, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateSliceIndices(tt.page, tt.size, tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	parse := func(query string) (int, int) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/projects/student"+query, nil)
		return ParsePaginationParams(c)
	}

	page, size := parse("")
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size = parse("?page=3&pageSize=500")
	assert.Equal(t, 3, page)
	assert.Equal(t, MaxPageSize, size)

	page, size = parse("?page=-1&pageSize=abc")
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)
}
