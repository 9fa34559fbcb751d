package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based
)

// ParsePaginationParams reads page and pageSize from the query.
// Missing or invalid values fall back to the defaults; pageSize is capped at MaxPageSize.
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	size, err = strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize)))
	if err != nil || size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return page, size
}

// CalculateSliceIndices calculates the start and end indices for slicing an array for pagination
func CalculateSliceIndices(page, size, totalItems int) (start, end int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	// pages past the end are empty; checked before multiplying so huge pages cannot overflow
	if totalItems <= 0 || page-1 > totalItems/size {
		return totalItems, totalItems
	}

	start = (page - 1) * size
	if start > totalItems {
		start = totalItems
	}
	end = totalItems
	if size < totalItems-start {
		end = start + size
	}

	return start, end
}
