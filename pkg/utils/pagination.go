package utils

import "github.com/turtacn/acadmin/pkg/constants"

// NormalizePage clamps page and pageSize into the accepted range and returns
// the matching limit/offset pair for repository calls.
func NormalizePage(page, pageSize int) (normalizedPage, limit, offset int) {
	if page <= 0 {
		page = constants.DefaultPage
	}
	if pageSize <= 0 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}
	return page, pageSize, (page - 1) * pageSize
}

// TotalPages returns how many pages of pageSize are needed for total items.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
