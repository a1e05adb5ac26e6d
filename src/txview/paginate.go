package txview

import "strconv"

// DefaultPageSize is the number of rows on one transactions page.
const DefaultPageSize = 10

// Paginate returns the 1-based page of items. Pages outside the list,
// including page < 1, come back empty.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func TotalPages(count, size int) int {
	if count <= 0 || size < 1 {
		return 0
	}
	return (count + size - 1) / size
}

// ParsePage reads a page query value. Anything that is not a positive
// integer means the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
