package catalog

// DefaultPageSize is the fixed page size of the admin list views.
const DefaultPageSize = 25

// Window computes the row offset and count for one page. Pages are
// one-based; anything below 1 reads as the first page.
func Window(page, limit int) (offset, count int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	return (page - 1) * limit, limit
}

// TotalPages returns ceil(totalCount/limit).
func TotalPages(totalCount, limit int) int {
	if limit < 1 || totalCount <= 0 {
		return 0
	}
	return (totalCount + limit - 1) / limit
}
