package service

// Paginate returns the 1-based page of items and the total item count.
// Pages past the end are empty.
func Paginate[T any](items []T, page, size int) ([]T, int) {
	total := len(items)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}

	// past this bound (page-1)*size would reach total or overflow
	if total == 0 || page-1 > (total-1)/size {
		return []T{}, total
	}
	start := (page - 1) * size
	end := total
	if size < total-start {
		end = start + size
	}
	return items[start:end], total
}
