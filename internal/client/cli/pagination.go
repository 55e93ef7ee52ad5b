package cli

// pagesPerBlock is how many page numbers the board list shows at once.
const pagesPerBlock = 5

// PageWindow returns the page numbers (1-based) to show around current,
// at most pagesPerBlock of them, shifted left near the last page.
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}

	begin := max(1, current-pagesPerBlock/2)
	end := min(totalPages, begin+pagesPerBlock-1)
	if end-begin < pagesPerBlock-1 {
		begin = max(1, end-pagesPerBlock+1)
	}

	pages := make([]int, 0, end-begin+1)
	for i := begin; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
