package database

import (
	"strconv"
	"strings"
)

// Page describes one page of an ordered listing.
type Page struct {
	Number      int   `json:"number"`
	Size        int   `json:"size"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// Offset is the number of items that precede this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Paginate resolves the requested page number against total items. A missing or
// non-numeric request yields page 1, a number below 1 is raised to 1 and a number past the
// end yields the last page. An empty listing is page 1 of 1.
func Paginate(total int64, size int, requested string) Page {
	if size < 1 {
		size = 1
	}
	if total < 0 {
		total = 0
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}

	number, err := strconv.Atoi(strings.TrimSpace(requested))
	switch {
	case err != nil, number < 1:
		number = 1
	case number > totalPages:
		number = totalPages
	}

	return Page{
		Number:      number,
		Size:        size,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}
}
