// Package paginator splits an ordered collection into fixed-size pages.
// Out-of-range page numbers are clamped to the nearest valid page.
package paginator

import (
	"strconv"
	"strings"
)

const DefaultPerPage = 10

type Paginator struct {
	Count   int
	PerPage int
}

func New(count, perPage int) Paginator {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if count < 0 {
		count = 0
	}
	return Paginator{Count: count, PerPage: perPage}
}

// NumPages is never below one: an empty collection still has an empty first page.
func (p Paginator) NumPages() int {
	if p.Count == 0 {
		return 1
	}
	return (p.Count + p.PerPage - 1) / p.PerPage
}

// Number resolves a raw ?page= value. Anything that isn't an integer is page 1.
func (p Paginator) Number(raw string) int {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || number < 1 {
		return 1
	}
	if last := p.NumPages(); number > last {
		return last
	}
	return number
}

// Window returns the LIMIT/OFFSET pair for an already resolved page number.
func (p Paginator) Window(number int) (limit, offset int) {
	return p.PerPage, (number - 1) * p.PerPage
}

type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"number"`
	NumPages    int  `json:"numPages"`
	Count       int  `json:"count"`
	PerPage     int  `json:"perPage"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

func NewPage[T any](p Paginator, number int, items []T) *Page[T] {
	if items == nil {
		items = []T{}
	}
	numPages := p.NumPages()
	return &Page[T]{
		Items:       items,
		Number:      number,
		NumPages:    numPages,
		Count:       p.Count,
		PerPage:     p.PerPage,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}

func (pg *Page[T]) Len() int {
	return len(pg.Items)
}

// StartIndex is the 1-based index of the first item on the page, 0 when empty.
func (pg *Page[T]) StartIndex() int {
	if pg.Count == 0 {
		return 0
	}
	return (pg.Number-1)*pg.PerPage + 1
}
