package types

import "math"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	// MaxPageOffset bounds the row offset so page*limit arithmetic never overflows.
	MaxPageOffset = math.MaxInt32
)

// Page is a normalized page/limit pair.
type Page struct {
	Page  int
	Limit int
}

// Offset saturates at MaxPageOffset.
func (p Page) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > MaxPageOffset/p.Limit {
		return MaxPageOffset
	}
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	Page  int `json:"page" example:"1"`
	Limit int `json:"limit" example:"20"`
	Total int `json:"total" example:"42"`
	Pages int `json:"pages" example:"3"`
}

// NewPagination computes the envelope metadata. pages is ceil(total/limit).
func NewPagination(p Page, total int) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}

type PaginatedResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPaginatedResponse never serializes a nil slice as null.
func NewPaginatedResponse[T any](data []T, p Page, total int) PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{Data: data, Pagination: NewPagination(p, total)}
}
