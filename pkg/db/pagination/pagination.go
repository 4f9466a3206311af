package pagination

import "gorm.io/gorm"

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Params carries the page/limit query parameters of list endpoints.
type Params struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

// Pagination is the pagination block returned alongside list items.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Page is the standard list response envelope.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Normalize clamps page and limit into their allowed ranges.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// Scope applies offset pagination to a gorm statement.
func (p Params) Scope() func(*gorm.DB) *gorm.DB {
	p = p.Normalize()
	return func(stmt *gorm.DB) *gorm.DB {
		return stmt.Offset(p.Offset()).Limit(p.Limit)
	}
}

// Build computes the pagination block for a total row count.
func Build(p Params, totalCount int64) Pagination {
	p = p.Normalize()

	totalPages := int(totalCount / int64(p.Limit))
	if totalCount%int64(p.Limit) != 0 {
		totalPages++
	}

	return Pagination{
		CurrentPage: p.Page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		Limit:       p.Limit,
		HasNextPage: p.Page < totalPages,
		HasPrevPage: p.Page > 1 && totalCount > 0,
	}
}

// NewPage assembles the list envelope, never returning nil items.
func NewPage[T any](items []T, p Params, totalCount int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Pagination: Build(p, totalCount),
	}
}
