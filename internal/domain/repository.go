// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"net/url"
)

// --- Pagination ---

// Page is the pagination envelope returned by the stock management API.
// Content is replaced element-wise by PagedRepository; every other field
// passes through untouched.
type Page[T any] struct {
	Content          []T   `json:"content"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"numberOfElements"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Sort             any   `json:"sort,omitempty"`
}

// MapPage builds a new page whose content is fn applied to every element of p,
// in order. Metadata is copied as-is; p is not modified.
func MapPage[R, T any](p Page[R], fn func(R) T) Page[T] {
	var content []T
	if p.Content != nil {
		content = make([]T, len(p.Content))
		for i, raw := range p.Content {
			content[i] = fn(raw)
		}
	}
	return Page[T]{
		Content:          content,
		Number:           p.Number,
		Size:             p.Size,
		NumberOfElements: p.NumberOfElements,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		First:            p.First,
		Last:             p.Last,
		Sort:             p.Sort,
	}
}

// --- Repository Interfaces ---

// Querier is anything that can return a page of raw records for the given params
// (REST resource, cache, in-memory fixture).
type Querier[R any] interface {
	Query(ctx context.Context, params url.Values) (Page[R], error)
}

// QuerierFunc adapts a plain function to Querier.
type QuerierFunc[R any] func(ctx context.Context, params url.Values) (Page[R], error)

// Query implements Querier.
func (f QuerierFunc[R]) Query(ctx context.Context, params url.Values) (Page[R], error) {
	return f(ctx, params)
}

// PagedRepository turns pages of raw records into pages of domain objects.
type PagedRepository[R, T any] struct {
	impl  Querier[R]
	build func(R) T
}

// NewPagedRepository wraps impl; build must be a pure constructor.
func NewPagedRepository[R, T any](impl Querier[R], build func(R) T) *PagedRepository[R, T] {
	return &PagedRepository[R, T]{impl: impl, build: build}
}

// Query delegates params verbatim to the wrapped querier. On failure the
// querier's error is returned as-is so callers can inspect the transport error.
func (r *PagedRepository[R, T]) Query(ctx context.Context, params url.Values) (Page[T], error) {
	page, err := r.impl.Query(ctx, params)
	if err != nil {
		return Page[T]{}, err
	}
	return MapPage(page, r.build), nil
}
