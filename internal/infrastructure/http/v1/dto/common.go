// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// IDResponse is returned by endpoints that create a resource.
type IDResponse struct {
	ID string `json:"id"`
}

// ListResponse wraps a non-paginated list.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResponse wraps items; a nil slice is rendered as [].
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}
