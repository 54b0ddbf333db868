package pagination

// Response is a generic paginated response wrapper.
// T is the type of data items (e.g., MemberDTO, CarePackageDTO).
//
// Example usage:
//
//	type MemberDTO struct { ... }
//	response := pagination.NewResponse(members, pageInfo)
//	// response is of type pagination.Response[MemberDTO]
type Response[T any] struct {
	Data     []T      `json:"data"`     // Array of data items for the current page
	PageInfo PageInfo `json:"pageInfo"` // Navigation envelope for both modes
}

// NewResponse creates a new paginated response with data and page info.
// This is a convenience constructor for creating Response[T] instances.
func NewResponse[T any](data []T, info PageInfo) Response[T] {
	return Response[T]{
		Data:     data,
		PageInfo: info,
	}
}
