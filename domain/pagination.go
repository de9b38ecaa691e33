package domain

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
	MaxLimit     int64 = 100
)

type Pagination struct {
	Total       int64 `json:"total"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int64 `json:"currentPage"`
	Limit       int64 `json:"limit"`
}

func NewPagination(total, page, limit int64) Pagination {
	return Pagination{
		Total:       total,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
		Limit:       limit,
	}
}

// Skip is the number of documents preceding the given page.
func Skip(page, limit int64) int64 {
	return (page - 1) * limit
}

type UserPage struct {
	Users      []*User    `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type PropertyPage struct {
	Properties []*Property `json:"properties"`
	Pagination Pagination  `json:"pagination"`
}
