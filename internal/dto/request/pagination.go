package request

import "travel-booking/pkg/utils"

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

func (p PaginatedRequest) normalized() utils.Page {
	return utils.NormalizePage(p.Page, p.PerPage, DefaultPerPage, MaxPerPage)
}

func (p PaginatedRequest) Offset() int {
	return p.normalized().Offset()
}

func (p PaginatedRequest) Limit() int {
	return p.normalized().Size
}
