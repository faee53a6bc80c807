package handler

import (
	"encoding/json"

	"github.com/daterly/members-api/internal/pagination"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the common error body
type ErrorResponse struct {
	Error string `json:"error"`
}

type paginationHeader struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalCount  int `json:"total_count"`
	TotalPages  int `json:"total_pages"`
}

// addPaginationHeader exposes paging metadata through the Pagination
// response header so the body stays a plain item list.
func addPaginationHeader[T any](c *gin.Context, page *pagination.PagedResult[T]) {
	header := paginationHeader{
		CurrentPage: page.CurrentPage,
		PageSize:    page.PageSize,
		TotalCount:  page.TotalCount,
		TotalPages:  page.TotalPages,
	}
	body, err := json.Marshal(header)
	if err != nil {
		return
	}
	c.Header("Pagination", string(body))
	c.Header("Access-Control-Expose-Headers", "Pagination")
}
