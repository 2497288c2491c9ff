package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StandardResponse is the conventional envelope for every JSON endpoint:
// {success, data|error}.
type StandardResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: data})
}

func respondPage(c *gin.Context, data interface{}, page, pageSize int, total int64) {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    data,
		Pagination: &PaginationMeta{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  total,
			TotalPages:  totalPages,
		},
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, StandardResponse{Success: false, Error: message})
}
