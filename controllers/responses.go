package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidInput        = "invalid input"
	msgInternalServerError = "Internal server error"
	msgInvalidID           = "Invalid id"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func parseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pagination reads page and limit query params, falling back to defaults for
// missing or invalid values.
func pagination(ctx *gin.Context, defaultLimit int) (page, limit, offset int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}

func paginationMetadata(count int64, page, limit int) gin.H {
	totalPages := int((count + int64(limit) - 1) / int64(limit))
	return gin.H{
		"total":        count,
		"currentPage":  page,
		"limit":        limit,
		"totalPages":   totalPages,
		"hasPrevPage":  page > 1,
		"hasNextPage":  totalPages > page,
		"previousPage": page - 1,
		"nextPage":     page + 1,
	}
}
