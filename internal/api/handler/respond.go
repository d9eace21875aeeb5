package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/apierr"
	"reviewhub/internal/api/dto"
)

// abortWithError maps service errors onto their HTTP status.
func abortWithError(c *gin.Context, err error) {
	c.JSON(apierr.HTTPStatus(err), gin.H{"error": err.Error()})
}

func paging(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return dto.ClampPaging(page, pageSize)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
