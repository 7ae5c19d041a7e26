package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/folioshelf/internal/service"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// parseListParams 读取 limit/offset，缺省值与上限由 service 层归一化。
func parseListParams(c *gin.Context) (service.ListParams, bool) {
	limit, err := parseIntQuery(c, "limit")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的 limit 参数")
		return service.ListParams{}, false
	}
	offset, err := parseIntQuery(c, "offset")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的 offset 参数")
		return service.ListParams{}, false
	}
	return service.ListParams{Limit: limit, Offset: offset}, true
}

func parseIntQuery(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
