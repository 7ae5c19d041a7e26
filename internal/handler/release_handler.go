package handler

import (
	"errors"
	"net/http"

	"github.com/folioshelf/internal/db"
	"github.com/folioshelf/internal/service"
	"github.com/gin-gonic/gin"
)

type publishReleaseRequest struct {
	ReleaseName  string  `json:"releaseName"`
	ReleaseNotes *string `json:"releaseNotes"`
}

type releaseResponse struct {
	*db.Release
	ReleaseNotesHTML string `json:"releaseNotesHtml"`
}

func (a *API) toReleaseResponse(c *gin.Context, release *db.Release) releaseResponse {
	rendered, err := renderMarkdown(release.ReleaseNotes)
	if err != nil {
		c.Error(err)
	}
	return releaseResponse{Release: release, ReleaseNotesHTML: rendered}
}

// GetRelease 获取单个版本
func (a *API) GetRelease(c *gin.Context) {
	release, err := a.releases.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrReleaseNotFound) {
			respondError(c, http.StatusNotFound, "版本不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取版本失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"release": a.toReleaseResponse(c, release)})
}

// PublishRelease 校验并发布版本
func (a *API) PublishRelease(c *gin.Context) {
	var req publishReleaseRequest
	if !bindJSON(c, &req, "请求格式错误") {
		return
	}

	release, err := a.releases.Publish(c.Request.Context(), currentIdentity(c), c.Param("id"), req.ReleaseName, req.ReleaseNotes)
	if err != nil {
		var validation *service.ValidationError
		switch {
		case errors.As(err, &validation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":    "版本校验未通过",
				"failures": validation.Failures,
			})
		case errors.Is(err, service.ErrNotAuthenticated):
			respondError(c, http.StatusUnauthorized, "请先登录")
		case errors.Is(err, service.ErrActionNotAllowed):
			respondError(c, http.StatusForbidden, "无权发布该版本")
		case errors.Is(err, service.ErrReleaseNotFound):
			respondError(c, http.StatusNotFound, "版本不存在")
		case errors.Is(err, service.ErrStoreBookNotFound):
			respondError(c, http.StatusNotFound, "图书不存在")
		case errors.Is(err, service.ErrAlreadyPublished):
			respondError(c, http.StatusConflict, "版本已发布")
		case errors.Is(err, service.ErrParentNotPublished):
			respondError(c, http.StatusConflict, "图书尚未发布，无法发布版本")
		default:
			c.Error(err)
			respondError(c, http.StatusInternalServerError, "发布版本失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "版本发布成功", "release": a.toReleaseResponse(c, release)})
}
