package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/folioshelf/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionIdentityKey = "uid"
	sessionUsernameKey = "username"
	identityContextKey = "__identity"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 校验用户名密码并把用户 UID 写入会话
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "用户名和密码不能为空") {
		return
	}

	user, err := a.users.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "用户名或密码错误")
			return
		}
		respondError(c, http.StatusInternalServerError, "登录失败")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionIdentityKey, user.UID)
	session.Set(sessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"uid": user.UID, "username": user.Username})
}

// Logout 清除会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}

// IdentityFromSession 把会话中的 UID 放入请求上下文，未登录时为空字符串。
// 是否允许操作由 service 层的 AuthorizationGate 决定，这里不拦截请求。
func IdentityFromSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := ""
		if uid, ok := sessions.Default(c).Get(sessionIdentityKey).(string); ok {
			identity = strings.TrimSpace(uid)
		}
		c.Set(identityContextKey, identity)
		c.Next()
	}
}

func currentIdentity(c *gin.Context) string {
	return c.GetString(identityContextKey)
}
