package service

import (
	"strings"

	"github.com/folioshelf/internal/db"
)

// AuthorizationGate decides who may act on a release: its owner, or any
// identity on the privileged operator allow-list.
type AuthorizationGate struct {
	privileged map[string]struct{}
}

// NewAuthorizationGate creates a gate with a fixed allow-list.
func NewAuthorizationGate(privileged []string) *AuthorizationGate {
	set := make(map[string]struct{}, len(privileged))
	for _, identity := range privileged {
		if trimmed := strings.TrimSpace(identity); trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return &AuthorizationGate{privileged: set}
}

// IsPrivileged reports whether identity is an operator.
func (g *AuthorizationGate) IsPrivileged(identity string) bool {
	_, ok := g.privileged[strings.TrimSpace(identity)]
	return ok
}

// CanPublish 未登录返回 ErrNotAuthenticated，已登录但无权限返回 ErrActionNotAllowed。
func (g *AuthorizationGate) CanPublish(identity string, release *db.Release) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return ErrNotAuthenticated
	}
	if g.IsPrivileged(identity) {
		return nil
	}
	if release != nil && release.OwnerID != "" && release.OwnerID == identity {
		return nil
	}
	return ErrActionNotAllowed
}
