package auth

import (
	"strings"
)

// Claims is the validated token payload handed over by the transport.
type Claims map[string]any

const (
	claimSubject           = "sub"
	claimEmail             = "email"
	claimName              = "name"
	claimGroups            = "cognito:groups"
	claimGroupsFallback    = "groups"
	claimUsername          = "cognito:username"
	claimPreferredUsername = "preferred_username"
)

type Identity struct {
	UserID            string   `json:"userId"`
	Email             string   `json:"email"`
	Name              string   `json:"name"`
	Groups            []string `json:"groups"`
	Username          string   `json:"username,omitempty"`
	PreferredUsername string   `json:"preferredUsername,omitempty"`
}

// Anonymous is the identity of a caller without a usable credential.
var Anonymous = Identity{Groups: []string{}}

func (i Identity) IsAnonymous() bool {
	return i.UserID == ""
}

func (i Identity) InGroup(group string) bool {
	return contains(i.Groups, group)
}

// Resolve never fails: missing or malformed claims yield Anonymous and
// missing optional claims yield empty values.
func Resolve(claims Claims) Identity {
	if len(claims) == 0 {
		return Anonymous
	}
	sub := claims.str(claimSubject)
	if sub == "" {
		return Anonymous
	}
	groups := claims.list(claimGroups)
	if len(groups) == 0 {
		groups = claims.list(claimGroupsFallback)
	}
	return Identity{
		UserID:            sub,
		Email:             claims.str(claimEmail),
		Name:              claims.str(claimName),
		Groups:            groups,
		Username:          claims.str(claimUsername),
		PreferredUsername: claims.str(claimPreferredUsername),
	}
}

func (c Claims) str(key string) string {
	if s, ok := c[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// list accepts a json array or a flattened "a,b" / "[a b]" string.
func (c Claims) list(key string) []string {
	out := make([]string, 0)
	switch v := c[key].(type) {
	case []string:
		for _, s := range v {
			out = appendNonEmpty(out, s)
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = appendNonEmpty(out, s)
			}
		}
	case string:
		v = strings.Trim(strings.TrimSpace(v), "[]")
		for _, s := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
			out = appendNonEmpty(out, s)
		}
	}
	return out
}

func appendNonEmpty(dst []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		return append(dst, s)
	}
	return dst
}

func contains(arr []string, s string) bool {
	for i := range arr {
		if arr[i] == s {
			return true
		}
	}
	return false
}
