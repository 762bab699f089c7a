// Package auth 为单用户部署提供基于共享密钥的 Bearer Token 认证。
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSubject 未配置时使用的用户标识
const DefaultSubject = "owner"

// ErrInvalidToken token 缺失、签名错误、过期或 subject 不匹配
var ErrInvalidToken = errors.New("invalid token")

// IssueToken 使用 HS256 签发 token，ttl <= 0 表示不过期
func IssueToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("auth secret is empty")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken 校验 token 并返回 subject
func ParseToken(secret []byte, tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

type ctxKey string

const subjectKey ctxKey = "subject"

// Middleware 校验 Authorization 头
type Middleware struct {
	secret  []byte
	subject string
	onError func(w http.ResponseWriter, r *http.Request, err error)
}

// NewMiddleware 创建认证中间件，secret 为空时不做任何校验
func NewMiddleware(secret []byte, subject string, onError func(w http.ResponseWriter, r *http.Request, err error)) Middleware {
	if subject == "" {
		subject = DefaultSubject
	}
	if onError == nil {
		onError = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
	}
	return Middleware{secret: secret, subject: subject, onError: onError}
}

// Enabled 是否配置了密钥
func (m Middleware) Enabled() bool {
	return len(m.secret) > 0
}

// Wrap 包装 handler
func (m Middleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	if !m.Enabled() {
		return next
	}

	return func(w http.ResponseWriter, r *http.Request) {
		// 预检请求不带凭证
		if r.Method == http.MethodOptions {
			next(w, r)
			return
		}

		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			m.onError(w, r, fmt.Errorf("%w: missing bearer token", ErrInvalidToken))
			return
		}

		subject, err := ParseToken(m.secret, strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			m.onError(w, r, err)
			return
		}
		if subject != m.subject {
			m.onError(w, r, fmt.Errorf("%w: unexpected subject %q", ErrInvalidToken, subject))
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), subjectKey, subject)))
	}
}

// SubjectFromContext 返回已认证的 subject
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok
}
