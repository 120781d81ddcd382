package devserver

import (
	"strings"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/scribe/errors"
)

// bearerAuth validates HMAC-signed JWT bearer tokens. Paths under any of
// the skip prefixes bypass auth; signed upload URLs carry their own
// credential and must stay reachable without a token.
func bearerAuth(secret string, skipPrefixes ...string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range skipPrefixes {
			if strings.HasPrefix(path, skip) {
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, errors.Unauthorized("Authorization header required."))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, errors.Unauthorized("Invalid authorization header format."))
			return
		}

		token, err := gojwt.Parse(parts[1], func(t *gojwt.Token) (any, error) {
			if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
				return nil, errors.Unauthorized("Unexpected signing method.")
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			abortWithError(c, errors.Unauthorized("Invalid token."))
			return
		}

		if sub, err := token.Claims.GetSubject(); err == nil && sub != "" {
			c.Set("subject", sub)
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, err *errors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
}

// IssueToken mints a token the dev server will accept, for wiring up local
// clients.
func IssueToken(secret, subject string) (string, error) {
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub": subject,
	})
	return token.SignedString([]byte(secret))
}
