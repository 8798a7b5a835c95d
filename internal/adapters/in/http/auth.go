package http

import (
	"net/http"
	"strings"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	actorKey    = "actor"
	tokenCookie = "jwt"
	tokenQuery  = "access_token"
)

// Claims carried by access tokens. Tokens issued by older clients name the
// subject "id" and the role "type"; both spellings are accepted.
type Claims struct {
	Role       string `json:"role,omitempty"`
	LegacyRole string `json:"type,omitempty"`
	LegacyID   string `json:"id,omitempty"`
	Verified   bool   `json:"verified"`
	jwt.RegisteredClaims
}

// Authenticator turns HS256 access tokens into actors.
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Actor validates the token and builds the identity it carries.
//
// Returns:
//   - identity.Actor: the caller
//   - error: UnauthorizedError for any bad token
func (a *Authenticator) Actor(token string) (identity.Actor, error) {
	var claims Claims
	if _, err := a.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}); err != nil {
		return identity.Actor{}, errs.NewUnauthorizedError(err)
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.LegacyID
	}
	id, err := kernel.UUIDFromString(subject)
	if err != nil {
		return identity.Actor{}, errs.NewUnauthorizedError(err)
	}

	roleName := claims.Role
	if roleName == "" {
		roleName = claims.LegacyRole
	}
	role, err := identity.ParseRole(roleName)
	if err != nil {
		return identity.Actor{}, errs.NewUnauthorizedError(err)
	}

	actor, err := identity.NewActor(id, role, claims.Verified)
	if err != nil {
		return identity.Actor{}, errs.NewUnauthorizedError(err)
	}
	return actor, nil
}

// Middleware rejects requests without a valid token and stores the actor on
// the context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token == "" {
				return writeError(c, errs.NewUnauthorizedError(nil))
			}
			actor, err := a.Actor(token)
			if err != nil {
				return writeError(c, err)
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// bearerToken reads the Authorization header, then the session cookie, then
// the query string used by EventSource clients that cannot set headers.
func bearerToken(r *http.Request) string {
	if header := r.Header.Get(echo.HeaderAuthorization); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	if cookie, err := r.Cookie(tokenCookie); err == nil {
		return cookie.Value
	}
	return r.URL.Query().Get(tokenQuery)
}

func actorFrom(c echo.Context) (identity.Actor, error) {
	actor, ok := c.Get(actorKey).(identity.Actor)
	if !ok {
		return identity.Actor{}, errs.NewUnauthorizedError(nil)
	}
	return actor, nil
}
