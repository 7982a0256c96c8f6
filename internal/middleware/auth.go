package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/config"
	"artisan-marketplace-backend/internal/logging"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "user_role"

	AccessTokenCookie  = "sb-access-token"
	RefreshTokenCookie = "sb-refresh-token"

	refreshCookieMaxAge = 60 * 60 * 24 * 30
)

var errNoCredentials = errors.New("no credentials")

// Session is a fresh token pair issued by the auth provider.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// SessionRefresher exchanges a refresh token for a new session.
type SessionRefresher interface {
	RefreshSession(ctx context.Context, refreshToken string) (*Session, error)
}

// RoleResolver looks up the marketplace role of a user.
type RoleResolver interface {
	GetUserRole(ctx context.Context, userID uuid.UUID) (models.Role, error)
}

// Authenticator verifies Supabase access tokens from the session cookie or
// the Authorization header and refreshes expired sessions.
type Authenticator struct {
	secret       []byte
	refresher    SessionRefresher
	roles        RoleResolver
	cookieDomain string
	cookieSecure bool
}

func NewAuthenticator(cfg *config.Config, refresher SessionRefresher, roles RoleResolver) *Authenticator {
	return &Authenticator{
		secret:       []byte(cfg.SupabaseJWTSecret),
		refresher:    refresher,
		roles:        roles,
		cookieDomain: cfg.CookieDomain,
		cookieSecure: cfg.CookieSecure,
	}
}

// Required rejects requests without a valid session with 401.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.authenticate(c); err != nil {
			if appErr, ok := apperrors.As(err); ok {
				AbortWithError(c, appErr)
				return
			}
			logging.FromContext(c).WithError(err).Debug("authentication failed")
			AbortWithError(c, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		c.Next()
	}
}

// Optional attaches the caller's identity when a valid session is present and
// lets anonymous requests through.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.authenticate(c); err != nil {
			if appErr, ok := apperrors.As(err); ok && appErr.Code == apperrors.CodeInternal {
				AbortWithError(c, appErr)
				return
			}
		}
		c.Next()
	}
}

func (a *Authenticator) authenticate(c *gin.Context) error {
	token := a.extractToken(c)

	var claims jwt.RegisteredClaims
	err := errNoCredentials
	if token != "" {
		claims, err = a.parse(token)
	}
	if err != nil && (errors.Is(err, errNoCredentials) || errors.Is(err, jwt.ErrTokenExpired)) {
		claims, err = a.refresh(c)
	}
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return errors.New("token subject is not a user id")
	}

	role, err := a.roles.GetUserRole(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return apperrors.Wrap(apperrors.CodeInternal, "failed to resolve user role", err)
	}

	c.Set(UserIDKey, userID)
	c.Set(RoleKey, role)
	logging.WithLogger(c, logging.FromContext(c).WithField("user_id", userID.String()))
	return nil
}

func (a *Authenticator) extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	// gin unescapes cookie values, so URL-encoded tokens arrive decoded.
	cookie, err := c.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie
}

func (a *Authenticator) parse(tokenString string) (jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	if len(a.secret) == 0 {
		return claims, jwt.ErrSignatureInvalid
	}

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return claims, err
	}
	if claims.Subject == "" {
		return claims, errors.New("missing user id in token")
	}
	return claims, nil
}

func (a *Authenticator) refresh(c *gin.Context) (jwt.RegisteredClaims, error) {
	refreshToken, err := c.Cookie(RefreshTokenCookie)
	if err != nil || refreshToken == "" || a.refresher == nil {
		return jwt.RegisteredClaims{}, errNoCredentials
	}

	session, err := a.refresher.RefreshSession(c.Request.Context(), refreshToken)
	if err != nil {
		a.clearCookies(c)
		return jwt.RegisteredClaims{}, err
	}

	claims, err := a.parse(session.AccessToken)
	if err != nil {
		return claims, err
	}

	a.setCookies(c, session)
	logging.FromContext(c).WithField("user_id", claims.Subject).Debug("refreshed session")
	return claims, nil
}

func (a *Authenticator) setCookies(c *gin.Context, session *Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, session.AccessToken, session.ExpiresIn, "/", a.cookieDomain, a.cookieSecure, true)
	c.SetCookie(RefreshTokenCookie, session.RefreshToken, refreshCookieMaxAge, "/", a.cookieDomain, a.cookieSecure, true)
}

func (a *Authenticator) clearCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, "", -1, "/", a.cookieDomain, a.cookieSecure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", a.cookieDomain, a.cookieSecure, true)
}

// RequireRole lets the request through only when the caller holds role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) == role {
			c.Next()
			return
		}
		switch role {
		case models.RoleClient:
			AbortWithError(c, apperrors.New(apperrors.CodeClientRoleRequired, "client role required"))
		case models.RoleArtisan:
			AbortWithError(c, apperrors.New(apperrors.CodeArtisanRoleRequired, "artisan role required"))
		default:
			AbortWithError(c, apperrors.New(apperrors.CodeForbidden, "forbidden"))
		}
	}
}

// UserID returns the authenticated user, if any.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Role returns the authenticated user's role, or "" when unknown.
func Role(c *gin.Context) models.Role {
	v, ok := c.Get(RoleKey)
	if !ok {
		return ""
	}
	role, _ := v.(models.Role)
	return role
}
