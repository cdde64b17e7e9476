package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/apierror"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/model"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	ProfileKey = "profile"
)

// ProfileLoader resolves the profile of an authenticated user.
type ProfileLoader interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
}

// JWTAuth validates the Bearer token issued by the auth platform, whose subject
// is the user's UUID, and attaches that user's profile to the context.
func JWTAuth(secret string, profiles ProfileLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New(apierror.CodeUnauthorized, "Authentication required"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New(apierror.CodeUnauthorized, "Invalid or expired token"))
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New(apierror.CodeUnauthorized, "Invalid or expired token"))
			return
		}

		profile, err := profiles.GetProfile(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, apierror.New(apierror.CodeProfileMissing, "No profile is linked to this account"))
				return
			}
			log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("auth: profile lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.Internal())
			return
		}

		c.Set(ProfileKey, profile)
		c.Next()
	}
}

// Require rejects requests whose profile does not satisfy any of the checks.
func Require(checks ...func(*model.Profile) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetProfile(c)
		if p != nil {
			for _, ok := range checks {
				if ok(p) {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.New(apierror.CodeForbidden, "You do not have permission for this action"))
	}
}

func CanCloseRegister(p *model.Profile) bool { return p.CanCloseRegister }

func IsManager(p *model.Profile) bool { return p.IsManager() }

func IsAdmin(p *model.Profile) bool { return p.IsAdmin() }

// GetProfile is a helper to retrieve the acting profile from the Gin context.
func GetProfile(c *gin.Context) *model.Profile {
	v, ok := c.Get(ProfileKey)
	if !ok {
		return nil
	}
	p, _ := v.(*model.Profile)
	return p
}
