package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"heyjob-backend/internal/delivery/http/response"
	"heyjob-backend/internal/domain"
	"heyjob-backend/pkg/apperror"
	"heyjob-backend/pkg/auth"
	"heyjob-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the identity provider's bearer token (HS256 with
// the shared secret, RS256 through JWKS) and records the principal.
func AuthMiddleware(jwksProvider *auth.Provider, jwtSecret string, authUC domain.AuthUsecase) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			if jwtSecret == "" {
				return nil, errors.New("HS256 token received but JWT_SECRET is not configured")
			}
			return []byte(jwtSecret), nil
		case *jwt.SigningMethodRSA:
			if !jwksProvider.Configured() {
				return nil, errors.New("RS256 token received but JWKS_URL is not configured")
			}
			return jwksProvider.KeyFunc(token)
		default:
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
	}

	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc,
			jwt.WithValidMethods([]string{"HS256", "RS256"}),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			logger.Log.Warn("Token validation failed", "error", err, "request_id", c.GetString(string(domain.KeyRequestID)))
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}
		phone, _ := claims["phone_number"].(string)
		if phone == "" {
			phone, _ = claims["phone"].(string)
		}
		email, _ := claims["email"].(string)

		if err := authUC.EnsureUser(c.Request.Context(), &domain.User{ID: sub, Phone: phone, Email: email}); err != nil {
			if apperror.KindOf(err) == apperror.KindValidation {
				response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
				c.Abort()
				return
			}
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserPhone), phone)
		c.Set(string(domain.KeyUserEmail), email)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), domain.KeyUserID, sub))

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}
