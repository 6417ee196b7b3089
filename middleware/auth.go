package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"munchmarket/utils"
)

// Key type for context
type contextKey string

const (
	UserContextKey    = contextKey("user")
	SessionContextKey = contextKey("session")
)

// SessionHeader carries the shopper's session ID; the cart is scoped to it.
const SessionHeader = "X-Session-ID"

const sessionCookie = "mm_session"

// Session ensures every request has a session ID and attaches claims
// when a valid bearer token is present. Unauthenticated requests pass
// through; handlers that need auth gate on the claims themselves.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := r.Header.Get(SessionHeader)
		if sid == "" {
			if c, err := r.Cookie(sessionCookie); err == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
			})
		}
		w.Header().Set(SessionHeader, sid)

		ctx := context.WithValue(r.Context(), SessionContextKey, sid)

		if claims, ok := bearerClaims(r); ok {
			ctx = context.WithValue(ctx, UserContextKey, claims)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthMiddleware verifies JWT tokens and attaches user information to the context
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := bearerClaims(r)
		if !ok {
			http.Error(w, "Invalid or missing token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SellerMiddleware ensures that the user signed up as a seller
func SellerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok || claims.UserType != "seller" {
			http.Error(w, "Forbidden: Sellers only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFrom returns the authenticated user's claims, if any.
func ClaimsFrom(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*utils.Claims)
	return claims, ok
}

// SessionFrom returns the request's session ID.
func SessionFrom(ctx context.Context) string {
	sid, _ := ctx.Value(SessionContextKey).(string)
	return sid
}

func bearerClaims(r *http.Request) (*utils.Claims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := utils.ParseToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}
