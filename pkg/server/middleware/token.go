package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atol-data/metadata-broker/pkg/audit"
	"github.com/atol-data/metadata-broker/pkg/identity"
)

// TokenAuthenticator is middleware that validates bearer tokens signed with
// the broker's HMAC key.
type TokenAuthenticator struct {
	Key []byte
}

// NewTokenAuthenticator creates a new token authenticator middleware
func NewTokenAuthenticator(key []byte) *TokenAuthenticator {
	return &TokenAuthenticator{Key: key}
}

// Issue signs a token for a login with the given roles. The inverse of the
// middleware, used by the token CLI command and by tests.
func Issue(key []byte, login string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   login,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// Middleware returns an HTTP middleware that validates bearer tokens and
// stores the resulting identity on the request context.
func (t *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenStr, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		remoteIP := clientIP(r)

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return t.Key, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			audit.Log(audit.AuthenticateEvent{
				ClientIP:     remoteIP.String(),
				Success:      false,
				ErrorMessage: "invalid token",
			})
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid token claims"))
			return
		}

		login, _ := claims["sub"].(string)
		if login == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Token missing subject"))
			return
		}

		id := &identity.Identity{
			Login:    login,
			Roles:    claimRoles(claims),
			RemoteIP: remoteIP,
		}
		if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
			id.IssuedAt = iat.Time
		}
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			id.ExpiresAt = exp.Time
		}

		r = r.WithContext(identity.Set(r.Context(), id))
		next.ServeHTTP(w, r)
	})
}

// claimRoles extracts the roles claim. JSON decoding delivers it as a slice
// of interface{} values.
func claimRoles(claims jwt.MapClaims) []string {
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if role, ok := r.(string); ok {
			roles = append(roles, role)
		}
	}
	return roles
}

func clientIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}
