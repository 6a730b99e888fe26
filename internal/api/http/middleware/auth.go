package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
)

// authorizationHeader - имя заголовка авторизации
const authorizationHeader = "Authorization"

// Auth проверяет токен в заголовке "Authorization: Bearer <token>".
// Пустой token отключает проверку. Preflight запросы OPTIONS пропускаются.
func Auth(next http.Handler, token string) http.Handler {
	if token == "" {
		return next
	}
	expected := []byte(token)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get(authorizationHeader)
		if authHeader == "" {
			log.Printf("[HTTP] Unauthenticated %s %s: authorization header not provided", r.Method, r.URL.Path)
			http.Error(w, "authorization header not provided", http.StatusUnauthorized)
			return
		}

		// Проверяем формат токена (должен начинаться с "Bearer ")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		got := []byte(strings.TrimPrefix(authHeader, "Bearer "))
		if subtle.ConstantTimeCompare(got, expected) != 1 {
			log.Printf("[HTTP] Unauthenticated %s %s: invalid token", r.Method, r.URL.Path)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
