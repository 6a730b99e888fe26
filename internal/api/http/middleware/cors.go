package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// CORS оборачивает handler в rs/cors.
// origins - список через запятую, maxAge - время кэширования preflight в секундах.
func CORS(next http.Handler, origins string, maxAge int) http.Handler {
	allowed := strings.Split(origins, ",")
	// Убираем пробелы из origins
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}

	if maxAge == 0 {
		maxAge = 86400 // 24 часа по умолчанию
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-Requested-With",
		},
		AllowCredentials: true,
		MaxAge:           maxAge,
	})
	return c.Handler(next)
}
