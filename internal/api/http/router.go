package httpapi

import (
	"net/http"

	"devnotes/internal/api/http/middleware"
	"devnotes/internal/config"
)

// NewRouter собирает mux с маршрутами API и цепочкой middleware.
// Порядок выполнения: CORS → Logging → Auth → RateLimit → handler.
func NewRouter(h *Handler, gw *config.ConfigGateway, authToken string) http.Handler {
	if gw == nil {
		gw = &config.ConfigGateway{CORSAllowedOrigins: "*"}
	}

	mux := http.NewServeMux()
	h.Register(mux)

	var handler http.Handler = mux
	handler = middleware.RateLimit(handler, gw.RateLimitRPS, gw.RateLimitBurst)
	handler = middleware.Auth(handler, authToken)
	handler = middleware.Logging(handler)
	handler = middleware.CORS(handler, gw.CORSAllowedOrigins, gw.CORSMaxAge)
	return handler
}
