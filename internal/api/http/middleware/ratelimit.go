package middleware

import (
	"log"
	"net"
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// maxTrackedClients - сколько клиентских лимитеров держится одновременно
const maxTrackedClients = 4096

// RateLimit ограничивает количество запросов от одного клиента (по IP).
// rps - запросов в секунду, burst - допустимый всплеск.
// Лимитеры давно не появлявшихся клиентов вытесняются из LRU.
func RateLimit(next http.Handler, rps int, burst int) http.Handler {
	// Значения по умолчанию если не указаны
	if rps <= 0 {
		rps = 100
	}
	if burst <= 0 {
		burst = 10
	}

	limiters, err := lru.New[string, *rate.Limiter](maxTrackedClients)
	if err != nil {
		// размер положительный, ошибки быть не может
		panic(err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r)

		limiter, ok := limiters.Get(client)
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
			// гонка двух первых запросов дает максимум один лишний лимитер
			if prev, found, _ := limiters.PeekOrAdd(client, limiter); found {
				limiter = prev
			}
		}

		if !limiter.Allow() {
			log.Printf("[HTTP] Rate limit exceeded for %s from %s", r.URL.Path, client)
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
