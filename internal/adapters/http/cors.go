package httpadapter

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rs/cors"
)

// corsMiddleware admits only the configured frontend origins. Every method the
// API serves and any request header are allowed for them.
func corsMiddleware(allowedOrigins []string, next http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         86400,
		Logger:         corsLogger{},
	}
	if len(allowedOrigins) == 0 {
		// rs/cors treats an empty list as "allow all".
		opts.AllowOriginFunc = func(string) bool { return false }
	}
	return cors.New(opts).Handler(next)
}

type corsLogger struct{}

func (corsLogger) Printf(format string, args ...interface{}) {
	slog.Debug("cors", "detail", fmt.Sprintf(format, args...))
}
