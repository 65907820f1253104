package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"key-attributes-service/config"
)

// NewRouter はルーターを生成する。
func NewRouter(h *AttributeHandler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// ミドルウェア
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)

	// ルート定義
	r.Route("/v1/keys", func(r chi.Router) {
		r.Post("/", h.RegisterKey)
		r.Get("/", h.ListKeys)
		r.Get("/{key_id}", h.GetKey)
		r.Delete("/{key_id}", h.DeleteKey)
		r.Post("/{key_id}/sign", h.Sign)
	})

	if cfg.OtelEnabled {
		return otelhttp.NewHandler(r, "key-attributes-service")
	}
	return r
}
