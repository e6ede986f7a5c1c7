package server

import (
	"net/http"

	"go.uber.org/zap"

	"slidegen/internal/gateway/handler"
	"slidegen/internal/gateway/middleware"
)

func NewMux(h *handler.Handler, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	h.Register(mux)
	return middleware.Chain(mux,
		middleware.Logging(logger),
		middleware.Recover(logger),
		middleware.CORS,
	)
}
