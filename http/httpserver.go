package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/google/uuid"
	contacthttp "github.com/programme-lv/contactform/contact/http"
	"github.com/programme-lv/contactform/conf"
	"github.com/programme-lv/contactform/logger"
)

const requestIDHeader = "X-Request-Id"

type HttpServer struct {
	router  *chi.Mux
	address string
}

func NewHttpServer(cfg conf.ServerConfig, contactHandler *contacthttp.ContactHttpHandler) *HttpServer {
	router := chi.NewRouter()

	httpLogger := httplog.NewLogger("contactform", httplog.Options{
		LogLevel:         logger.ParseLevel(cfg.LogLevel),
		JSON:             cfg.LogJSON,
		Concise:          true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(httpLogger))
	router.Use(requestContext)
	router.Use(middleware.Recoverer)

	// Without configured origins there is no preflight handling and OPTIONS
	// is answered like any other non-POST verb.
	if len(cfg.AllowedOrigins) > 0 {
		corsMiddleware := cors.New(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"POST"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         3000,
		})
		router.Use(corsMiddleware.Handler)
	}

	contactHandler.RegisterRoutes(router)

	return &HttpServer{
		router:  router,
		address: cfg.Address,
	}
}

func (httpserver *HttpServer) Handler() http.Handler {
	return httpserver.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (httpserver *HttpServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              httpserver.address,
		Handler:           httpserver.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// requestContext puts the request-scoped logger, tagged with a request id,
// into the context for the services below.
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := r.Context()
		httplog.LogEntrySetField(ctx, "request_id", slog.StringValue(requestID))
		ctx = logger.WithLogger(ctx, httplog.LogEntry(ctx))
		ctx = logger.WithRequestID(ctx, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
