package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	v1 "github.com/Xunop/e-library/internal/api/v1"
	"github.com/Xunop/e-library/internal/config"
	"github.com/Xunop/e-library/internal/controller"
	"github.com/Xunop/e-library/internal/http/response"
	"github.com/Xunop/e-library/internal/log"
	"github.com/Xunop/e-library/internal/middleware"
	"github.com/Xunop/e-library/internal/session"
	"github.com/Xunop/e-library/internal/store"
	"github.com/Xunop/e-library/internal/version"
	"github.com/Xunop/e-library/internal/web"
)

// StartServer starts the HTTP server in the background.
func StartServer(opts *config.Options, store *store.Store) (*http.Server, error) {
	handler, err := NewHandler(store, time.Duration(opts.SessionIdleTimeout)*time.Minute)
	if err != nil {
		return nil, err
	}
	server := &http.Server{
		Addr:              opts.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	startHTTPServer(server)

	return server, nil
}

// Shutdown waits up to timeout for in-flight requests to finish.
func Shutdown(server *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.Shutdown(ctx)
}

func startHTTPServer(server *http.Server) {
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()
}

// NewHandler builds the router serving the page, the JSON API and the
// health endpoints. Browser sessions unused for idleTimeout are dropped.
func NewHandler(store *store.Store, idleTimeout time.Duration) (http.Handler, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Use(middleware.ClientIP)
	router.Use(middleware.LoggingRequest)
	router.NotFoundHandler = http.HandlerFunc(response.NotFound)

	page := &pageHandler{
		controller: controller.NewController(store),
		sessions:   session.NewManager(idleTimeout),
		cookies:    newCookieStore(),
		renderer:   renderer,
	}
	page.routes(router)

	v1.Server(router, v1.NewHandler(store))

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			log.Error("Health check failed", zap.Error(err))
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}

		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	return router, nil
}

// newCookieStore signs session cookies with a key generated at start. The
// cookie lasts for the browser session, idle expiry is left to the
// session.Manager.
func newCookieStore() *sessions.CookieStore {
	cs := sessions.NewCookieStore(securecookie.GenerateRandomKey(32))
	cs.Options.HttpOnly = true
	cs.Options.SameSite = http.SameSiteLaxMode
	cs.MaxAge(0)
	return cs
}
