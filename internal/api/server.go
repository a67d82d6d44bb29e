// Package api serves the public HTTP surface: account registration and
// login, feed registration, and per-user feed listings.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/lmoran/feedreg/internal/feedreg"
	"github.com/lmoran/feedreg/internal/serverutil"
)

type (
	// Server is an instance of the feed registration server.
	Server struct {
		*http.Server

		accounts *feedreg.Accounts
		feeds    *feedreg.Feeds
		repo     feedreg.Repository
	}

	ServerConfig struct {
		Port       int
		CORSOrigin string
	}
)

func NewServer(config ServerConfig, accounts *feedreg.Accounts, feeds *feedreg.Feeds, repo feedreg.Repository) *Server {
	r := serverutil.ErrRouter{Router: mux.NewRouter()}

	srvr := Server{
		accounts: accounts,
		feeds:    feeds,
		repo:     repo,
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			Handler: handlers.CORS(
				handlers.AllowedOrigins([]string{config.CORSOrigin}),
				handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
				handlers.AllowedHeaders([]string{"content-type", "authorization"}),
			)(r),
		},
	}

	r.Use(serverutil.AccessLogMiddleware) // Log everything
	r.MethodNotAllowedHandler = serverutil.MethodNotAllowedHandler()
	r.NotFoundHandler = serverutil.NotFoundHandler()

	r.HandleFuncE("/users/register", srvr.postRegister).Methods(http.MethodPost)
	r.HandleFuncE("/users/login", srvr.postLogin).Methods(http.MethodPost)

	authed := serverutil.ErrRouter{Router: r.NewRoute().Subrouter()}
	authed.MethodNotAllowedHandler = serverutil.MethodNotAllowedHandler()
	authed.Use(requireTokenMiddleware(repo))

	authed.HandleFuncE("/feeds/add", srvr.postAddFeed).Methods(http.MethodPost)
	authed.HandleFuncE("/feeds", srvr.getFeeds).Methods(http.MethodGet)
	authed.HandleFuncE("/test", srvr.getTest).Methods(http.MethodGet)

	slog.Debug("configured api server", "port", config.Port)

	return &srvr
}
