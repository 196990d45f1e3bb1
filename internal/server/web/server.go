// Package web serves the HTML front end: account pages, the note
// dashboard and the administrator view.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address       string
	logger        logging.Logger
	users         *services.UserService
	notes         *services.NoteService
	sessions      *services.SessionService
	secureCookies bool
	templates     *template.Template
}

func NewServer(addr string, l logging.Logger, us *services.UserService, ns *services.NoteService, ss *services.SessionService, secureCookies bool) (*Server, error) {
	t, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Server{
		address:       addr,
		logger:        l.With("module", "web_server"),
		users:         us,
		notes:         ns,
		sessions:      ss,
		secureCookies: secureCookies,
		templates:     t,
	}, nil
}

// Handler returns the routed handler with access logging.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.accessLog)

	user := s.Require(common.RoleUser)
	admin := s.Require(common.RoleAdmin)

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { seeOther(w, r, "/login") }).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/register", s.handleRegisterPage).Methods(http.MethodGet)
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodGet, http.MethodPost)

	r.Handle("/dashboard", user(http.HandlerFunc(s.handleDashboard))).Methods(http.MethodGet)
	r.Handle("/add-note", user(http.HandlerFunc(s.handleAddNotePage))).Methods(http.MethodGet)
	r.Handle("/add-note", user(http.HandlerFunc(s.handleAddNote))).Methods(http.MethodPost)
	r.Handle("/edit-note/{id}", user(http.HandlerFunc(s.handleEditNotePage))).Methods(http.MethodGet)
	r.Handle("/edit-note/{id}", user(http.HandlerFunc(s.handleEditNote))).Methods(http.MethodPost)
	r.Handle("/delete-note/{id}", user(http.HandlerFunc(s.handleDeleteNote))).Methods(http.MethodPost)

	r.Handle("/admin/dashboard", admin(http.HandlerFunc(s.handleAdminDashboard))).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping web server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting web server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
