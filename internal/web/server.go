package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"teamladder/internal/back"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/", noContent)

	r.Route("/v1/community/{communityID}", func(r chi.Router) {
		r.Get("/leaderboard/{mode}", s.getLeaderboard)
		r.Get("/player/{playerID}", s.getMembership)
		r.Get("/matches", s.getMatches)
	})

	return r
}

type Server struct {
	http *http.Server
	back *back.Back
}

func NewServer(back *back.Back, addr string) *Server {
	s := &Server{
		back: back,
	}

	s.http = &http.Server{
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  10 * time.Second,
		Handler:      s.setupRouter(),
	}

	return s
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Serve answers HTTP requests until done is closed.
func (s *Server) Serve(done <-chan struct{}) error {
	log.Printf("info: starting HTTP server on %s", s.http.Addr)

	crashed := make(chan error, 1)
	go func() {
		err := s.http.ListenAndServe()
		if err == http.ErrServerClosed {
			log.Println("info: HTTP server closed")
			return
		}

		crashed <- err
	}()

	select {
	case err := <-crashed:
		return fmt.Errorf("webserver crashed: %w", err)
	case <-done:
	}

	if err := s.http.Close(); err != nil {
		return fmt.Errorf("unable to close webserver: %w", err)
	}

	return nil
}

func (s *Server) response(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	response, err := json.Marshal(data)
	if err != nil {
		log.Printf("error: unable to marshal response: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)

	if _, err := w.Write(response); err != nil {
		log.Printf("error: unable to send response: %s", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// error replies with the status matching err, only expected failures have
// their message sent back.
func (s *Server) error(w http.ResponseWriter, err error) {
	var failure *back.Failure
	if !errors.As(err, &failure) || errors.Is(err, back.ErrPersistence) {
		log.Printf("error: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	code := http.StatusBadRequest
	switch failure.Kind {
	case back.FailureNotFound, back.FailureEmptyLeaderboard:
		code = http.StatusNotFound
	}

	s.response(w, code, errorResponse{Error: failure.Error()})
}

func (s *Server) badRequest(w http.ResponseWriter, format string, args ...interface{}) {
	s.response(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf(format, args...)})
}

func (s *Server) cache(w http.ResponseWriter, scope string, d time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("%s,max-age=%d", scope, d/time.Second))
}
