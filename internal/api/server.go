package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/container"
)

// ServiceName имя сервиса в служебных ответах API.
const ServiceName = "Infrastructure Inspection API"

// Version версия сервиса.
const Version = "1.0.0"

// maxUploadSize ограничение на размер загружаемого изображения.
const maxUploadSize = 20 << 20 // 20 MiB

// Server HTTP-интерфейс сервиса инспекции.
type Server struct {
	router    chi.Router
	container *container.Container
}

// NewServer создаёт HTTP-сервер поверх собранных сервисов.
func NewServer(c *container.Container) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		container: c,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Use(corsMiddleware)

	r.Get("/", s.handleRoot)
	r.Route("/api", func(r chi.Router) {
		r.Post("/inspect", s.handleInspect)
		r.Get("/health", s.handleHealth)
	})
}

// ServeHTTP реализует http.Handler, чтобы сервер можно было
// поднимать в httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run запускает сервер на указанном адресе и блокируется до ошибки.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}
	return srv.ListenAndServe()
}

// corsMiddleware разрешает запросы фронтенда с других источников.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
