package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/shopstack/shoprec/service"
)

// Server 暴露推荐服务的 HTTP 面：
//
//	GET /recommendations/products/{productId} -> [ { product, similarity }, ... ]
//	GET /recommendations/users/{userId}       -> { suggestedProducts: [...] }
//
// 仅路由与编解码；计算全部在 service.Recommender 里。
type Server struct {
	rec *service.Recommender
	log zerolog.Logger
}

func New(rec *service.Recommender, log zerolog.Logger) *Server {
	return &Server{rec: rec, log: log}
}

// Handler 组装路由与中间件。
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/recommendations", func(r chi.Router) {
		r.Get("/products/{productId}", s.handleProductRecommendations)
		r.Get("/users/{userId}", s.handleUserRecommendations)
	})

	return r
}

// requestLogger 是基于 zerolog 的访问日志中间件。
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
