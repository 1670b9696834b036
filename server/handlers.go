package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopstack/shoprec/core"
	"github.com/shopstack/shoprec/service"
)

// suggestedProductsResponse 是协同过滤端点的响应包装。
type suggestedProductsResponse struct {
	SuggestedProducts []service.SuggestedProduct `json:"suggestedProducts"`
}

// errorResponse 是统一的错误响应体。
type errorResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleProductRecommendations(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	recs, err := s.rec.RecommendProducts(r.Context(), productID)
	if err != nil {
		// 查询商品不存在是调用方的问题，区别于上游读取失败
		if core.IsNotFound(err) {
			s.writeJSON(w, http.StatusNotFound, errorResponse{Message: "product not found"})
			return
		}
		s.log.Error().Err(err).Str("product_id", productID).Msg("product recommendations failed")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
		return
	}

	s.writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleUserRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	recs, err := s.rec.RecommendForUser(r.Context(), userID)
	if err != nil {
		// 无历史用户在 service 层就得到空列表；走到这里的都是上游失败
		s.log.Error().Err(err).Str("user_id", userID).Msg("user recommendations failed")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
		return
	}

	s.writeJSON(w, http.StatusOK, suggestedProductsResponse{SuggestedProducts: recs})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("write response failed")
	}
}
