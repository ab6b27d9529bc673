package handler

import "github.com/gdugdh24/expo-networking/internal/domain"

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type RecommendationsResponse struct {
	Recommendations []domain.Recommendation `json:"recommendations"`
	Count           int                     `json:"count"`
}
