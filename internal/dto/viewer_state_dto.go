package dto

import (
	"prep-tool-be/pkg/confidence"
	"prep-tool-be/pkg/practice"
)

type RateConfidenceRequest struct {
	Level *int `json:"level" validate:"required,min=0,max=5"`
}

type ConfidenceResponse struct {
	Ratings confidence.Ratings `json:"ratings"`
	Summary confidence.Summary `json:"summary"`
}

type PracticeHistoryResponse struct {
	History []practice.HistoryEntry `json:"history"`
}
