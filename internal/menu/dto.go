package menu

import (
	"time"

	"sales-assistant/internal/llm"
)

type analysisResponse struct {
	AnalysisID string         `json:"analysis_id"`
	MenuItems  []llm.MenuItem `json:"menu_items"`
}

type analysisDetailResponse struct {
	AnalysisID string         `json:"analysis_id"`
	Status     Status         `json:"status"`
	FileName   string         `json:"file_name"`
	MenuItems  []llm.MenuItem `json:"menu_items"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func toResponse(a Analysis) analysisResponse {
	return analysisResponse{AnalysisID: a.ID, MenuItems: nonNilItems(a.MenuItems)}
}

func toDetailResponse(a Analysis) analysisDetailResponse {
	return analysisDetailResponse{
		AnalysisID: a.ID,
		Status:     a.Status,
		FileName:   a.FileName,
		MenuItems:  nonNilItems(a.MenuItems),
		Error:      a.Error,
		CreatedAt:  a.CreatedAt,
	}
}

func nonNilItems(items []llm.MenuItem) []llm.MenuItem {
	if items == nil {
		return []llm.MenuItem{}
	}
	return items
}
