package dto

import "quant_backend/internal/feature/indicators/domain/entity"

// IndicatorResponse は指標付き日足1本分のレスポンスDTOです。
type IndicatorResponse struct {
	Date string `json:"date"` // 日付 (YYYY-MM-DD)
	entity.IndicatorRow
}
