package dto

import "github.com/volatiletech/null"

// CandleResponse はロウソク足データのレスポンスDTOです。
type CandleResponse struct {
	Date     string       `json:"date"`     // 日付 (YYYY-MM-DD)
	Open     float64      `json:"open"`     // 始値
	High     float64      `json:"high"`     // 高値
	Low      float64      `json:"low"`      // 安値
	Close    float64      `json:"close"`    // 終値
	Volume   int64        `json:"volume"`   // 出来高
	Amount   null.Float64 `json:"amount"`   // 売買代金
	Turnover null.Float64 `json:"turnover"` // 換手率 (%)
}
