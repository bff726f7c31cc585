package usecase

import (
	"math"

	"quant_backend/internal/feature/backtest/domain/entity"
	candle "quant_backend/internal/feature/candles/domain/entity"
	"quant_backend/internal/feature/indicators/calc"
	"quant_backend/internal/shared/apperr"
)

// position は1回の実行中だけ使う可変の状態です。
type position struct {
	cash     float64
	quantity int64
	entry    float64
}

func (p *position) long() bool { return p.quantity > 0 }

// Simulate は series に s を適用し、終値でのみ売買します。
// 最後まで残ったポジションは決済せず、最終終値で評価します。
func Simulate(series []candle.Candle, s Strategy, c calc.Calculator, cash, commission float64) ([]entity.Trade, []entity.EquityPoint, error) {
	signals := s.Signals(candle.Closes(series), c)
	pos := position{cash: cash}
	trades := make([]entity.Trade, 0)
	curve := make([]entity.EquityPoint, 0, len(series))

	for i, bar := range series {
		switch {
		case !pos.long() && signals[i] == SignalEntry:
			if bar.Close <= 0 {
				return nil, nil, apperr.Computef("entry on %s at non-positive close %v",
					bar.Date.Format("2006-01-02"), bar.Close)
			}
			qty := int64(math.Floor(pos.cash / (bar.Close * (1 + commission))))
			if qty <= 0 {
				break
			}
			gross := float64(qty) * bar.Close
			pos.cash -= gross * (1 + commission)
			pos.quantity = qty
			pos.entry = bar.Close
			trades = append(trades, entity.Trade{
				Side: entity.SideBuy, Date: bar.Date, Price: bar.Close, Quantity: qty, Commission: gross * commission,
			})
		case pos.long() && signals[i] == SignalExit:
			gross := float64(pos.quantity) * bar.Close
			pos.cash += gross * (1 - commission)
			trades = append(trades, entity.Trade{
				Side: entity.SideSell, Date: bar.Date, Price: bar.Close, Quantity: pos.quantity, Commission: gross * commission,
			})
			pos.quantity = 0
			pos.entry = 0
		}
		curve = append(curve, entity.EquityPoint{Date: bar.Date, Value: pos.cash + float64(pos.quantity)*bar.Close})
	}
	return trades, curve, nil
}
