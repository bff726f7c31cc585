package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"quant_backend/internal/feature/backtest/domain/entity"
	candleusecase "quant_backend/internal/feature/candles/usecase"

	"github.com/olekukonko/tablewriter"
)

func renderResult(w io.Writer, r entity.Result) {
	fmt.Fprintf(w, "%s %s %s..%s\n", r.Symbol, r.Strategy, r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.AppendBulk([][]string{
		{"Initial cash", money(r.InitialCash)},
		{"Final value", money(r.FinalValue)},
		{"Total return", percent(r.TotalReturn)},
		{"Annual return", percent(r.AnnualReturn)},
		{"Sharpe ratio", strconv.FormatFloat(r.SharpeRatio, 'f', 3, 64)},
		{"Max drawdown", fmt.Sprintf("%.2f%%", r.MaxDrawdown)},
		{"Max drawdown bars", strconv.Itoa(r.MaxDrawdownLen)},
		{"Trades", strconv.Itoa(len(r.Trades))},
	})
	table.Render()
}

func renderTrades(w io.Writer, trades []entity.Trade) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Side", "Price", "Quantity", "Commission"})
	for _, t := range trades {
		table.Append([]string{
			t.Date.Format(time.DateOnly),
			string(t.Side),
			money(t.Price),
			strconv.FormatInt(t.Quantity, 10),
			money(t.Commission),
		})
	}
	table.Render()
}

func renderBatch(w io.Writer, s candleusecase.BatchSummary) {
	fmt.Fprintf(w, "batch %s..%s: %d/%d succeeded\n",
		s.Start.Format(time.DateOnly), s.End.Format(time.DateOnly), s.Succeeded(), len(s.Results))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Symbol", "Market", "Name", "Rows", "Error"})
	for _, r := range s.Results {
		msg := ""
		if r.Err != nil {
			msg = r.Err.Error()
		}
		table.Append([]string{r.Symbol, string(r.Market), r.Name, strconv.Itoa(r.Rows), msg})
	}
	table.Render()
}

func renderOptimization(w io.Writer, o entity.Optimization) {
	fmt.Fprintf(w, "%s %s: %d/%d combinations succeeded\n", o.Symbol, o.Strategy, len(o.Runs), o.Combinations)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Fast", "Slow", "Signal", "Total return", "Annual return", "Sharpe", "Max drawdown", "Trades", "Best"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i := range o.Runs {
		r := &o.Runs[i]
		var marks []string
		for _, b := range []struct {
			label string
			best  *entity.Result
		}{{"return", o.BestByReturn}, {"sharpe", o.BestBySharpe}, {"annual", o.BestByAnnual}} {
			if b.best == r {
				marks = append(marks, b.label)
			}
		}
		table.Append([]string{
			strconv.Itoa(r.Params.FastPeriod),
			strconv.Itoa(r.Params.SlowPeriod),
			strconv.Itoa(r.Params.SignalPeriod),
			percent(r.TotalReturn),
			percent(r.AnnualReturn),
			strconv.FormatFloat(r.SharpeRatio, 'f', 3, 64),
			fmt.Sprintf("%.2f%%", r.MaxDrawdown),
			strconv.Itoa(len(r.Trades)),
			strings.Join(marks, ","),
		})
	}
	table.Render()

	for _, f := range o.Failed {
		fmt.Fprintf(w, "failed %+v: %v\n", f.Params, f.Err)
	}
}

func money(v float64) string   { return strconv.FormatFloat(v, 'f', 2, 64) }
func percent(v float64) string { return strconv.FormatFloat(v*100, 'f', 2, 64) + "%" }
