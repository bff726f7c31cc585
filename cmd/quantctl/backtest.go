package main

import (
	"strings"

	"quant_backend/internal/app/di"
	"quant_backend/internal/feature/backtest/domain/entity"
	backtestusecase "quant_backend/internal/feature/backtest/usecase"

	"github.com/spf13/cobra"
	"github.com/volatiletech/null"
)

func newBacktestCmd(open opener) *cobra.Command {
	var (
		req                backtestusecase.Request
		start, end         string
		cash, commission   float64
		fast, slow, signal int
		trades             bool
	)

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Run a long-only strategy over stored daily bars",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseRange(start, end)
			if err != nil {
				return err
			}
			req.Start, req.End = from, to
			// 未指定のフラグはユースケースの既定値に任せる
			if cmd.Flags().Changed("cash") {
				req.InitialCash = null.Float64From(cash)
			}
			if cmd.Flags().Changed("commission") {
				req.Commission = null.Float64From(commission)
			}
			req.Params = entity.Params{FastPeriod: fast, SlowPeriod: slow, SignalPeriod: signal}

			return withContainer(cmd, open, func(c *di.Container) error {
				res, err := c.Backtests.RunBacktest(cmd.Context(), req)
				if err != nil {
					return err
				}
				renderResult(cmd.OutOrStdout(), res)
				if trades {
					renderTrades(cmd.OutOrStdout(), res.Trades)
				}
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Symbol, "symbol", "", "instrument symbol")
	f.StringVar(&req.Strategy, "strategy", backtestusecase.StrategyMACross, "strategy: "+strings.Join(backtestusecase.Strategies, ", "))
	f.StringVar(&start, "start", "", "first day, YYYY-MM-DD")
	f.StringVar(&end, "end", "", "last day, YYYY-MM-DD")
	f.Float64Var(&cash, "cash", backtestusecase.DefaultInitialCash, "initial cash")
	f.Float64Var(&commission, "commission", backtestusecase.DefaultCommission, "commission rate per side")
	f.IntVar(&fast, "fast", 0, "fast period (0: strategy default)")
	f.IntVar(&slow, "slow", 0, "slow period (0: strategy default)")
	f.IntVar(&signal, "signal", 0, "MACD signal period (0: strategy default)")
	f.BoolVar(&trades, "trades", false, "also print the trade log")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}
