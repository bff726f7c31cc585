package main

import (
	"quant_backend/internal/app/di"
	backtestusecase "quant_backend/internal/feature/backtest/usecase"

	"github.com/spf13/cobra"
	"github.com/volatiletech/null"
)

func newOptimizeCmd(open opener) *cobra.Command {
	var (
		req              backtestusecase.OptimizeRequest
		start, end       string
		cash, commission float64
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Backtest every parameter combination of a strategy and report the best",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseRange(start, end)
			if err != nil {
				return err
			}
			req.Start, req.End = from, to
			if cmd.Flags().Changed("cash") {
				req.InitialCash = null.Float64From(cash)
			}
			if cmd.Flags().Changed("commission") {
				req.Commission = null.Float64From(commission)
			}

			return withContainer(cmd, open, func(c *di.Container) error {
				res, err := c.Backtests.Optimize(cmd.Context(), req)
				if err != nil {
					return err
				}
				renderOptimization(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Symbol, "symbol", "", "instrument symbol")
	f.StringVar(&req.Strategy, "strategy", backtestusecase.StrategyMACross, "strategy: macross or macd")
	f.StringVar(&start, "start", "", "first day, YYYY-MM-DD")
	f.StringVar(&end, "end", "", "last day, YYYY-MM-DD")
	f.Float64Var(&cash, "cash", backtestusecase.DefaultInitialCash, "initial cash")
	f.Float64Var(&commission, "commission", backtestusecase.DefaultCommission, "commission rate per side")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}
