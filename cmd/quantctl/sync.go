package main

import (
	"fmt"
	"time"

	"quant_backend/internal/app/di"
	candleusecase "quant_backend/internal/feature/candles/usecase"
	instrumententity "quant_backend/internal/feature/instruments/domain/entity"
	instrumentusecase "quant_backend/internal/feature/instruments/usecase"

	"github.com/spf13/cobra"
)

func newSyncCmd(open opener) *cobra.Command {
	var symbol, market, start, end, name string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch and store daily bars for one instrument",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseRange(start, end)
			if err != nil {
				return err
			}
			from, to, err = candleusecase.ResolveRange(from, to, time.Now())
			if err != nil {
				return err
			}

			return withContainer(cmd, open, func(c *di.Container) error {
				in, err := c.Instruments.Register(cmd.Context(), instrumentusecase.RegisterInput{
					Symbol: symbol,
					Market: instrumententity.Market(market),
					Name:   name,
				})
				if err != nil {
					return err
				}
				n, err := c.Sync.SyncOne(cmd.Context(), in, from, to)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "synced %d bars for %s (%s) %s..%s\n",
					n, in.Symbol, in.Market, from.Format(time.DateOnly), to.Format(time.DateOnly))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "instrument symbol (e.g. SPY, 510300)")
	cmd.Flags().StringVar(&market, "market", "", "market tag: US or CN")
	cmd.Flags().StringVar(&start, "start", "", "first day, YYYY-MM-DD (default: one year before end)")
	cmd.Flags().StringVar(&end, "end", "", "last day, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&name, "name", "", "display name (default: the symbol)")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("market")
	return cmd
}

func newBatchCmd(open opener) *cobra.Command {
	var (
		batchType string
		days      int
		delay     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Sync the built-in universe of instruments",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := candleusecase.ParseBatchType(batchType)
			if err != nil {
				return err
			}
			return withContainer(cmd, open, func(c *di.Container) error {
				summary, err := c.Sync.SyncBatch(cmd.Context(), candleusecase.BatchRequest{Type: t, Days: days, Delay: delay})
				renderBatch(cmd.OutOrStdout(), summary)
				if err != nil {
					return err
				}
				if failed := len(summary.Errors()); failed > 0 {
					return fmt.Errorf("%d of %d instruments failed", failed, len(summary.Results))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&batchType, "type", string(candleusecase.BatchAll), "universe: etf, us_stocks or all")
	cmd.Flags().IntVar(&days, "days", candleusecase.DefaultBatchDays, "days to look back")
	cmd.Flags().DurationVar(&delay, "delay", candleusecase.DefaultBatchDelay, "pause between requests (doubled for US)")
	return cmd
}
