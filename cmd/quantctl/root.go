package main

import (
	"context"
	"time"

	"quant_backend/internal/api"
	"quant_backend/internal/app/di"

	"github.com/spf13/cobra"
)

// opener は各サブコマンドが使うコンテナを組み立てます。テストではメモリ上のDBに差し替えます。
type opener func(ctx context.Context) (*di.Container, error)

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:          "quantctl",
		Short:        "Sync daily bars and run backtests",
		SilenceUsage: true,
	}
	root.AddCommand(newSyncCmd(open), newBatchCmd(open), newBacktestCmd(open), newOptimizeCmd(open))
	return root
}

// withContainer は open したコンテナで fn を実行し、終了時に接続を閉じます。
func withContainer(cmd *cobra.Command, open opener, fn func(c *di.Container) error) error {
	c, err := open(cmd.Context())
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	s, err := api.ParseDate(start, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := api.ParseDate(end, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return s, e, nil
}
