// Package main - etfctl CLI
//
// 使い方:
//
//	go run ./cmd/etfctl list --q spy --sort expenseBps
//	go run ./cmd/etfctl export --issuer Vanguard -o vanguard.csv
//	go run ./cmd/etfctl watch add SPY QQQ
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"etf_catalog/cmd/etfctl/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
