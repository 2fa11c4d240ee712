package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spendly/sms-extract/cmd/batch"
	"spendly/sms-extract/cmd/categorize"
	"spendly/sms-extract/cmd/check"
	"spendly/sms-extract/cmd/parse"
	"spendly/sms-extract/cmd/root"
	"spendly/sms-extract/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(check.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.Cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
