package main

import (
	"context"
	"flag"

	"github.com/spf13/cobra"

	"wsproxy/logger"
	"wsproxy/services/proxy"
)

const version = "v1"

func main() {
	flag.Parse()

	root := &cobra.Command{
		Use:     "wsproxy",
		Version: version,
		Short:   "WebSocket intercepting proxy",
	}
	ctx := context.Background()
	root.AddCommand(proxy.NewServerStartCmd(ctx, root.Version))
	if err := root.Execute(); err != nil {
		logger.WithError(err).Fatal("Could not run command")
	}
}
