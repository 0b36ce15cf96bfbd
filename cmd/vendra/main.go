// Vendra is a retail management backend: inventory CRUD, atomic sale
// recording, and a reporting dashboard over a pluggable record store.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vendralabs/vendra/pkg/logger"
)

func main() {
	root := &cobra.Command{
		Use:           "vendra",
		Short:         "Retail inventory and sales backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newRouteListCmd(),
		newQueueWorkCmd(),
		newSeedCmd(),
	)

	if err := root.Execute(); err != nil {
		logger.Error("vendra: fatal", "error", err)
		os.Exit(1)
	}
}
