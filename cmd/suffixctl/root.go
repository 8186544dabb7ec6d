package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "suffixctl",
		Short:         "Encode, attach and decode builder-code attribution suffixes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newAttachCmd(),
		newMintCmd(),
		newScanCmd(),
		newServeCmd(),
		newConfigCmd(),
	)
	return root
}
