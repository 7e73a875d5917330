package main

import (
	"fmt"
	"strings"

	"sf-tree-identifier/internal/app"
	"sf-tree-identifier/internal/service"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [address...]",
	Short: "Print the canonical form of an address",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := app.NewResolver(cfg)
		if err != nil {
			return err
		}

		addr, err := service.NewAddressService(r).Resolve(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), addr)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
