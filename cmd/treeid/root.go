package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"sf-tree-identifier/internal/app"
	"sf-tree-identifier/internal/config"
	"sf-tree-identifier/internal/format"
	"sf-tree-identifier/internal/logger"
	"sf-tree-identifier/internal/service"

	"github.com/spf13/cobra"
)

var (
	cfg       config.Config
	configDir string
	asJSON    bool
	noNearby  bool
)

var rootCmd = &cobra.Command{
	Use:   "treeid [address...]",
	Short: "Identify the street trees at a San Francisco address",
	Long: "Looks up the street trees recorded at an address in the San Francisco street tree list.\n" +
		"When the address itself has no trees, the neighbours two doors down and up are checked.",
	Example:       `  treeid 1468 Valencia St`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		// The CLI talks to a person; only warnings and above by default.
		level := cfg.LogLevel
		if level == "info" {
			level = "warn"
		}
		if err := logger.Setup(level, "console"); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []app.Option
		if noNearby {
			opts = append(opts, app.WithoutNearby())
		}
		a, err := app.New(cmd.Context(), cfg, opts...)
		if err != nil {
			return err
		}
		defer a.Close() //nolint:errcheck

		report, err := a.Trees.FindTrees(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		for _, msg := range format.Messages(report) {
			fmt.Fprintln(out, msg)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), format.Summary(report))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "./configs", "directory containing app.env")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	rootCmd.Flags().BoolVar(&noNearby, "no-nearby", false, "only look at the exact address")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		msg := service.Classify(err).Message
		if service.Classify(err).Kind == service.KindInternal {
			msg = err.Error()
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}
