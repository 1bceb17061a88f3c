package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"transformer/internal/app"
	"transformer/internal/config"
	"transformer/internal/core"
	"transformer/internal/resource"
	"transformer/pkg/logger"
)

var errNotTransform = errors.New("control commands cannot run once")

// New создает корневую CLI-команду.
func New(version string) *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "transformer",
		Short:         "Interactive text transformation console",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			lg := logger.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
			a, err := app.NewApp(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), lg)
			if err != nil {
				return err
			}
			return a.Serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML or TOML config file")

	root.AddCommand(newVersionCmd(version))
	root.AddCommand(newRunOnceCmd(&cfgPath))

	return root
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version)
		},
	}
}

func newRunOnceCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run-once <command> [text...]",
		Short: "Apply one transform command and print the result",
		Example: "  transformer run-once pascal hello world\n" +
			"  transformer run-once csv file: people.csv",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c, payload, err := core.ParseCommand(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if c.IsControl() {
				return fmt.Errorf("%s: %w", c, errNotTransform)
			}
			registry, err := app.NewRegistry(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			reader := resource.NewFS(resource.Policy{Hidden: cfg.Resource.Hidden, Allowed: cfg.Resource.Allowed})
			payload, _, err = resource.Resolve(ctx, reader, payload)
			if err != nil {
				return err
			}
			out, err := registry.Execute(ctx, c, payload)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
