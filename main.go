package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LFroesch/shelf/internal/config"
	"github.com/LFroesch/shelf/internal/logger"
	"github.com/LFroesch/shelf/internal/watch"
)

// Version is injected at build time
var Version = "dev"

var cfgFile string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shelf [root]",
		Short: "Browse a folder tree like a storage bucket",
		Long: `Shelf browses a local folder as a storage bucket: breadcrumb
navigation, a typed path bar, column and list views, search, uploads
and folder creation.

The root defaults to the configured root, then the current directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBrowser,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")

	flags := rootCmd.Flags()
	flags.String("view", "", "Initial view: columns or list")
	flags.String("sort", "", "Initial sort: name, created_at, updated_at, last_accessed_at")
	flags.Int("debounce", 0, "Search debounce in milliseconds")
	flags.Bool("no-watch", false, "Disable live refresh of the current folder")
	flags.Bool("hidden", false, "Show hidden files")
	flags.String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newVersionCmd(), newConfigCmd(), newLsCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the shelf version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shelf %s\n", Version)
		},
	}
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the shelf config file",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults if none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return configCmd
}

func runBrowser(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	}
	defer logger.Close()

	if len(args) == 1 {
		cfg.Root = args[0]
	}
	if cfg.Root == "" {
		if cfg.Root, err = os.Getwd(); err != nil {
			return fmt.Errorf("cannot get working directory: %w", err)
		}
	}
	if cfg.Root, err = filepath.Abs(cfg.Root); err != nil {
		return fmt.Errorf("invalid root: %w", err)
	}
	if info, err := os.Stat(cfg.Root); err != nil || !info.IsDir() {
		return fmt.Errorf("root %s is not a folder", cfg.Root)
	}

	var w dirWatcher
	if cfg.Watch {
		fw, err := watch.New(watch.DefaultDelay)
		if err != nil {
			logger.Warn("live refresh unavailable: %v", err)
		} else {
			defer fw.Close()
			w = fw
		}
	}

	logger.Info("starting in %s (config %q)", cfg.Root, cfg.File)
	p := tea.NewProgram(initialModel(cfg, w), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited: %v", err)
		return err
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
