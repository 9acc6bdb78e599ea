package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjulian5/varats/cmd/ext"
	"github.com/bjulian5/varats/cmd/gen"
	"github.com/bjulian5/varats/cmd/packagecmd"
	"github.com/bjulian5/varats/cmd/show"
	"github.com/bjulian5/varats/cmd/stage"
	"github.com/bjulian5/varats/cmd/status"
	"github.com/bjulian5/varats/cmd/view"
	"github.com/bjulian5/varats/internal/config"
	"github.com/bjulian5/varats/internal/ui"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vara-cs",
	Short: "Manage case studies of analysed project revisions",
	Long: `vara-cs creates, extends and inspects case studies: versioned sets of
project revisions, organized into stages, that are analysed by experiments.

Case studies are stored as .case_study files inside a paper config folder.
Settings are read from $HOME/.config/varats/config.toml and VARATS_*
environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(verbose)
		if err := config.Init(cfgFile); err != nil {
			return err
		}
		display := ui.DefaultConfig()
		if n := config.GetHashLength(); n > 0 {
			display.CommitHashDisplayLength = n
		}
		ui.SetDisplayConfig(display)
		if used := config.ConfigFileUsed(); used != "" {
			slog.Debug("using config file", "path", used)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/varats/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Print debug logs")

	// Register all commands
	commands := []Command{
		&gen.Command{},
		&ext.Command{},
		&status.Command{},
		&show.Command{},
		&stage.Command{},
		&view.Command{},
		&packagecmd.Command{},
	}

	for _, cmd := range commands {
		cmd.Register(rootCmd)
	}
}
