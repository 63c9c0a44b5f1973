package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/happyhackingspace/hmm/internal/banner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLI encapsulates the command-line interface with its dependencies.
type CLI struct {
	version     string
	verbose     bool
	silent      bool
	initialized bool
	rootCmd     *cobra.Command
	config      *viper.Viper
}

// New creates a new CLI instance with the given version string.
func New(version string) *CLI {
	c := &CLI{version: version, config: newConfig()}
	c.setupCommands()
	return c
}

// newConfig returns a viper instance that resolves HMM_* environment
// variables, with dashes in keys mapped to underscores.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("hmm")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// setupCommands initializes all CLI commands and their configurations.
func (c *CLI) setupCommands() {
	c.rootCmd = &cobra.Command{
		Use:     "hmm",
		Short:   "Likelihood and decoding for discrete hidden Markov models",
		Version: c.version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.initApp()
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		SilenceUsage: true,
	}

	c.rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose/debug output")
	c.rootCmd.PersistentFlags().BoolVarP(&c.silent, "silent", "s", false, "Suppress all logging and banner")

	defaultHelp := c.rootCmd.HelpFunc()
	c.rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		c.initApp()
		defaultHelp(cmd, args)
	})

	c.rootCmd.AddCommand(c.newForwardCommand())
	c.rootCmd.AddCommand(c.newViterbiCommand())
	c.rootCmd.AddCommand(c.newCheckCommand())
	c.rootCmd.AddCommand(c.newEvaluateCommand())
	c.rootCmd.AddCommand(c.newUpCommand())
}

// Run executes the CLI and returns any error.
func (c *CLI) Run() error {
	return c.rootCmd.Execute()
}

// setting resolves a string flag: an explicit command-line value wins, then
// the HMM_* environment variable, then the flag default.
func (c *CLI) setting(cmd *cobra.Command, name string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		return c.config.GetString(name)
	}
	if f.Changed {
		return f.Value.String()
	}
	if c.config.IsSet(name) {
		return c.config.GetString(name)
	}
	return f.DefValue
}

// initApp initializes logging and prints the banner.
func (c *CLI) initApp() {
	if c.initialized {
		return
	}
	c.initialized = true

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	if c.silent {
		level = slog.Level(100)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
	if !c.silent {
		fmt.Fprint(os.Stderr, banner.Banner(c.version))
	}
}
