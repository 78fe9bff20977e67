package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/GreatValueCreamSoda/gossimu2/internal/config"
)

// commandContext lazily loads the configuration file and builds the
// stderr logger once, after persistent flags have parsed.
type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	once sync.Once
	cfg  config.Config
	log  zerolog.Logger
	err  error
}

func (c *commandContext) setup() (config.Config, zerolog.Logger, error) {
	c.once.Do(func() {
		c.cfg, c.err = config.Load(strings.TrimSpace(*c.configFlag))
		if c.err != nil {
			return
		}

		name := c.cfg.Logging.Level
		if strings.TrimSpace(*c.logLevelFlag) != "" {
			name = strings.TrimSpace(*c.logLevelFlag)
		}
		level, err := zerolog.ParseLevel(name)
		if err != nil {
			c.err = fmt.Errorf("parse log level: %w", err)
			return
		}

		c.log = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.TimeOnly,
		}).Level(level).With().Timestamp().Logger()
	})
	return c.cfg, c.log, c.err
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string

	ctx := &commandContext{configFlag: &configFlag, logLevelFlag: &logLevelFlag}

	rootCmd := &cobra.Command{
		Use:           "gossimu2",
		Short:         "SSIMULACRA2 quality comparison for videos and images",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "",
		"configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"stderr log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(newImageCommand(ctx))
	rootCmd.AddCommand(newVideoCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
