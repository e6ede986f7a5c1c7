package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"slidegen/internal/gateway/config"
	"slidegen/internal/logging"
)

type options struct {
	templatePath string
	topic        string
	language     string
	outDir       string
	verbose      bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "slidegen",
		Short:         "Generate infographic slides from editor templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(nil)
			if err != nil {
				return err
			}
			level := cfg.LogLevel
			if !opts.verbose && level == "" {
				level = "warn"
			}
			logger, err := logging.New("local", level)
			if err != nil {
				return err
			}
			opts.cfg, opts.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.templatePath, "template", "t", "", "template slide file (.json, .yaml or - for stdin)")
	flags.StringVar(&opts.language, "language", "", "output language (default 中文)")
	flags.StringVarP(&opts.outDir, "out", "o", "", "directory for the result files (default stdout)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log at info level")

	root.AddCommand(newPromptCmd(opts), newFillCmd(opts), newGenerateCmd(opts))
	return root
}

func requireTemplate(opts *options) error {
	if opts.templatePath == "" {
		return fmt.Errorf("--template is required")
	}
	return nil
}
