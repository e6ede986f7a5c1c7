package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"slidegen/internal/generation"
	"slidegen/internal/infographic"
	"slidegen/internal/llm"
	"slidegen/internal/store"
	"slidegen/internal/util/jsonutil"
)

func newPromptCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the generation prompt for a template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireTemplate(opts); err != nil {
				return err
			}
			tmpl, err := loadTemplate(opts.templatePath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			gen := generation.New(nil, nil, opts.logger)
			plan, err := gen.Prepare(cmd.Context(), generation.Request{
				Template: tmpl,
				Topic:    opts.topic,
				Language: opts.language,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), plan)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), plan.Prompt)
			return err
		},
	}
	cmd.Flags().StringVar(&opts.topic, "topic", "", "presentation topic")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print structure, example and prompt as JSON")
	return cmd
}

func newFillCmd(opts *options) *cobra.Command {
	var dataPath string
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a template with prepared content",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireTemplate(opts); err != nil {
				return err
			}
			if dataPath == "" {
				return fmt.Errorf("--data is required")
			}
			if dataPath == "-" && opts.templatePath == "-" {
				return fmt.Errorf("only one of --template and --data can read stdin")
			}
			tmpl, err := loadTemplate(opts.templatePath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			d, err := loadData(dataPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			gen := generation.New(nil, nil, opts.logger)
			plan, err := gen.Prepare(cmd.Context(), generation.Request{Template: tmpl})
			if err != nil {
				return err
			}
			if err := infographic.Validate(d, plan.Structure); err != nil {
				return err
			}
			return emit(cmd, opts, generation.SlideFile, gen.Fill(plan.Structure, d))
		},
	}
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "content file (.json, .yaml or - for stdin)")
	return cmd
}

func newGenerateCmd(opts *options) *cobra.Command {
	var stream bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Ask the configured model for content and fill the template",
		Long: `generate builds the prompt for the template, asks the model configured by
LLM_PROVIDER (gemini, openai or fake) and fills the template with the
validated reply. Without a provider it fills the template with placeholder
content.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireTemplate(opts); err != nil {
				return err
			}
			tmpl, err := loadTemplate(opts.templatePath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			client, err := llm.New(ctx, opts.cfg.LLM, opts.logger)
			if err != nil {
				return err
			}
			if client != nil {
				defer client.Close()
			}

			var blobs store.Store
			var root string
			if opts.outDir != "" {
				fsStore, err := store.NewFileStore(opts.outDir)
				if err != nil {
					return err
				}
				blobs, root = fsStore, fsStore.Root()
			}
			gen := generation.New(client, blobs, opts.logger, generation.WithMaxAttempts(opts.cfg.MaxAttempts))
			var onChunk func(string) error
			if stream {
				onChunk = func(chunk string) error {
					_, err := io.WriteString(cmd.ErrOrStderr(), chunk)
					return err
				}
			}
			res, err := gen.Generate(ctx, generation.Request{
				Template: tmpl,
				Topic:    opts.topic,
				Language: opts.language,
			}, onChunk)
			if stream {
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}
			if root == "" {
				return writeJSON(cmd.OutOrStdout(), res.Slide)
			}
			files, err := gen.Files(ctx, res.ID)
			if err != nil {
				return err
			}
			for _, name := range files {
				fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(root, res.ID, name))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.topic, "topic", "", "presentation topic")
	cmd.Flags().BoolVar(&stream, "stream", false, "echo the model reply to stderr as it arrives")
	return cmd
}

// emit writes v as JSON to stdout, or to name under the output directory.
func emit(cmd *cobra.Command, opts *options, name string, v any) error {
	if opts.outDir == "" {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	b, err := jsonutil.MarshalNoEscapeIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(opts.outDir, name)
	if err := os.WriteFile(dst, append(b, '\n'), 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), dst)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := jsonutil.MarshalNoEscapeIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
