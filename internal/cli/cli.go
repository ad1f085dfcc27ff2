package cli

import (
	"fmt"
	"io"

	"github.com/dmorgan81/convergence/internal/config"
	"github.com/dmorgan81/convergence/internal/handler"
	"github.com/dmorgan81/convergence/internal/inject"
	"github.com/dmorgan81/convergence/internal/log"
	"github.com/google/uuid"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

// NewCLI builds the root command. Reports go to stdout; logs go to stderr.
func NewCLI(stdout, stderr io.Writer) *cobra.Command {
	cfg := config.Default()

	rootCmd := &cobra.Command{
		Use:   "convergence",
		Short: "Generate and describe images in a loop",
		Long: "Generate an image from a prompt, describe it, generate a new image from the " +
			"description and repeat. Runs resume from the highest numbered image in the folder.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Required flags are checked by cobra after the pre-run hooks,
			// so the remaining config checks wait until here.
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			if err := cfg.LoadEnv(); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd, cfg, stdout, stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.Flags()
	flags.StringVarP(&cfg.KeySource, "api", "a", cfg.KeySource, "The file containing the OpenAI API key, or ssm:<parameter path>")
	flags.StringVarP(&cfg.GeneratePrompt, "generate-prompt", "g", "", "Initial prompt for generating images")
	flags.StringVarP(&cfg.Folder, "folder", "f", "", "Folder where to store the images")
	flags.StringVarP(&cfg.DescribePrompt, "describe-prompt", "d", cfg.DescribePrompt, "The prompt for describing the image")
	flags.IntVarP(&cfg.Iterations, "number", "n", cfg.Iterations, "Number of iterations")
	_ = rootCmd.MarkFlagRequired("generate-prompt")
	_ = rootCmd.MarkFlagRequired("folder")

	return rootCmd
}

func run(cmd *cobra.Command, cfg config.Config, stdout, stderr io.Writer) error {
	logger := log.New(stderr, cfg.LogLevel, cfg.LogFormat).With("run_id", uuid.NewString())
	ctx := log.NewContext(cmd.Context(), logger)

	injector := inject.Setup(ctx, cfg, stdout)
	defer func() {
		_ = injector.Shutdown()
	}()

	if _, err := do.InvokeNamed[string](injector, "api_key"); err != nil {
		return fmt.Errorf("failed to load api key from %s: %w", cfg.KeySource, err)
	}
	h, err := do.Invoke[*handler.Handler](injector)
	if err != nil {
		return err
	}

	_, err = h.Handle(ctx, handler.Input{
		Folder:         cfg.Folder,
		GeneratePrompt: cfg.GeneratePrompt,
		DescribePrompt: cfg.DescribePrompt,
		Iterations:     cfg.Iterations,
	})
	return err
}
