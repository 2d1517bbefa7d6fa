package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vietdv277/cfnperms/internal/config"
	"github.com/vietdv277/cfnperms/internal/logging"
	"github.com/vietdv277/cfnperms/internal/permissions"
	"github.com/vietdv277/cfnperms/internal/ui"
)

// options carries the state shared by every command of one invocation
type options struct {
	viper      *viper.Viper
	configPath string
	settings   *config.Settings
	selectOp   bool
}

// NewRootCmd builds the cfnperms command tree
func NewRootCmd() *cobra.Command {
	opts := &options{viper: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "cfnperms",
		Short: "Show the IAM permissions CloudFormation handlers require",
		Long: `cfnperms looks up the resource provider schema of a CloudFormation resource
type and prints the IAM permissions its create, read, update, delete and list
handlers need.

Run without arguments for an interactive prompt:
  cfnperms

Non-interactive:
  cfnperms get AWS::S3::Bucket                # all operations
  cfnperms get AWS::S3::Bucket -o create      # a single operation
  cfnperms get AWS::IAM::Role --output json   # machine-readable

Schema source:
  cfnperms --base-url http://localhost:9000/schemas get AWS::SQS::Queue
  cfnperms --source registry -r eu-west-1 get MyOrg::Custom::Thing # CloudFormation registry`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.GetConfigPath()+")")
	flags.String("base-url", "", "schema location (default "+permissions.DefaultBaseURL+")")
	flags.String("source", config.DefaultSource, "schema source: http or registry")
	flags.StringP("region", "r", "", "AWS region to use with --source registry")
	flags.StringP("profile", "p", "", "AWS profile to use with --source registry")
	flags.String("output", config.DefaultOutput, "output format: text, table, json or yaml")
	flags.Duration("timeout", 0, "request timeout (0 waits indefinitely)")
	flags.String("log-level", config.DefaultLogLevel, "diagnostic log level written to stderr")

	rootCmd.Flags().BoolVarP(&opts.selectOp, "select", "s", false, "choose the operation from an interactive list")

	// Bind flags to viper
	_ = opts.viper.BindPFlag(config.KeyBaseURL, flags.Lookup("base-url"))
	_ = opts.viper.BindPFlag(config.KeySource, flags.Lookup("source"))
	_ = opts.viper.BindPFlag(config.KeyRegion, flags.Lookup("region"))
	_ = opts.viper.BindPFlag(config.KeyProfile, flags.Lookup("profile"))
	_ = opts.viper.BindPFlag(config.KeyOutput, flags.Lookup("output"))
	_ = opts.viper.BindPFlag(config.KeyTimeout, flags.Lookup("timeout"))
	_ = opts.viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))

	rootCmd.AddCommand(newGetCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command and exits with the status its error maps to
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	os.Exit(handleError(os.Stdout, err))
}

func initConfig(cmd *cobra.Command, opts *options) error {
	path := opts.configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	opts.configPath = path

	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}

	config.Apply(opts.viper, fileCfg)

	settings, err := config.Resolve(opts.viper)
	if err != nil {
		return err
	}
	opts.settings = settings

	if err := logging.Configure(cmd.ErrOrStderr(), settings.LogLevel); err != nil {
		return err
	}

	logging.Debug().
		Str("config", path).
		Str("source", settings.Source).
		Str("output", settings.Output).
		Msg("configuration loaded")

	return nil
}

func runInteractive(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	prompter := ui.NewPrompter(cmd.InOrStdin(), out)

	resourceType, err := prompter.Ask(ctx, "Enter CloudFormation resource type (e.g., AWS::S3::Bucket): ")
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	resourceType, err = permissions.ValidateResourceType(resourceType)
	if err != nil {
		return err
	}

	var operation string
	if opts.selectOp {
		op, err := ui.SelectOperation(resourceType,
			tea.WithContext(ctx),
			tea.WithInput(prompter.Input()),
			tea.WithOutput(out),
		)
		if err != nil {
			return err
		}
		operation = string(op)
	} else {
		prompter.Println()
		prompter.Println("Available operations: create, read, update, delete, list")
		prompter.Println("Press Enter to see all permissions")

		operation, err = prompter.Ask(ctx, "Enter operation type (optional): ")
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}

	return showPermissions(ctx, out, opts, resourceType, operation)
}

func showPermissions(ctx context.Context, out io.Writer, opts *options, resourceType, operation string) error {
	// Bad input is reported before any source setup can fail on its own
	resourceType, err := permissions.ValidateResourceType(resourceType)
	if err != nil {
		return err
	}
	op, err := permissions.ParseOperation(operation)
	if err != nil {
		return err
	}

	source, err := newSchemaSource(ctx, opts.settings)
	if err != nil {
		return err
	}

	set, err := permissions.NewExtractor(source).Run(ctx, resourceType, string(op))
	if err != nil {
		return err
	}

	logging.Info().
		Str("type", resourceType).
		Str("source", source.Name()).
		Int("operations", len(set.Operations())).
		Msg("permissions extracted")

	return ui.WritePermissions(out, set, opts.settings.Output)
}

// handleError reports err on w and returns the process exit status. Only a
// failed schema fetch exits non-zero.
func handleError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	var inputErr *permissions.InputError
	var networkErr *permissions.NetworkError

	switch {
	case errors.As(err, &inputErr):
		fmt.Fprintln(w, inputErr.Message)
		return 0
	case isCancellation(err):
		fmt.Fprintln(w, "\nOperation cancelled by user.")
		return 0
	case errors.As(err, &networkErr):
		logging.Err(err).Str("url", networkErr.URL).Int("status", networkErr.StatusCode).Msg("schema fetch failed")
		fmt.Fprintln(w, ui.ErrorStyle.Render(fmt.Sprintf("Error fetching schema: %v", networkErr)))
		return 1
	default:
		logging.Err(err).Msg("command failed")
		fmt.Fprintf(w, "An error occurred: %v\n", err)
		return 0
	}
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, ui.ErrSelectionCancelled) ||
		errors.Is(err, tea.ErrProgramKilled)
}
