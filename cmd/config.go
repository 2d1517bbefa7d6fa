package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vietdv277/cfnperms/internal/config"
	"github.com/vietdv277/cfnperms/internal/ui"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(opts *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the cfnperms config file",
		Long: `Manage persistent defaults for cfnperms.

Values are read with this precedence: command-line flag, CFNPERMS_* environment
variable, config file, built-in default.

Examples:
  cfnperms config path
  cfnperms config show
  cfnperms config set region eu-west-1
  cfnperms config get output`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), opts.configPath)
		},
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, opts)
		},
	}

	configGetCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a value stored in the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	configSetCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a value in the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, opts, args[0], args[1])
		},
	}

	configCmd.AddCommand(configPathCmd, configShowCmd, configGetCmd, configSetCmd)

	return configCmd
}

func runConfigShow(cmd *cobra.Command, opts *options) error {
	s := opts.settings
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, ui.HeaderStyle.Render("Effective Settings"))
	fmt.Fprintln(out, ui.MutedStyle.Render("───────────────────────────────"))

	effective := map[string]string{
		config.KeyBaseURL:  s.BaseURL,
		config.KeySource:   s.Source,
		config.KeyRegion:   s.Region,
		config.KeyProfile:  s.Profile,
		config.KeyOutput:   s.Output,
		config.KeyTimeout:  s.Timeout.String(),
		config.KeyLogLevel: s.LogLevel,
	}

	data, err := yaml.Marshal(effective)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	fmt.Fprint(out, string(data))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Config file: %s\n", ui.MutedStyle.Render(opts.configPath))

	return nil
}

func runConfigSet(cmd *cobra.Command, opts *options, key, value string) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := config.SaveConfig(opts.configPath, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to: %s\n", key, value)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved to: %s\n", opts.configPath)

	return nil
}
