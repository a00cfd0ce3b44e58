package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yildizm/instastory/internal/config"
	"github.com/yildizm/instastory/internal/emoji"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".instastory.yaml"

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage instastory configuration",
		Long: `Create, inspect and check the YAML file that sets the data source, theme
and demo server options. Settings load from /etc, the user config directory
and ./.instastory.yaml, then .env and INSTASTORY_* variables.`,
	}

	cmd.AddCommand(
		newConfigInitCommand(),
		newConfigShowCommand(),
		newConfigValidateCommand(),
		newConfigPathCommand(),
	)
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		output  string
		minimal bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Example: `  instastory config init
  instastory config init --minimal --output ~/.config/instastory/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ExpandPath(output)
			if err := writeSampleConfig(path, minimal, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote configuration to %s\n", emoji.GetEmoji("success"), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultConfigFile, "where to write the file")
	cmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "only the source and theme settings")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing file")
	return cmd
}

// writeSampleConfig creates path and any missing parent directories
func writeSampleConfig(path string, minimal, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := config.SampleConfig()
	if minimal {
		content = config.MinimalSampleConfig()
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func newConfigShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return encodeConfig(cmd.OutOrStdout(), cfg, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")
	return cmd
}

func encodeConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	default:
		return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
	}
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration for errors",
		Example: `  instastory config validate
  instastory config validate --config ./demo.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				fmt.Fprintf(out, "%s Configuration validation failed: %v\n", emoji.GetEmoji("error"), err)
				return err
			}

			source := cfg.Source.Endpoint
			if cfg.Source.File != "" {
				source = cfg.Source.File + " (file)"
			}
			fmt.Fprintf(out, "%s Configuration is valid\n", emoji.GetEmoji("success"))
			fmt.Fprintf(out, "   source: %s\n   theme:  %s\n   serve:  %s from %s\n",
				source, cfg.UI.Theme, cfg.Server.PayloadFile, cfg.Server.Addr)
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "List the configuration search paths",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			paths := config.GetConfigPaths()
			active, found := config.FindConfigFile()

			for i, path := range paths {
				note := ""
				switch i {
				case 0:
					note = " (highest priority)"
				case len(paths) - 1:
					note = " (lowest priority)"
				}
				if found && path == active {
					note += " " + emoji.GetEmoji("check") + " in use"
				}
				fmt.Fprintf(out, "%d. %s%s\n", i+1, path, note)
			}
			if !found {
				fmt.Fprintln(out, "No config file found, using defaults")
			}
			fmt.Fprintf(out, "%s* environment variables override every file\n", config.EnvPrefix)
		},
	}
}
