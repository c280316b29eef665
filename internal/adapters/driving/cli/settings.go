package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/innergraph/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the client profile, transport tuning and format defaults.

Settings are stored in ~/.innergraph/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by key.

Keys:
  client.name                     WEB, YTMUSIC, YTKIDS or ANDROID
  client.version, client.hl, client.gl
  transport.base_url
  transport.timeout_seconds       positive integer
  transport.requests_per_second   positive number
  transport.burst                 positive integer
  formats.quality                 best, bestefficiency or a label such as 720p
  formats.container, formats.codec
  storage.data_dir`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingsOutput is the printable form of the settings.
type settingsOutput struct {
	Client    map[string]string `json:"client" yaml:"client"`
	Transport map[string]string `json:"transport" yaml:"transport"`
	Formats   map[string]string `json:"formats" yaml:"formats"`
	DataDir   string            `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
}

func toSettingsOutput(s *domain.Settings) settingsOutput {
	return settingsOutput{
		Client: map[string]string{
			"name":    s.Client.Name,
			"version": s.Client.Version,
			"hl":      s.Client.HL,
			"gl":      s.Client.GL,
		},
		Transport: map[string]string{
			"base_url":            s.Transport.BaseURL,
			"timeout":             s.Transport.Timeout.String(),
			"requests_per_second": fmt.Sprintf("%g", s.Transport.RequestsPerSecond),
			"burst":               fmt.Sprintf("%d", s.Transport.Burst),
		},
		Formats: map[string]string{
			"quality":   s.Formats.Quality,
			"container": s.Formats.Container,
			"codec":     s.Formats.Codec,
		},
		DataDir: s.DataDir,
	}
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := toSettingsOutput(settings)
	return render(cmd, out, func() {
		cmd.Println("Current Settings")
		cmd.Println("================")
		cmd.Println()

		cmd.Println("[Client]")
		cmd.Printf("  Profile: %s\n", settings.Client.Name)
		cmd.Printf("  Version: %s\n", settings.Client.Version)
		cmd.Printf("  Locale: %s-%s\n", settings.Client.HL, settings.Client.GL)
		cmd.Println()

		cmd.Println("[Transport]")
		cmd.Printf("  Base URL: %s\n", settings.Transport.BaseURL)
		cmd.Printf("  Timeout: %s\n", settings.Transport.Timeout)
		cmd.Printf("  Rate: %g req/s (burst %d)\n", settings.Transport.RequestsPerSecond, settings.Transport.Burst)
		cmd.Println()

		cmd.Println("[Formats]")
		cmd.Printf("  Quality: %s\n", settings.Formats.Quality)
		cmd.Printf("  Container: %s\n", orAny(settings.Formats.Container))
		cmd.Printf("  Codec: %s\n", orAny(settings.Formats.Codec))
		cmd.Println()

		cmd.Println("[Storage]")
		dir := settings.DataDir
		if dir == "" {
			dir = "~/.innergraph/data (default)"
		}
		cmd.Printf("  Data dir: %s\n", dir)
	})
}

func orAny(s string) string {
	if s == "" {
		return "(any)"
	}
	return s
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings reset to defaults.")
	return nil
}
