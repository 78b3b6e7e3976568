package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/skyreport/internal/config"
	"github.com/lehigh-university-libraries/skyreport/internal/ephemeris"
	"github.com/lehigh-university-libraries/skyreport/internal/report"
)

// app carries the settings resolved before any subcommand runs.
type app struct {
	configPath string
	logLevel   string
	timezone   string

	cfg      config.Config
	location *time.Location
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "skyreport",
		Short: "Photo metadata report with sun, moon and Milky Way geometry",
		Long: `Skyreport reads the EXIF metadata embedded in a photograph and builds a report
of the camera settings and capture conditions, including where the sun, the moon
and the galactic center stood in the sky when and where the photo was taken.

Reports can be printed, exported as JSON, CSV or Parquet, or served over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return a.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&a.timezone, "timezone", "", "IANA timezone for EXIF timestamps, or Local")

	// Add subcommands
	cmd.AddCommand(newReportCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("timezone") {
		cfg.Timezone = a.timezone
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	a.cfg = cfg
	a.location, _ = cfg.Location()
	slog.Debug("Configuration loaded", "timezone", a.location.String(), "ephemeris", cfg.Ephemeris)
	return nil
}

// builder returns a report builder honoring the ephemeris setting.
func (a *app) builder() *report.Builder {
	var eph ephemeris.Provider
	if a.cfg.Ephemeris {
		eph = ephemeris.NewCalculator(a.location)
	}
	return report.NewBuilder(eph, a.location)
}
