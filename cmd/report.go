package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/skyreport/internal/export"
	"github.com/lehigh-university-libraries/skyreport/internal/images"
	"github.com/lehigh-university-libraries/skyreport/internal/metadata"
)

const (
	formatText = "text"
	formatAll  = "all"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		formats   []string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "report <image>",
		Short: "Build a report for one photograph",
		Long: `Reads the EXIF metadata of one image (a local path or an http(s) URL) and
prints the basic, capture and astronomical sections.

With --format json, csv, parquet or all the report is written to
{name}-exif-report.{ext} files in the output directory instead.`,
		Example: `  # Print the report
  skyreport report IMG_0420.jpg

  # Write JSON and CSV exports next to the photos
  skyreport report IMG_0420.jpg --format json,csv --output ./reports

  # Read timestamps as Beijing time
  skyreport report https://example.com/milkyway.jpg --timezone Asia/Shanghai`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wanted, err := resolveFormats(formats)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") {
				outputDir = a.cfg.OutputDir
			}
			if len(wanted) > 0 {
				if err := checkOutputDir(outputDir); err != nil {
					return err
				}
			}

			fetcher := images.NewFetcher(a.cfg.MaxUploadBytes())
			img, err := fetcher.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rep, err := a.builder().Generate(cmd.Context(), metadata.NewExifExtractor(a.location), img)
			if err != nil {
				return err
			}

			if len(wanted) == 0 {
				return export.WriteText(cmd.OutOrStdout(), rep)
			}
			for _, f := range wanted {
				path, err := export.WriteFile(outputDir, rep, f)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			slog.Info("Report exported", "file", img.Name, "formats", len(wanted), "dir", outputDir)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&formats, "format", "f", []string{formatText}, "Output: text, json, csv, parquet or all (comma separated)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory for exported files")

	return cmd
}

// resolveFormats returns the export formats requested; an empty result means
// text output only.
func resolveFormats(names []string) ([]export.Format, error) {
	var out []export.Format
	seen := map[export.Format]bool{}
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case formatText, "":
			continue
		case formatAll:
			for _, f := range export.Formats {
				if !seen[f] {
					seen[f] = true
					out = append(out, f)
				}
			}
			continue
		}
		f, err := export.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// checkOutputDir fails early when dir exists but is not a directory.
func checkOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return nil
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %s is not a directory", dir)
	}
	return nil
}
