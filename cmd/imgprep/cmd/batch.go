package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/veritas-tools/imgprep/internal/batch"
)

// batchCmd represents the batch command for processing many images.
var batchCmd = &cobra.Command{
	Use:   "batch [files or directories...]",
	Short: "Enhance multiple images in parallel",
	Long: `Enhance every supported image found in the given files and
directories. Images are processed by a bounded worker pool; Ctrl-C stops
scheduling new images and lets in-flight ones finish.

Supported formats: PNG, JPEG, BMP, TIFF

Examples:
  imgprep batch scans/
  imgprep batch scans/ --recursive --workers 8
  imgprep batch a.png b.png --ocr --lang eng`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runBatchCommand,
}

func configToBatchConfig(cmd *cobra.Command) (batch.Config, error) {
	cfg := GetConfig()
	bcfg := batch.DefaultConfig()
	bcfg.Enhance = cfg.ToEnhance()
	bcfg.Workers = cfg.Batch.Workers
	bcfg.Recursive = cfg.Batch.Recursive
	bcfg.KeepArtifacts = cfg.Batch.KeepArtifacts
	bcfg.RunOCR = cfg.OCR.Enabled
	bcfg.Language = cfg.OCR.Language

	if cmd.Flags().Changed("workers") {
		bcfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("recursive") {
		bcfg.Recursive, _ = cmd.Flags().GetBool("recursive")
	}
	if cmd.Flags().Changed("temp-dir") {
		bcfg.Enhance.TempDir, _ = cmd.Flags().GetString("temp-dir")
	}
	if cmd.Flags().Changed("ocr") {
		bcfg.RunOCR, _ = cmd.Flags().GetBool("ocr")
	}
	if cmd.Flags().Changed("lang") {
		bcfg.Language, _ = cmd.Flags().GetString("lang")
	}
	if cmd.Flags().Changed("keep") {
		bcfg.KeepArtifacts, _ = cmd.Flags().GetBool("keep")
	}

	return bcfg, bcfg.Enhance.Validate()
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	bcfg, err := configToBatchConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := batch.ProcessBatch(ctx, bcfg, args)
	if err != nil {
		return err
	}
	printBatchSummary(cmd, result)
	if result.Cancelled {
		return context.Canceled
	}
	return nil
}

func printBatchSummary(cmd *cobra.Command, result *batch.Result) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	enhanced := 0
	for _, img := range result.Images {
		fallbackOnly := len(img.Candidates) == 1 && img.Candidates[0].Path == img.Source
		if !fallbackOnly {
			enhanced++
		}
		if img.Best != nil {
			_, _ = green.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s, %.2f)\n",
				img.Source, img.Best.Path, img.Best.Method, img.Best.Confidence)
		} else if fallbackOnly {
			_, _ = yellow.Fprintf(cmd.OutOrStdout(), "%s -> no enhancement, kept original\n", img.Source)
		} else {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %d candidate(s)\n", img.Source, len(img.Candidates))
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "processed %d image(s), %d enhanced, in %s\n",
		len(result.Images), enhanced, result.Duration.Round(10*time.Millisecond))
	if result.Cancelled {
		_, _ = yellow.Fprintln(cmd.OutOrStdout(), "batch cancelled before all images were scheduled")
	}
}

func init() {
	batchCmd.Flags().Int("workers", 0, "concurrent images (0 uses config)")
	batchCmd.Flags().BoolP("recursive", "r", false, "recurse into subdirectories")
	batchCmd.Flags().String("temp-dir", "", "directory for enhanced artifacts (default: current directory)")
	batchCmd.Flags().Bool("ocr", false, "score candidates with Tesseract and keep only the best")
	batchCmd.Flags().String("lang", "", "OCR language (default from config)")
	batchCmd.Flags().Bool("keep", false, "keep all artifacts even after OCR selection")

	rootCmd.AddCommand(batchCmd)
}
