package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/veritas-tools/imgprep/internal/enhance"
	"github.com/veritas-tools/imgprep/internal/ocr"
)

// enhanceCmd represents the enhance command for a single image.
var enhanceCmd = &cobra.Command{
	Use:   "enhance [file]",
	Short: "Generate enhanced OCR candidates for a single image",
	Long: `Generate enhanced variants of one document image. Each variant is
written next to the source (or into --temp-dir) as a temp_* PNG artifact.

With --ocr the variants are scored with Tesseract and only the best one is
kept; the others are removed.

Examples:
  imgprep enhance scan.png
  imgprep enhance scan.png --temp-dir /tmp/ocr
  imgprep enhance scan.png --ocr --lang deu`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runEnhanceCommand,
}

func runEnhanceCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ecfg := cfg.ToEnhance()

	if cmd.Flags().Changed("temp-dir") {
		ecfg.TempDir, _ = cmd.Flags().GetString("temp-dir")
	}
	if cmd.Flags().Changed("workers") {
		ecfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	runOCR, _ := cmd.Flags().GetBool("ocr")
	if !cmd.Flags().Changed("ocr") {
		runOCR = cfg.OCR.Enabled
	}
	lang := cfg.OCR.Language
	if cmd.Flags().Changed("lang") {
		lang, _ = cmd.Flags().GetString("lang")
	}
	keep, _ := cmd.Flags().GetBool("keep")

	if err := ecfg.Validate(); err != nil {
		return err
	}

	source := args[0]
	candidates := enhance.Generate(cmd.Context(), ecfg, source)
	printCandidates(cmd, source, candidates)

	if !runOCR {
		return nil
	}
	if !ocr.Available() {
		return fmt.Errorf("ocr selection requested but tesseract support is not compiled in")
	}

	best, err := ocr.PickBest(candidates, lang)
	if err != nil {
		return fmt.Errorf("ocr selection: %w", err)
	}
	if !keep {
		enhance.CleanupCandidates(candidates, source, best.Path)
	}

	green := color.New(color.FgGreen, color.Bold)
	_, _ = green.Fprintf(cmd.OutOrStdout(), "best: %s (%s, confidence %.2f)\n",
		best.Path, best.Method, best.Confidence)
	if best.Text != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), best.Text)
	}
	return nil
}

func printCandidates(cmd *cobra.Command, source string, candidates []enhance.Candidate) {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d candidate(s)\n", source, len(candidates))
	for _, c := range candidates {
		if c.Path == source {
			_, _ = yellow.Fprintf(cmd.OutOrStdout(), "  %-22s %s (fallback)\n", c.Method, c.Path)
			continue
		}
		_, _ = cyan.Fprintf(cmd.OutOrStdout(), "  %-22s %s\n", c.Method, c.Path)
	}
}

func init() {
	enhanceCmd.Flags().String("temp-dir", "", "directory for enhanced artifacts (default: current directory)")
	enhanceCmd.Flags().Int("workers", 0, "parallel enhancement methods (0 uses config)")
	enhanceCmd.Flags().Bool("ocr", false, "score candidates with Tesseract and keep only the best")
	enhanceCmd.Flags().String("lang", "", "OCR language (default from config)")
	enhanceCmd.Flags().Bool("keep", false, "keep all artifacts even after OCR selection")

	rootCmd.AddCommand(enhanceCmd)
}
