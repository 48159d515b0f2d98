package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/okchart/chartdoc"
	"github.com/benoitkugler/okchart/chartdraw"
	"github.com/benoitkugler/okchart/chartpdf"
	"github.com/benoitkugler/okchart/chartraster"
	"github.com/benoitkugler/okchart/chartsvg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool
	mode    string

	// render flags
	format        string
	out           string
	width, height float64

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "okchart",
	Short: "okchart - render line, area and bar charts",
	Long: `okchart reads chart documents (.xml, .yaml or .yml) describing
scales and series, and renders them as PNG, PDF or SVG.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <document>",
	Short: "Render a chart document to an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var pathCmd = &cobra.Command{
	Use:   "path <document>",
	Short: "Print the SVG path of each series",
	Args:  cobra.ExactArgs(1),
	RunE:  runPath,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "warn", "Handling of unsupported document content: ignore, warn or strict")

	renderCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: png, pdf or svg (default: from --out, or png)")
	renderCmd.Flags().StringVarP(&out, "out", "o", "", "Output file, - for stdout (default: the document name with the format extension)")
	renderCmd.Flags().Float64Var(&width, "width", 0, "Override the chart width")
	renderCmd.Flags().Float64Var(&height, "height", 0, "Override the chart height")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(pathCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func log() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// loadChart reads and builds the chart document at `path`
func loadChart(path string) (*chartdraw.Chart, error) {
	errMode, err := chartdoc.ParseErrorMode(mode)
	if err != nil {
		return nil, err
	}
	doc, err := chartdoc.ReadFile(path, chartdoc.Options{Mode: errMode, Logger: log()})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if width > 0 {
		doc.Width = width
	}
	if height > 0 {
		doc.Height = height
	}
	log().Debug("Document read", zap.String("path", path), zap.Int("series", len(doc.Series)))
	return chartdoc.Build(doc)
}

// outputFormat resolves the --format and --out flags
func outputFormat(docPath string) (string, string, error) {
	f, o := strings.ToLower(format), out
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(o)), ".")
		if o == "" || o == "-" {
			f = "png"
		}
	}
	switch f {
	case "png", "pdf", "svg":
	default:
		return "", "", fmt.Errorf("unsupported output format %q", f)
	}
	if o == "" {
		o = strings.TrimSuffix(docPath, filepath.Ext(docPath)) + "." + f
	}
	return f, o, nil
}

func encode(w io.Writer, f string, chart *chartdraw.Chart) error {
	switch f {
	case "pdf":
		return chartpdf.RenderChart(chart, w)
	case "svg":
		return chartsvg.Encode(w, chart)
	default:
		return chartraster.EncodePNG(w, chart)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	f, o, err := outputFormat(args[0])
	if err != nil {
		return err
	}
	chart, err := loadChart(args[0])
	if err != nil {
		return err
	}

	if o == "-" {
		return encode(cmd.OutOrStdout(), f, chart)
	}
	file, err := os.Create(o)
	if err != nil {
		return err
	}
	if err = encode(file, f, chart); err != nil {
		file.Close()
		return fmt.Errorf("rendering %s: %w", o, err)
	}
	if err = file.Close(); err != nil {
		return err
	}
	log().Info("Chart rendered", zap.String("output", o), zap.String("format", f))
	return nil
}

func runPath(cmd *cobra.Command, args []string) error {
	chart, err := loadChart(args[0])
	if err != nil {
		return err
	}
	for i, s := range chart.Series {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("series%d", i)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, s.Path.ToSVGPath())
	}
	return nil
}
