package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"sentiviz/internal/connect"
	"sentiviz/internal/controller"
	"sentiviz/internal/repository"
	"sentiviz/internal/service"
	"sentiviz/internal/view"
	"sentiviz/internal/web"
	"sentiviz/pkg/config"
	"sentiviz/pkg/localization"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
)

var (
	configPath string
	language   string
	barData    string
	bubbleData string
	seed       int64

	outputPath string
	format     string
	repeat     int

	addr    string
	dataDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sentiviz",
		Short:         "Animated sentiment charts",
		Long:          `sentiviz renders word frequency, survey term and sentiment score charts as animated SVG pages, PNG images and PDF reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default: user config dir)")
	flags.StringVar(&language, "lang", "", "Interface language: en, ru")
	flags.StringVar(&barData, "bar-data", "", "Word frequency dataset (csv, xlsx or URL)")
	flags.StringVar(&bubbleData, "bubble-data", "", "Survey terms dataset (csv, xlsx or URL)")
	flags.Int64Var(&seed, "seed", 0, "Random seed for bubble positions (0: random)")

	renderCmd := &cobra.Command{
		Use:       "render {bar|bubble|donut}",
		Short:     "Render a chart",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bar", "bubble", "donut"},
		RunE:      runRender,
	}
	renderCmd.Flags().StringVarP(&outputPath, "out", "o", "", "Output file path (default: stdout)")
	renderCmd.Flags().StringVarP(&format, "format", "f", "html", "Output format: html, svg, png, echarts")
	renderCmd.Flags().IntVar(&repeat, "repeat", 1, "Draw the chart this many times into the same page")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Export all charts into a PDF report",
		Args:  cobra.NoArgs,
		RunE:  runReport,
	}
	reportCmd.Flags().StringVarP(&outputPath, "out", "o", "sentiment.pdf", "Output PDF file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve chart pages over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory served under /data/")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Open the desktop preview window",
		Args:  cobra.NoArgs,
		RunE:  runPreview,
	}

	rootCmd.AddCommand(renderCmd, reportCmd, serveCmd, previewCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Ошибка: %v", err)
		os.Exit(1)
	}
}

// loadConfig читает конфигурацию и применяет флаги поверх нее
func loadConfig() (*config.AppConfig, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if language != "" {
		cfg.Language = language
	}
	if barData != "" {
		cfg.BarData = barData
	}
	if bubbleData != "" {
		cfg.BubbleData = bubbleData
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}

func newController(cfg *config.AppConfig) (*controller.ChartController, *localization.Locale, error) {
	locale, err := localization.NewBuiltinLocale(cfg.Language)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка загрузки локализации: %w", err)
	}

	logger := log.New(os.Stderr, "sentiviz: ", log.LstdFlags)
	repo := repository.NewDatasetRepository(&http.Client{Timeout: 30 * time.Second}, logger)
	eng := service.NewEngine(locale, logger, cfg.Seed)
	ctrl := controller.NewChartController(repo, eng, controller.Sources{
		Bar:    cfg.BarData,
		Bubble: cfg.BubbleData,
	})
	return ctrl, locale, nil
}

func output() (io.Writer, func() error, error) {
	if outputPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	kind, err := service.ParseKind(args[0])
	if err != nil {
		return err
	}
	if repeat < 1 {
		return fmt.Errorf("invalid repeat: %d", repeat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctrl, _, err := newController(cfg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var buf bytes.Buffer
	switch format {
	case "html", "svg":
		for i := 0; i < repeat; i++ {
			if err := ctrl.Draw(ctx, kind, connect.VisualSelector); err != nil {
				return err
			}
		}
		if format == "html" {
			err = ctrl.Page().Render(&buf)
			break
		}
		for _, s := range ctrl.Page().Surfaces(connect.VisualSelector) {
			buf.WriteString(string(s.Markup))
			buf.WriteByte('\n')
		}
	case "png":
		var data []byte
		if data, err = ctrl.GenerateChart(ctx, kind); err == nil {
			buf.Write(data)
		}
	case "echarts":
		err = ctrl.WriteInteractive(ctx, kind, &buf)
	default:
		return fmt.Errorf("invalid format: %s (must be html, svg, png or echarts)", format)
	}
	if err != nil {
		return err
	}

	w, closeOut, err := output()
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		closeOut()
		return fmt.Errorf("failed to write output: %w", err)
	}
	return closeOut()
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctrl, _, err := newController(cfg)
	if err != nil {
		return err
	}
	if !filepath.IsAbs(outputPath) && cfg.OutputDir != "" {
		outputPath = filepath.Join(cfg.OutputDir, outputPath)
	}
	return ctrl.ExportToPDF(cmd.Context(), outputPath)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Addr
	}
	if dataDir != "" {
		if barData == "" {
			cfg.BarData = filepath.Join(dataDir, filepath.Base(cfg.BarData))
		}
		if bubbleData == "" {
			cfg.BubbleData = filepath.Join(dataDir, filepath.Base(cfg.BubbleData))
		}
	}

	ctrl, _, err := newController(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	srv := web.NewServer(ctrl, dataDir, log.Default())
	if err := srv.ListenAndServe(ctx, addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctrl, locale, err := newController(cfg)
	if err != nil {
		return err
	}

	a := app.NewWithID("io.sentiviz.preview")
	view.NewMainWindow(a, ctrl, locale, cfg).Show()
	return nil
}

