package view

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"sentiviz/internal/controller"
	"sentiviz/internal/service"
	"sentiviz/pkg/config"
	"sentiviz/pkg/localization"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainWindow - окно предпросмотра графиков
type MainWindow struct {
	app        fyne.App
	window     fyne.Window
	tabs       *container.AppTabs
	images     map[service.Kind]*canvas.Image
	controller *controller.ChartController
	locale     *localization.Locale
	cfg        *config.AppConfig
}

func NewMainWindow(app fyne.App, ctrl *controller.ChartController, locale *localization.Locale, cfg *config.AppConfig) *MainWindow {
	if ctrl == nil {
		log.Fatal("Контроллер не инициализирован")
	}
	if cfg == nil {
		cfg = config.Default()
	}

	w := app.NewWindow(locale.Translate("Sentiment Charts"))
	return &MainWindow{
		app:        app,
		window:     w,
		images:     make(map[service.Kind]*canvas.Image),
		controller: ctrl,
		locale:     locale,
		cfg:        cfg,
	}
}

func (mw *MainWindow) setupMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu(mw.locale.Translate("File"),
		fyne.NewMenuItem(mw.locale.Translate("Open bar data"), func() { mw.onOpen(service.KindBar) }),
		fyne.NewMenuItem(mw.locale.Translate("Open bubble data"), func() { mw.onOpen(service.KindBubble) }),
		fyne.NewMenuItem(mw.locale.Translate("Reload"), mw.redrawCharts),
		fyne.NewMenuItem(mw.locale.Translate("Export to PDF"), mw.onExportPDF),
		fyne.NewMenuItem(mw.locale.Translate("Print"), mw.onPrint),
		fyne.NewMenuItem(mw.locale.Translate("Exit"), func() { mw.app.Quit() }),
	)

	langMenu := fyne.NewMenu(mw.locale.Translate("Language"),
		fyne.NewMenuItem("English", func() { mw.changeLanguage("en") }),
		fyne.NewMenuItem("Русский", func() { mw.changeLanguage("ru") }),
	)

	return fyne.NewMainMenu(fileMenu, langMenu)
}

func tabTitle(kind service.Kind) string {
	switch kind {
	case service.KindBar:
		return "Bar Chart"
	case service.KindBubble:
		return "Bubble Chart"
	}
	return "Donut Chart"
}

func (mw *MainWindow) setupTabs() {
	mw.tabs = container.NewAppTabs()
	for _, kind := range service.Kinds {
		img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(800, 600))
		mw.images[kind] = img
		mw.tabs.Append(container.NewTabItem(mw.locale.Translate(tabTitle(kind)), container.NewScroll(img)))
	}
}

func (mw *MainWindow) Show() {
	mw.window.SetMainMenu(mw.setupMenu())
	mw.setupTabs()
	mw.window.SetContent(mw.tabs)
	mw.window.Resize(fyne.NewSize(float32(mw.cfg.WindowSize.Width), float32(mw.cfg.WindowSize.Height)))
	mw.redrawCharts()
	mw.window.ShowAndRun()
}

// redrawCharts перерисовывает все вкладки в фоне
func (mw *MainWindow) redrawCharts() {
	progress := dialog.NewCustomWithoutButtons(
		mw.locale.Translate("Generating charts"),
		widget.NewProgressBarInfinite(),
		mw.window,
	)
	progress.Show()

	go func() {
		charts := make(map[service.Kind]image.Image)
		var firstErr error
		for _, kind := range service.Kinds {
			data, err := mw.controller.GenerateChart(context.Background(), kind)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			decoded, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			charts[kind] = decoded
		}

		fyne.Do(func() {
			progress.Hide()
			for kind, decoded := range charts {
				img := mw.images[kind]
				img.Image = decoded
				img.Refresh()
			}
			if firstErr != nil {
				dialog.ShowError(firstErr, mw.window)
			}
		})
	}()
}

func (mw *MainWindow) onOpen(kind service.Kind) {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		sources := mw.controller.Sources()
		if kind == service.KindBar {
			sources.Bar = path
			mw.cfg.BarData = path
		} else {
			sources.Bubble = path
			mw.cfg.BubbleData = path
		}
		mw.controller.SetSources(sources)

		mw.cfg.AddRecentFile(path)
		if err := config.SaveConfig(mw.cfg); err != nil {
			log.Printf("Ошибка сохранения конфигурации: %v", err)
		}
		mw.redrawCharts()
	}, mw.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".xlsx"}))
	fileDialog.Show()
}

func (mw *MainWindow) changeLanguage(lang string) {
	if err := mw.locale.SetLanguage(lang, ""); err != nil {
		log.Printf("Ошибка смены языка: %v", err)
		return
	}

	mw.cfg.Language = lang
	if err := config.SaveConfig(mw.cfg); err != nil {
		log.Printf("Ошибка сохранения конфигурации: %v", err)
	}

	mw.window.SetMainMenu(mw.setupMenu())
	for i, kind := range service.Kinds {
		mw.tabs.Items[i].Text = mw.locale.Translate(tabTitle(kind))
	}
	mw.tabs.Refresh()
	mw.window.SetTitle(mw.locale.Translate("Sentiment Charts"))
	mw.redrawCharts()
}

func (mw *MainWindow) showNotification(message string) {
	notification := fyne.NewNotification(
		mw.locale.Translate("Notification"),
		mw.locale.Translate(message),
	)
	mw.app.SendNotification(notification)
}

func (mw *MainWindow) onExportPDF() {
	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if writer == nil {
			return
		}
		writer.Close()

		filePath := writer.URI().Path()
		if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
			filePath += ".pdf"
		}

		if err := mw.controller.ExportToPDF(context.Background(), filePath); err != nil {
			dialog.ShowError(fmt.Errorf("export failed: %w", err), mw.window)
			return
		}

		mw.showNotification("PDF exported successfully")
	}, mw.window)

	saveDialog.SetFileName("sentiment.pdf")
	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	saveDialog.Show()
}

func (mw *MainWindow) onPrint() {
	go func() {
		pdfData, err := mw.controller.GetPrintableData(context.Background())
		if err != nil {
			fyne.Do(func() { dialog.ShowError(err, mw.window) })
			return
		}

		tmpFile, err := os.CreateTemp("", "sentiviz_*.pdf")
		if err != nil {
			fyne.Do(func() { dialog.ShowError(err, mw.window) })
			return
		}
		_, err = tmpFile.Write(pdfData)
		tmpFile.Close()
		if err != nil {
			fyne.Do(func() { dialog.ShowError(err, mw.window) })
			return
		}

		fyne.Do(func() { mw.openPDF(tmpFile.Name()) })
	}()
}

// openPDF открывает файл системной программой просмотра
func (mw *MainWindow) openPDF(filename string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", filename)
	case "darwin":
		cmd = exec.Command("open", filename)
	default:
		cmd = exec.Command("xdg-open", filename)
	}

	if err := cmd.Start(); err != nil {
		dialog.ShowError(fmt.Errorf("не удалось открыть PDF: %w", err), mw.window)
	}
}
