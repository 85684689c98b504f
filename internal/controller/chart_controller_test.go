package controller

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"sentiviz/internal/connect"
	"sentiviz/internal/repository"
	"sentiviz/internal/service"
)

const (
	barCSV = "words,count,emotion\nsupport,7,positive\nstress,x,negative\nparents,3,neutral\n"
	bubbleCSV = "word,occurrence,emotion\nstudents,42,positive\nworkload,25,negative\n"
)

func newTestController(t *testing.T) *ChartController {
	t.Helper()
	dir := t.TempDir()
	bar := filepath.Join(dir, "bar.csv")
	bubble := filepath.Join(dir, "bubble.csv")
	if err := os.WriteFile(bar, []byte(barCSV), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bubble, []byte(bubbleCSV), 0644); err != nil {
		t.Fatal(err)
	}

	eng := service.NewEngine(nil, nil, 7)
	eng.MaxFrames = 5
	return NewChartController(repository.NewDatasetRepository(nil, nil), eng, Sources{Bar: bar, Bubble: bubble})
}

func TestDrawAppendsToCurrentPage(t *testing.T) {
	ctrl := newTestController(t)
	ctx := context.Background()

	for _, kind := range service.Kinds {
		if err := ctrl.Draw(ctx, kind, connect.VisualSelector); err != nil {
			t.Fatalf("draw %s: %v", kind, err)
		}
	}
	if err := ctrl.DrawBar(ctx, connect.VisualSelector); err != nil {
		t.Fatal(err)
	}

	if n := len(ctrl.Page().Surfaces(connect.VisualSelector)); n != 4 {
		t.Errorf("expected 4 surfaces, got %d", n)
	}

	issues := ctrl.Issues(service.KindBar)
	if len(issues) != 1 {
		t.Fatalf("expected one bar issue, got %v", issues)
	}

	ctrl.NewPage()
	if n := len(ctrl.Page().Surfaces(connect.VisualSelector)); n != 0 {
		t.Errorf("new page must be empty, got %d surfaces", n)
	}
}

func TestBuildPageLeavesCurrentPage(t *testing.T) {
	ctrl := newTestController(t)
	page, err := ctrl.BuildPage(context.Background(), "all", service.Kinds...)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(page.Surfaces(connect.VisualSelector)); n != 3 {
		t.Errorf("expected 3 surfaces, got %d", n)
	}
	if n := len(ctrl.Page().Surfaces(connect.VisualSelector)); n != 0 {
		t.Errorf("current page must stay empty, got %d surfaces", n)
	}
}

func TestDrawMissingSource(t *testing.T) {
	ctrl := newTestController(t)
	ctrl.SetSources(Sources{Bar: filepath.Join(t.TempDir(), "missing.csv")})

	err := ctrl.DrawBar(context.Background(), connect.VisualSelector)
	var loadErr *repository.LoadError
	if !errors.As(err, &loadErr) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected load error for missing file, got %v", err)
	}
	if n := len(ctrl.Page().Surfaces(connect.VisualSelector)); n != 0 {
		t.Errorf("nothing must be drawn on load failure, got %d surfaces", n)
	}
}

func TestDrawUnknownKind(t *testing.T) {
	ctrl := newTestController(t)
	if err := ctrl.Draw(context.Background(), "line", connect.VisualSelector); !errors.Is(err, service.ErrUnknownChart) {
		t.Errorf("expected ErrUnknownChart, got %v", err)
	}
	if _, err := ctrl.GenerateChart(context.Background(), "line"); !errors.Is(err, service.ErrUnknownChart) {
		t.Errorf("expected ErrUnknownChart, got %v", err)
	}
}

func TestExportToPDF(t *testing.T) {
	ctrl := newTestController(t)
	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := ctrl.ExportToPDF(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("report is not a PDF")
	}
}

func TestWriteInteractive(t *testing.T) {
	ctrl := newTestController(t)
	var buf bytes.Buffer
	if err := ctrl.WriteInteractive(context.Background(), service.KindBar, &buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("support")) {
		t.Errorf("interactive page lacks bar labels")
	}
}

func TestConcurrentGenerateChart(t *testing.T) {
	ctrl := newTestController(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := ctrl.GenerateChart(ctx, service.KindBubble)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			errs <- ctrl.DrawBubble(ctx, connect.VisualSelector)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent draw failed: %v", err)
		}
	}
	if n := len(ctrl.Page().Surfaces(connect.VisualSelector)); n != 4 {
		t.Errorf("expected 4 surfaces, got %d", n)
	}
}

func TestDonutTooltipOncePerPage(t *testing.T) {
	ctrl := newTestController(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := ctrl.DrawDonut(ctx, connect.VisualSelector); err != nil {
			t.Fatal(err)
		}
	}
	if n := len(ctrl.Page().Surfaces(connect.VisualSelector)); n != 2 {
		t.Errorf("expected 2 donut surfaces, got %d", n)
	}
	if n := len(ctrl.Page().Body); n != 1 {
		t.Errorf("expected one tooltip div, got %d body elements", n)
	}

	page, err := ctrl.BuildPage(ctx, "donuts", service.KindDonut, service.KindDonut)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(page.Body); n != 1 {
		t.Errorf("built page: expected one tooltip div, got %d", n)
	}

	ctrl.NewPage()
	if err := ctrl.DrawDonut(ctx, connect.VisualSelector); err != nil {
		t.Fatal(err)
	}
	if n := len(ctrl.Page().Body); n != 1 {
		t.Errorf("new page must get its own tooltip div, got %d", n)
	}
}

func TestScoreIssues(t *testing.T) {
	ctrl := newTestController(t)
	ctrl.Scores[1].Score = math.NaN()
	if _, err := ctrl.GenerateChart(context.Background(), service.KindDonut); err != nil {
		t.Fatal(err)
	}
	if issues := ctrl.Issues(service.KindDonut); len(issues) != 1 {
		t.Errorf("expected one score issue, got %v", issues)
	}
}
