package web

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sentiviz/internal/controller"
	"sentiviz/internal/repository"
	"sentiviz/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	bar := filepath.Join(dir, "emotion_words_all.csv")
	bubble := filepath.Join(dir, "survey_count.csv")
	if err := os.WriteFile(bar, []byte("words,count,emotion\nsupport,7,positive\nstress,5,negative\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bubble, []byte("word,occurrence,emotion\nstudents,42,positive\ntime,5,negative\n"), 0644); err != nil {
		t.Fatal(err)
	}

	logger := log.New(io.Discard, "", 0)
	eng := service.NewEngine(nil, logger, 1)
	eng.MaxFrames = 5
	ctrl := controller.NewChartController(repository.NewDatasetRepository(nil, logger), eng,
		controller.Sources{Bar: bar, Bubble: bubble})

	ts := httptest.NewServer(NewServer(ctrl, dir, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"/", http.StatusOK, "text/html", "<svg"},
		{"/bar", http.StatusOK, "text/html", "Emotional Word Frequency"},
		{"/bubble", http.StatusOK, "text/html", "students"},
		{"/donut", http.StatusOK, "text/html", `class="tooltip"`},
		{"/chart/donut.png", http.StatusOK, "image/png", "PNG"},
		{"/chart/line.png", http.StatusNotFound, "", ""},
		{"/chart/bar.svg", http.StatusNotFound, "", ""},
		{"/data/survey_count.csv", http.StatusOK, "", "occurrence"},
		{"/health", http.StatusOK, "", "Server is running"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Fatalf("status %d, expected %d: %s", resp.StatusCode, tt.status, body)
			}
			if tt.contentType != "" && !strings.HasPrefix(resp.Header.Get("Content-Type"), tt.contentType) {
				t.Errorf("content type %q, expected %q", resp.Header.Get("Content-Type"), tt.contentType)
			}
			if !strings.Contains(body, tt.contains) {
				t.Errorf("body lacks %q", tt.contains)
			}
			if got := resp.Header.Get("Cache-Control"); !strings.Contains(got, "no-store") {
				t.Errorf("caching must be disabled, got %q", got)
			}
		})
	}
}

func TestEachRequestDrawsFreshPage(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 2; i++ {
		_, body := get(t, ts.URL+"/bar")
		if n := strings.Count(body, `class="title"`); n != 1 {
			t.Errorf("request %d: expected one chart title, got %d", i, n)
		}
	}
}
