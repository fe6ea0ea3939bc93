package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agbru/txt2pptx/internal/config"
	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/generation"
)

// The tests in this file are not parallel: New applies the color theme
// globally.

const deckBody = "PK\x03\x04 deck"

// fakeService emulates the txt2pptx HTTP API. Requests whose text contains
// "fail" get a 500 with a detail message.
type fakeService struct {
	*httptest.Server
	generated atomic.Int64

	mu    sync.Mutex
	texts []string
}

func newFakeService(t *testing.T, health string) *fakeService {
	t.Helper()
	svc := &fakeService{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text      string `json:"text"`
			NumSlides int    `json:"num_slides"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		svc.mu.Lock()
		svc.texts = append(svc.texts, body.Text)
		svc.mu.Unlock()

		if strings.Contains(body.Text, "fail") {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"detail": "quota exceeded"}`)
			return
		}
		n := svc.generated.Add(1)
		fmt.Fprintf(w, `{
			"success": true,
			"filename": "deck_%d.pptx",
			"outline": {
				"title": "Hello <b>World</b>",
				"slides": [
					{"layout": "title_slide", "title": "Hello"},
					{"layout": "bullet_points", "title": "Details"},
					{"layout": "conclusion", "title": "Wrap-up"}
				]
			}
		}`, n)
	})
	mux.HandleFunc("GET /api/download/{name}", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.PathValue("name"), "deck_") {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"detail": "file not found"}`)
			return
		}
		io.WriteString(w, deckBody)
	})
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"status": %q, "version": "1.4.0"}`, health)
	})
	svc.Server = httptest.NewServer(mux)
	t.Cleanup(svc.Close)
	return svc
}

func (s *fakeService) receivedTexts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

func testConfig(t *testing.T, baseURL string) config.AppConfig {
	t.Helper()
	cfg := config.Default()
	cfg.BaseURL = baseURL
	cfg.Language = string(generation.LanguageEnglish)
	cfg.ProgressInterval = 5 * time.Millisecond
	cfg.CompletionHold = 0
	cfg.OutputDir = t.TempDir()
	cfg.NoColor = true
	cfg.LogLevel = "disabled"
	return cfg
}

func newTestApp(t *testing.T, cfg config.AppConfig, opts ...AppOption) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	app, err := New(context.Background(), cfg, &errBuf, opts...)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return app, &errBuf
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.BaseURL = "ftp://example.com"
	_, err := New(context.Background(), cfg, io.Discard)
	var configErr apperrors.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("New() = %v, expected ConfigError", err)
	}
}

func TestRun_QuietPrintsFilename(t *testing.T) {
	svc := newFakeService(t, "ok")
	cfg := testConfig(t, svc.URL)
	cfg.Quiet = true
	cfg.Text = "Quarterly results"

	app, errBuf := newTestApp(t, cfg)
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, stderr: %s", code, errBuf)
	}
	if got, want := out.String(), "deck_1.pptx\n"; got != want {
		t.Errorf("output = %q, expected %q", got, want)
	}
	if texts := svc.receivedTexts(); len(texts) != 1 || texts[0] != "Quarterly results" {
		t.Errorf("service received %q", texts)
	}
}

func TestRun_SpinnerModeShowsOutline(t *testing.T) {
	svc := newFakeService(t, "ok")
	cfg := testConfig(t, svc.URL)
	cfg.Text = "Quarterly results"

	app, errBuf := newTestApp(t, cfg)
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, stderr: %s", code, errBuf)
	}
	for _, want := range []string{"Wrap-up", svc.URL + "/api/download/deck_1.pptx"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output should contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestRun_ReadsStdin(t *testing.T) {
	svc := newFakeService(t, "ok")
	cfg := testConfig(t, svc.URL)
	cfg.Quiet = true
	cfg.InputFile = "-"

	app, _ := newTestApp(t, cfg, WithInput(strings.NewReader("  from stdin \n")))
	if code := app.Run(context.Background(), io.Discard); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d", code)
	}
	if texts := svc.receivedTexts(); len(texts) != 1 || texts[0] != "from stdin" {
		t.Errorf("service received %q, expected the trimmed stdin text", texts)
	}
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantCode   int
		wantStderr string
		wantCalls  int
	}{
		{"service failure", "please fail", apperrors.ExitErrorGeneric, "quota exceeded", 1},
		{"blank text", "   \n\t", apperrors.ExitErrorValidation, "text must not be empty", 0},
		{"no text source", "", apperrors.ExitErrorConfig, "no source text", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeService(t, "ok")
			cfg := testConfig(t, svc.URL)
			cfg.Quiet = true
			cfg.Text = tt.text

			app, errBuf := newTestApp(t, cfg)
			var out bytes.Buffer
			if code := app.Run(context.Background(), &out); code != tt.wantCode {
				t.Errorf("Run() = %d, expected %d", code, tt.wantCode)
			}
			if !strings.Contains(errBuf.String(), tt.wantStderr) {
				t.Errorf("stderr should contain %q, got %q", tt.wantStderr, errBuf.String())
			}
			if out.Len() != 0 {
				t.Errorf("stdout should be empty, got %q", out.String())
			}
			if got := len(svc.receivedTexts()); got != tt.wantCalls {
				t.Errorf("service called %d times, expected %d", got, tt.wantCalls)
			}
		})
	}
}

func TestRun_DownloadReportAndMetrics(t *testing.T) {
	svc := newFakeService(t, "ok")
	cfg := testConfig(t, svc.URL)
	cfg.Quiet = true
	cfg.Text = "Quarterly results"
	cfg.Download = true
	dir := t.TempDir()
	cfg.ReportFile = filepath.Join(dir, "report.html")
	cfg.MetricsFile = filepath.Join(dir, "txt2pptx.prom")

	app, errBuf := newTestApp(t, cfg)
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, stderr: %s", code, errBuf)
	}

	deckPath := filepath.Join(cfg.OutputDir, "deck_1.pptx")
	if got, want := out.String(), deckPath+"\n"; got != want {
		t.Errorf("output = %q, expected %q", got, want)
	}
	data, err := os.ReadFile(deckPath)
	if err != nil {
		t.Fatalf("downloaded deck missing: %v", err)
	}
	if string(data) != deckBody {
		t.Errorf("deck content = %q", data)
	}

	html, err := os.ReadFile(cfg.ReportFile)
	if err != nil {
		t.Fatalf("report missing: %v", err)
	}
	if !strings.Contains(string(html), "Hello World") || strings.Contains(string(html), "<b>") {
		t.Errorf("report should contain the sanitized title, got:\n%s", html)
	}

	prom, err := os.ReadFile(cfg.MetricsFile)
	if err != nil {
		t.Fatalf("metrics file missing: %v", err)
	}
	if !strings.Contains(string(prom), `result="started"} 1`) {
		t.Errorf("metrics should count the started submission, got:\n%s", prom)
	}
}

type scriptedPrompter struct {
	requests []generation.Request
	asked    int
}

func (p *scriptedPrompter) PromptRequest(ctx context.Context, defaults generation.Request) (generation.Request, error) {
	if p.asked >= len(p.requests) {
		return generation.Request{}, context.Canceled
	}
	req := p.requests[p.asked]
	p.asked++
	return req, nil
}

func (p *scriptedPrompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	return p.asked < len(p.requests), nil
}

func TestRun_Interactive(t *testing.T) {
	svc := newFakeService(t, "ok")
	cfg := testConfig(t, svc.URL)
	cfg.Interactive = true
	cfg.Download = true

	prompter := &scriptedPrompter{requests: []generation.Request{
		cfg.Request("first deck"),
		cfg.Request("second deck"),
	}}
	app, errBuf := newTestApp(t, cfg, WithPrompter(prompter))
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, stderr: %s", code, errBuf)
	}
	if texts := svc.receivedTexts(); len(texts) != 2 {
		t.Fatalf("service received %q, expected two generations", texts)
	}
	for _, name := range []string{"deck_1.pptx", "deck_2.pptx"} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, name)); err != nil {
			t.Errorf("%s should have been downloaded: %v", name, err)
		}
	}
}

func writeInputs(t *testing.T, texts map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, text := range texts {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestRunBatch(t *testing.T) {
	t.Run("all succeed", func(t *testing.T) {
		svc := newFakeService(t, "ok")
		cfg := testConfig(t, svc.URL)
		app, errBuf := newTestApp(t, cfg)

		paths := writeInputs(t, map[string]string{"a.txt": "alpha", "b.txt": "beta", "c.txt": "gamma"})
		var out bytes.Buffer
		if code := app.RunBatch(context.Background(), &out, paths); code != apperrors.ExitSuccess {
			t.Fatalf("RunBatch() = %d, stderr: %s", code, errBuf)
		}
		for _, want := range []string{"Batch Summary", "a.txt", "b.txt", "c.txt"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("summary should contain %q, got:\n%s", want, out.String())
			}
		}
		if got := len(svc.receivedTexts()); got != 3 {
			t.Errorf("service called %d times, expected 3", got)
		}
	})

	t.Run("one failure", func(t *testing.T) {
		svc := newFakeService(t, "ok")
		cfg := testConfig(t, svc.URL)
		app, _ := newTestApp(t, cfg)

		paths := writeInputs(t, map[string]string{"ok.txt": "fine", "bad.txt": "this will fail"})
		var out bytes.Buffer
		if code := app.RunBatch(context.Background(), &out, paths); code != apperrors.ExitErrorGeneric {
			t.Errorf("RunBatch() = %d, expected %d", code, apperrors.ExitErrorGeneric)
		}
		if !strings.Contains(out.String(), "quota exceeded") {
			t.Errorf("summary should show the service message, got:\n%s", out.String())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		svc := newFakeService(t, "ok")
		app, _ := newTestApp(t, testConfig(t, svc.URL))
		missing := filepath.Join(t.TempDir(), "missing.txt")
		if code := app.RunBatch(context.Background(), io.Discard, []string{missing}); code != apperrors.ExitErrorConfig {
			t.Errorf("RunBatch() = %d, expected %d", code, apperrors.ExitErrorConfig)
		}
	})
}

// memorySink keeps stored decks in memory.
type memorySink struct {
	mu    sync.Mutex
	files map[string]string
}

func (m *memorySink) Store(_ context.Context, name string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string]string)
	}
	m.files[name] = string(data)
	return "mem://" + name, nil
}

func TestRunBatch_JSONLogAndCustomSink(t *testing.T) {
	svc := newFakeService(t, "ok")
	cfg := testConfig(t, svc.URL)
	cfg.Quiet = true
	cfg.Download = true
	cfg.LogFormat = "json"
	cfg.LogLevel = "info"
	sink := &memorySink{}
	app, errBuf := newTestApp(t, cfg, WithHTTPClient(svc.Client()), WithSink(sink))

	paths := writeInputs(t, map[string]string{"only.txt": "alpha"})
	var out bytes.Buffer
	if code := app.RunBatch(context.Background(), &out, paths); code != apperrors.ExitSuccess {
		t.Fatalf("RunBatch() = %d, stderr: %s", code, errBuf)
	}
	if got := sink.files["deck_1.pptx"]; got != deckBody {
		t.Errorf("sink holds %q, expected the downloaded deck", got)
	}
	if !strings.Contains(out.String(), "mem://deck_1.pptx") {
		t.Errorf("quiet output should name the stored location, got %q", out.String())
	}
	for _, want := range []string{`"message":"batch finished"`, `"component":"app"`, `"jobs":1`} {
		if !strings.Contains(errBuf.String(), want) {
			t.Errorf("log should contain %s, got:\n%s", want, errBuf.String())
		}
	}
}

func TestRunHealth(t *testing.T) {
	tests := []struct {
		status   string
		wantCode int
	}{
		{"ok", apperrors.ExitSuccess},
		{"degraded", apperrors.ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			svc := newFakeService(t, tt.status)
			app, _ := newTestApp(t, testConfig(t, svc.URL))
			var out bytes.Buffer
			if code := app.RunHealth(context.Background(), &out); code != tt.wantCode {
				t.Errorf("RunHealth() = %d, expected %d", code, tt.wantCode)
			}
			if !strings.Contains(out.String(), tt.status) || !strings.Contains(out.String(), "1.4.0") {
				t.Errorf("health output = %q", out.String())
			}
		})
	}
}

func TestRunDownload(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		wantCode   int
		wantStderr string
	}{
		{"stored", "deck_7.pptx", apperrors.ExitSuccess, ""},
		{"unknown file", "other.pptx", apperrors.ExitErrorGeneric, "file not found"},
		{"unsafe name", "..", apperrors.ExitErrorValidation, "filename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeService(t, "ok")
			cfg := testConfig(t, svc.URL)
			cfg.Quiet = true
			app, errBuf := newTestApp(t, cfg)

			var out bytes.Buffer
			if code := app.RunDownload(context.Background(), &out, tt.filename); code != tt.wantCode {
				t.Fatalf("RunDownload() = %d, expected %d (stderr: %s)", code, tt.wantCode, errBuf)
			}
			if !strings.Contains(errBuf.String(), tt.wantStderr) {
				t.Errorf("stderr should contain %q, got %q", tt.wantStderr, errBuf.String())
			}
			if tt.wantCode != apperrors.ExitSuccess {
				return
			}
			path := filepath.Join(cfg.OutputDir, tt.filename)
			if got := strings.TrimSpace(out.String()); got != path {
				t.Errorf("output = %q, expected %q", got, path)
			}
			if data, err := os.ReadFile(path); err != nil || string(data) != deckBody {
				t.Errorf("stored deck = %q, %v", data, err)
			}
		})
	}
}

// brokenSink fails after reading up to limit bytes.
type brokenSink struct{ limit int64 }

func (b brokenSink) Store(_ context.Context, _ string, body io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, io.LimitReader(body, b.limit)); err != nil {
		return "", err
	}
	return "", errors.New("disk full")
}

func TestRunDownload_SinkFailureIsReportedAsStore(t *testing.T) {
	tests := []struct {
		name  string
		limit int64
	}{
		{"before reading", 0},
		{"mid stream", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeService(t, "ok")
			app, errBuf := newTestApp(t, testConfig(t, svc.URL), WithSink(brokenSink{limit: tt.limit}))

			if code := app.RunDownload(context.Background(), io.Discard, "deck_3.pptx"); code != apperrors.ExitErrorGeneric {
				t.Fatalf("RunDownload() = %d, expected %d", code, apperrors.ExitErrorGeneric)
			}
			stderr := errBuf.String()
			if !strings.Contains(stderr, "store deck_3.pptx: disk full") {
				t.Errorf("stderr should blame the sink, got %q", stderr)
			}
			if strings.Contains(stderr, "request failed") {
				t.Errorf("sink failure reported as a network error: %q", stderr)
			}
		})
	}
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	PrintVersion(&out)
	if !strings.HasPrefix(out.String(), "txt2pptx "+Version) {
		t.Errorf("PrintVersion() = %q", out.String())
	}
}
