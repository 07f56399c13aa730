package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/neomorfeo/serialgen/internal/adapter/random"
	"github.com/neomorfeo/serialgen/internal/adapter/sqlite"
	"github.com/neomorfeo/serialgen/internal/app"
	"github.com/neomorfeo/serialgen/internal/domain"
)

func TestEnvOrDefault_Fallback(t *testing.T) {
	v := envOrDefault("SERIALGEN_TEST_NONEXISTENT_KEY", "fallback")
	if v != "fallback" {
		t.Errorf("got %q, want %q", v, "fallback")
	}
}

func TestEnvOrDefault_EnvSet(t *testing.T) {
	t.Setenv("SERIALGEN_TEST_KEY", "custom")

	v := envOrDefault("SERIALGEN_TEST_KEY", "fallback")
	if v != "custom" {
		t.Errorf("got %q, want %q", v, "custom")
	}
}

func TestNewGenerator(t *testing.T) {
	gen, err := newGenerator("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gen.(*random.NanoID); !ok {
		t.Errorf("empty seed: got %T, want *random.NanoID", gen)
	}

	gen, err = newGenerator("42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gen.(*random.Seeded); !ok {
		t.Errorf("seed 42: got %T, want *random.Seeded", gen)
	}

	if _, err := newGenerator("not-a-number"); err == nil {
		t.Error("expected error for invalid seed, got nil")
	}
}

// testPublisher is a local EventPublisher for the smoke test.
// The smoke test verifies HTTP wiring, not River.
type testPublisher struct {
	repo domain.ActivityRepository
}

func (p *testPublisher) Publish(ctx context.Context, a domain.Activity) error {
	return p.repo.Record(ctx, a)
}

// TestSmoke wires the full stack like run() and verifies it responds.
func TestSmoke(t *testing.T) {
	dbPath := t.TempDir() + "/test.db"

	repo, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("database: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	serials, err := app.NewSerialService(random.NewNanoID(), &testPublisher{repo: repo})
	if err != nil {
		t.Fatalf("service: %v", err)
	}

	srv := httptest.NewServer(newRouter("serialgen-test", serials, app.NewActivityService(repo)))
	t.Cleanup(srv.Close)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL+"/api/v1/serials", nil)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /api/v1/serials failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if resp.Header.Get("Content-Type") == "" {
		t.Error("missing Content-Type header")
	}

	var body struct {
		Serial string `json:"serial"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Serial) != domain.DefaultLength {
		t.Errorf("got %d characters, want %d", len(body.Serial), domain.DefaultLength)
	}
}

// discardStdout silences the OTel stdout exporter for the rest of the test.
func discardStdout(t *testing.T) {
	t.Helper()

	origStdout := os.Stdout
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("opening /dev/null: %v", err)
	}
	os.Stdout = devNull
	t.Cleanup(func() {
		os.Stdout = origStdout
		devNull.Close()
	})
}

// TestRun exercises the real run() function end-to-end: OTel, River, HTTP
// server, and graceful shutdown. It uses stdout OTel exporter and a temp
// database to avoid external dependencies.
func TestRun(t *testing.T) {
	t.Setenv("DATABASE_PATH", t.TempDir()+"/test-run.db")
	t.Setenv("PORT", "19876")
	t.Setenv("OTEL_EXPORTER", "stdout")
	t.Setenv("OTEL_ENVIRONMENT", "test")
	t.Setenv("LOG_LEVEL", "error")
	discardStdout(t)

	errCh := make(chan error, 1)
	go func() { errCh <- run() }()

	// Wait for the HTTP server to become ready.
	serverURL := "http://localhost:19876"
	ready := false
	for i := 0; i < 50; i++ {
		req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, serverURL+"/api/v1/footer", nil)
		resp, reqErr := http.DefaultClient.Do(req)
		if reqErr == nil {
			resp.Body.Close()
			ready = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !ready {
		t.Fatal("server did not start within 5 seconds")
	}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, serverURL+"/api/v1/serials?length=8", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /api/v1/serials failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// Send SIGINT to trigger graceful shutdown.
	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("finding process: %v", err)
	}
	if err := proc.Signal(syscall.SIGINT); err != nil {
		t.Fatalf("sending SIGINT: %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run() returned error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("run() did not exit within 10 seconds")
	}
}

// TestRun_InvalidDB verifies run() returns an error for an invalid database path.
func TestRun_InvalidDB(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/nonexistent/path/db.sqlite")
	t.Setenv("PORT", "19877")
	t.Setenv("OTEL_EXPORTER", "stdout")
	t.Setenv("OTEL_ENVIRONMENT", "test")
	discardStdout(t)

	if err := run(); err == nil {
		t.Fatal("expected error for invalid database path, got nil")
	}
}

func TestRun_InvalidSeed(t *testing.T) {
	t.Setenv("SERIAL_SEED", "abc")
	t.Setenv("OTEL_EXPORTER", "none")

	if err := run(); err == nil {
		t.Fatal("expected error for invalid seed, got nil")
	}
}

// memClipboard records the last write or fails with err.
type memClipboard struct {
	text string
	err  error
}

func (c *memClipboard) WriteText(_ context.Context, text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, clip domain.Clipboard, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd(clip)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCmd(t *testing.T) {
	out, err := execute(t, &memClipboard{}, "generate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	serial := strings.TrimSuffix(out, "\n")
	if len(serial) != domain.DefaultLength || !domain.Identifier(serial).Valid() {
		t.Errorf("output %q, want %d alphabet characters", out, domain.DefaultLength)
	}
}

func TestGenerateCmd_Length(t *testing.T) {
	out, err := execute(t, &memClipboard{}, "generate", "--length", "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSuffix(out, "\n"); len(got) != 5 {
		t.Errorf("output %q, want 5 characters", got)
	}

	out, err = execute(t, &memClipboard{}, "generate", "-n", "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "\n" {
		t.Errorf("output %q, want an empty line", out)
	}
}

func TestGenerateCmd_LengthFromEnv(t *testing.T) {
	t.Setenv("SERIAL_LENGTH", "7")

	out, err := execute(t, &memClipboard{}, "generate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSuffix(out, "\n"); len(got) != 7 {
		t.Errorf("output %q, want 7 characters", got)
	}
}

func TestGenerateCmd_NegativeLength(t *testing.T) {
	_, err := execute(t, &memClipboard{}, "generate", "--length", "-1")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestGenerateCmd_SeedIsReproducible(t *testing.T) {
	first, err := execute(t, &memClipboard{}, "generate", "--seed", "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := execute(t, &memClipboard{}, "generate", "--seed", "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("same seed produced %q and %q", first, second)
	}
}

func TestGenerateCmd_Copy(t *testing.T) {
	clip := &memClipboard{}

	out, err := execute(t, clip, "generate", "--copy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("output %q, want serial and notice", out)
	}
	if clip.text != lines[0] {
		t.Errorf("clipboard = %q, want %q", clip.text, lines[0])
	}
	if lines[1] != app.NoticeCopied {
		t.Errorf("notice = %q, want %q", lines[1], app.NoticeCopied)
	}
}

func TestGenerateCmd_CopyFailureIsNotFatal(t *testing.T) {
	out, err := execute(t, &memClipboard{err: errors.New("no clipboard")}, "generate", "--copy")
	if err != nil {
		t.Fatalf("clipboard failure should not fail the command, got %v", err)
	}
	if !strings.Contains(out, "Failed to copy text: no clipboard") {
		t.Errorf("output %q, want failure notice", out)
	}
}

func TestBackgroundCmd(t *testing.T) {
	out, err := execute(t, nil, "background", "--color", "#FF8800")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "linear-gradient(135deg, #ff8800 0%, #ff8800dd 100%)\n"
	if out != want {
		t.Errorf("output %q, want %q", out, want)
	}
}

func TestBackgroundCmd_Default(t *testing.T) {
	out, err := execute(t, nil, "background")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, domain.DefaultColor) {
		t.Errorf("output %q, want default color %s", out, domain.DefaultColor)
	}
}

func TestBackgroundCmd_InvalidColor(t *testing.T) {
	for _, color := range []string{"blue", "#12345g", "#12 456"} {
		out, err := execute(t, nil, "background", "--color", color)

		var colorErr *domain.ColorError
		if !errors.As(err, &colorErr) {
			t.Errorf("--color %q: expected *domain.ColorError, got %v", color, err)
		}
		if out != "" {
			t.Errorf("--color %q: output %q, want none", color, out)
		}
	}
}
