package inject

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmorgan81/pollinate/internal/session"
	"github.com/dmorgan81/pollinate/internal/store"
	"github.com/samber/do"
)

func envOf(m map[string]string) Env {
	return func(k string) string { return m[k] }
}

func TestSetupWithRunsSession(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("png"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	var out bytes.Buffer
	injector := SetupWith(context.Background(), envOf(map[string]string{
		"POLLINATE_BASE_URL":   srv.URL,
		"POLLINATE_OUTPUT_DIR": dir,
	}), strings.NewReader("key\nflux\n1\nkitten\n3\n"), &out)
	defer func() { _ = injector.Shutdown() }()

	if err := do.MustInvoke[*session.Session](injector).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "pollinations_flux_kitten.png"))
	if err != nil || string(got) != "png" {
		t.Fatalf("file = %q, %v\noutput:\n%s", got, err, out.String())
	}
	if gotQuery != "model=flux&key=key" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestMirrorsOnlyWithBucket(t *testing.T) {
	injector := SetupWith(context.Background(), envOf(nil), strings.NewReader(""), &bytes.Buffer{})
	mirrors := do.MustInvokeNamed[[]store.Uploader](injector, "mirrors")
	if len(mirrors) != 0 {
		t.Fatalf("no bucket configured, got %d mirrors", len(mirrors))
	}
}

func TestDefaults(t *testing.T) {
	injector := SetupWith(context.Background(), envOf(nil), strings.NewReader(""), &bytes.Buffer{})
	if got := do.MustInvokeNamed[string](injector, "base_url"); got != "https://gen.pollinations.ai" {
		t.Errorf("base_url = %q", got)
	}
	if got := do.MustInvokeNamed[string](injector, "output_dir"); got != "." {
		t.Errorf("output_dir = %q", got)
	}
	if c := do.MustInvoke[*http.Client](injector); c.Timeout != RequestTimeout {
		t.Errorf("timeout = %v", c.Timeout)
	}
}
