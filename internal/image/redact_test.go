package image

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmorgan81/pollinate/internal/log"
)

const secretKey = "SUPERSECRET"

func TestGenerateFailureNeverLogsKey(t *testing.T) {
	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()
	slowClient := slow.Client()
	slowClient.Timeout = 50 * time.Millisecond

	cases := map[string]*PollinationsGenerator{
		"connection": {Client: &http.Client{Timeout: time.Second}, BaseURL: closedURL},
		"timeout":    {Client: slowClient, BaseURL: slow.URL},
		"unknown":    {Client: http.DefaultClient, BaseURL: "ftp://example.invalid"},
	}
	for name, g := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := log.NewContext(context.Background(), log.New(&buf, slog.LevelDebug))

			_, err := g.Generate(ctx, Params{APIKey: secretKey, Model: "m", Prompt: "p"})
			if err == nil {
				t.Fatal("expected an error")
			}
			if strings.Contains(err.Error(), secretKey) {
				t.Errorf("error text contains the api key: %v", err)
			}
			if strings.Contains(buf.String(), secretKey) {
				t.Errorf("api key logged:\n%s", buf.String())
			}
			if !strings.Contains(buf.String(), "request failed") {
				t.Errorf("failure not logged:\n%s", buf.String())
			}
		})
	}
}

func TestClassifyKeepsKindAfterRedaction(t *testing.T) {
	closed := httptest.NewServer(http.NotFoundHandler())
	base := closed.URL
	closed.Close()

	g := &PollinationsGenerator{Client: &http.Client{Timeout: time.Second}, BaseURL: base}
	_, err := g.Generate(context.Background(), Params{APIKey: secretKey, Model: "m", Prompt: "p"})
	if KindOf(err) != KindConnection {
		t.Fatalf("kind = %v (%v)", KindOf(err), err)
	}
	if !strings.Contains(err.Error(), "key=REDACTED") {
		t.Errorf("expected redacted key in %q", err.Error())
	}
}
