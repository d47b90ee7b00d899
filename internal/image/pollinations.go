package image

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"

	"github.com/go-logr/logr"
	"github.com/samber/do"
	"github.com/samber/lo"
)

const DefaultBaseURL = "https://gen.pollinations.ai"

// maxDetail bounds how much of an error response body ends up in Error.Detail.
const maxDetail = 256

type PollinationsGenerator struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
}

func NewPollinationsGenerator(i *do.Injector) (Generator, error) {
	info, ok := debug.ReadBuildInfo()
	revision := "unknown"
	if ok {
		revision = lo.FindOrElse(info.Settings, debug.BuildSetting{Value: "unknown"}, func(s debug.BuildSetting) bool {
			return s.Key == "vcs.revision"
		}).Value
	}

	return &PollinationsGenerator{
		Client:    do.MustInvoke[*http.Client](i),
		BaseURL:   do.MustInvokeNamed[string](i, "base_url"),
		UserAgent: "pollinate/" + revision,
	}, nil
}

// BuildURL returns the request URL for params against base:
// {base}/image/{prompt}?model={model}&key={key}.
func BuildURL(base string, params Params) string {
	base = strings.TrimRight(lo.Ternary(base != "", base, DefaultBaseURL), "/")
	return fmt.Sprintf("%s/image/%s?model=%s&key=%s",
		base,
		url.PathEscape(params.Prompt),
		url.QueryEscape(params.Model),
		url.QueryEscape(params.APIKey),
	)
}

// URL is BuildURL against the generator's base URL.
func (g *PollinationsGenerator) URL(params Params) string {
	return BuildURL(g.BaseURL, params)
}

func (g *PollinationsGenerator) Generate(ctx context.Context, params Params) ([]byte, error) {
	log := logr.FromContextOrDiscard(ctx).WithName("pollinations").WithValues("params", params)
	log.Info("generating image via gen.pollinations.ai")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.URL(params), nil)
	if err != nil {
		return nil, classify(err)
	}
	if g.UserAgent != "" {
		req.Header.Set("User-Agent", g.UserAgent)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		e := classify(err)
		log.Error(e, "request failed", "kind", e.Kind.String())
		return nil, e
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxDetail))
		log.Info("received error status", "status", resp.StatusCode)
		return nil, &Error{
			Kind:       KindHTTP,
			StatusCode: resp.StatusCode,
			Status:     lo.Ternary(resp.Status != "", resp.Status, fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))),
			Detail:     strings.TrimSpace(string(detail)),
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		e := classify(err)
		log.Error(e, "reading body failed", "kind", e.Kind.String())
		return nil, e
	}
	log.Info("received image via gen.pollinations.ai", "bytes", len(data))
	return data, nil
}
