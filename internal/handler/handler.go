package handler

import (
	"context"
	"net/url"

	"github.com/dmorgan81/pollinate/internal/image"
	"github.com/dmorgan81/pollinate/internal/log"
	"github.com/dmorgan81/pollinate/internal/store"
	"github.com/samber/do"
	"github.com/samber/lo"
)

type Input struct {
	APIKey string
	Model  string
	Prompt string
}

func (i Input) toImageParams() image.Params {
	return image.Params{
		APIKey: i.APIKey,
		Model:  i.Model,
		Prompt: i.Prompt,
	}
}

// S3 metadata travels as headers, so values are kept ASCII.
func (i Input) toMetadata() map[string]string {
	return map[string]string{
		"model":  url.QueryEscape(i.Model),
		"prompt": url.QueryEscape(i.Prompt),
	}
}

// Mirror is a secondary destination that failed or succeeded independently of
// the local file.
type Mirror struct {
	Location string
	Err      error
}

// Outcome is the result of one generation. Err is nil on success and an
// *image.Error otherwise.
type Outcome struct {
	URL     string
	Path    string
	Mirrors []Mirror
	Err     error
}

type urler interface {
	URL(image.Params) string
}

type Handler struct {
	generator image.Generator
	uploader  store.Uploader
	mirrors   []store.Uploader
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return New(
		do.MustInvoke[image.Generator](i),
		do.MustInvoke[*store.FileUploader](i),
		do.MustInvokeNamed[[]store.Uploader](i, "mirrors")...,
	), nil
}

func New(generator image.Generator, uploader store.Uploader, mirrors ...store.Uploader) *Handler {
	return &Handler{generator: generator, uploader: uploader, mirrors: mirrors}
}

// URL is the request URL for input, or "" if the generator does not expose one.
func (h *Handler) URL(input Input) string {
	if u, ok := h.generator.(urler); ok {
		return u.URL(input.toImageParams())
	}
	return ""
}

func (h *Handler) Handle(ctx context.Context, input Input) Outcome {
	params := input.toImageParams()
	log := log.FromContextOrDiscard(ctx).WithGroup("Handler").With("params", params)
	log.Info("handling generation request")

	out := Outcome{URL: h.URL(input)}

	img, err := h.generator.Generate(ctx, params)
	if err != nil {
		log.Info("generation failed", "kind", image.KindOf(err).String(), "error", err)
		out.Err = err
		return out
	}

	upload := store.UploadParams{
		Name:        image.Filename(input.Model, input.Prompt),
		Data:        img,
		ContentType: "image/png",
		Metadata:    input.toMetadata(),
	}
	path, err := h.uploader.Upload(ctx, upload)
	if err != nil {
		log.Info("writing image failed", "name", upload.Name, "error", err)
		out.Err = &image.Error{Kind: image.KindUnknown, Err: err}
		return out
	}
	out.Path = path

	out.Mirrors = lo.Map(h.mirrors, func(u store.Uploader, _ int) Mirror {
		loc, err := u.Upload(ctx, upload)
		if err != nil {
			log.Info("mirror upload failed", "name", upload.Name, "error", err)
		}
		return Mirror{Location: loc, Err: err}
	})

	log.Info("generation complete", "path", path)
	return out
}
