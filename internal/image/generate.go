package image

import (
	"context"
	"log/slog"
)

// Params is a single generation request. All fields are required.
type Params struct {
	APIKey string
	Model  string
	Prompt string
}

// LogValue hides the API key from structured logs.
func (p Params) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("model", p.Model),
		slog.String("prompt", p.Prompt),
	)
}

type Generator interface {
	Generate(context.Context, Params) ([]byte, error)
}
