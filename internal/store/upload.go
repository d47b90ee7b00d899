package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/samber/do"
)

type UploadParams struct {
	Name        string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

// Uploader persists an image and returns where it ended up.
type Uploader interface {
	Upload(context.Context, UploadParams) (string, error)
}

// FileUploader writes into Dir, or the working directory when Dir is empty.
// Existing files are overwritten.
type FileUploader struct {
	Dir string
}

func NewFileUploader(i *do.Injector) (*FileUploader, error) {
	return &FileUploader{Dir: do.MustInvokeNamed[string](i, "output_dir")}, nil
}

func (u *FileUploader) Upload(ctx context.Context, params UploadParams) (string, error) {
	path, err := filepath.Abs(filepath.Join(u.Dir, params.Name))
	if err != nil {
		return "", err
	}

	log := logr.FromContextOrDiscard(ctx).WithName("file")
	log.Info("writing", "file", path, "bytes", len(params.Data))
	if err := os.WriteFile(path, params.Data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
