package inject

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmorgan81/pollinate/internal/console"
	"github.com/dmorgan81/pollinate/internal/handler"
	"github.com/dmorgan81/pollinate/internal/image"
	"github.com/dmorgan81/pollinate/internal/log"
	"github.com/dmorgan81/pollinate/internal/session"
	"github.com/dmorgan81/pollinate/internal/store"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// RequestTimeout bounds a whole generation request, body included.
const RequestTimeout = 60 * time.Second

// Env is the environment the injector reads its settings from.
type Env func(string) string

func getenv(env Env, key, fallback string) string {
	v := env(key)
	return lo.Ternary(v != "", v, fallback)
}

// Setup wires the application to the process environment and standard streams.
func Setup(ctx context.Context) *do.Injector {
	return SetupWith(ctx, os.Getenv, os.Stdin, os.Stdout)
}

func SetupWith(ctx context.Context, env Env, in io.Reader, out io.Writer) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	})

	do.ProvideNamedValue[string](injector, "base_url", getenv(env, "POLLINATE_BASE_URL", image.DefaultBaseURL))
	do.ProvideNamedValue[string](injector, "output_dir", getenv(env, "POLLINATE_OUTPUT_DIR", "."))
	do.ProvideNamedValue[string](injector, "bucket", env("POLLINATE_BUCKET"))
	do.ProvideNamedValue[string](injector, "bucket_prefix", env("POLLINATE_BUCKET_PREFIX"))

	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return config.LoadDefaultConfig(ctx)
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.ProvideValue[*http.Client](injector, &http.Client{Timeout: RequestTimeout})

	do.Provide[image.Generator](injector, image.NewPollinationsGenerator)
	do.Provide[*store.FileUploader](injector, store.NewFileUploader)
	do.Provide[*store.S3Uploader](injector, store.NewS3Uploader)
	do.ProvideNamed[[]store.Uploader](injector, "mirrors", func(i *do.Injector) ([]store.Uploader, error) {
		if do.MustInvokeNamed[string](i, "bucket") == "" {
			return nil, nil
		}
		u, err := do.Invoke[*store.S3Uploader](i)
		if err != nil {
			return nil, err
		}
		return []store.Uploader{u}, nil
	})

	do.ProvideValue[*console.Console](injector, console.New(in, out))
	do.Provide[*handler.Handler](injector, handler.NewHandler)
	do.Provide[*session.Session](injector, session.NewSession)

	return injector
}
