package param

import (
	"context"
	"os"

	"github.com/dmorgan81/convergence/internal/log"
)

// FileFetcher reads a plain text file whose whole content is the value.
type FileFetcher struct{}

func (*FileFetcher) Fetch(ctx context.Context, path string) (string, error) {
	log.FromContextOrDiscard(ctx).WithGroup("file").Info("reading credential", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
