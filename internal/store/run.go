package store

import (
	"context"
	"errors"
	"os"

	"github.com/dmorgan81/convergence/internal/log"
)

// Run is the on-disk state of one convergence run: a folder of numbered
// iteration files, how many there were when it was opened, and the index the
// current invocation starts from.
type Run struct {
	Folder string
	Files  int
	Start  int
}

// Open prepares folder for a run and resolves where it continues from.
func Open(ctx context.Context, folder string) (*Run, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("store").With("folder", folder)

	if err := EnsureFolder(folder); err != nil {
		return nil, err
	}
	names, err := listFiles(folder)
	if err != nil {
		return nil, err
	}
	start, err := resolve(folder, names)
	if err != nil {
		return nil, err
	}

	if start > 0 {
		log.Info("found existing run", "files", len(names), "latest", start-1, "start", start)
	} else {
		log.Info("starting new run")
	}
	return &Run{Folder: folder, Files: len(names), Start: start}, nil
}

func (r *Run) Path(index int) string {
	return PathFor(r.Folder, index)
}

// Load reads the image of iteration index.
func (r *Run) Load(ctx context.Context, index int) ([]byte, error) {
	log.FromContextOrDiscard(ctx).WithGroup("store").Debug("reading", "file", r.Path(index))
	return os.ReadFile(r.Path(index))
}

// Save writes the image of iteration index. An existing file is never
// overwritten and a failed write leaves no file behind.
func (r *Run) Save(ctx context.Context, index int, data []byte) error {
	name := r.Path(index)
	log.FromContextOrDiscard(ctx).WithGroup("store").Info("writing", "file", name, "bytes", len(data))

	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Join(err, os.Remove(name))
	}
	return nil
}
