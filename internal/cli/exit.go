package cli

import (
	"context"
	"errors"

	"github.com/dmorgan81/convergence/internal/handler"
	"github.com/dmorgan81/convergence/internal/image"
	"github.com/dmorgan81/convergence/internal/remote"
	"github.com/dmorgan81/convergence/internal/store"
)

const (
	ExitOK = iota
	ExitError
	ExitMalformedState
	ExitRemoteService
	ExitDownload
	ExitMissingPredecessor

	ExitInterrupted = 130
)

// ExitCode maps a run error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case store.IsMalformedStateError(err):
		return ExitMalformedState
	case image.IsDownloadError(err):
		return ExitDownload
	case remote.IsServiceError(err):
		return ExitRemoteService
	case handler.IsMissingPredecessorError(err):
		return ExitMissingPredecessor
	default:
		return ExitError
	}
}
