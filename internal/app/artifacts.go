package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/agbru/txt2pptx/internal/cli"
	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/storage"
)

var errSinkStopped = errors.New("sink stopped reading")

type downloadResult struct {
	n   int64
	err error
}

// store streams the deck named filename from the service into the sink and
// returns its location and size.
func (a *Application) store(ctx context.Context, filename string) (string, int64, error) {
	name, err := storage.SafeName(filename)
	if err != nil {
		return "", 0, err
	}

	pr, pw := io.Pipe()
	done := make(chan downloadResult, 1)
	go func() {
		n, err := a.client.Download(ctx, filename, pw)
		pw.CloseWithError(err)
		done <- downloadResult{n: n, err: err}
	}()

	location, err := a.sink.Store(ctx, name, pr)
	if err != nil {
		// Unblocks the download if the sink gave up early.
		pr.CloseWithError(errSinkStopped)
	} else {
		pr.Close()
	}
	res := <-done

	// A download cut short by the sink reports the sink's error.
	if res.err != nil && !errors.Is(res.err, errSinkStopped) {
		return "", 0, apperrors.WrapError(res.err, "download %s", filename)
	}
	if err != nil {
		return "", 0, apperrors.WrapError(err, "store %s", filename)
	}
	return location, res.n, nil
}

// RunDownload fetches one previously generated deck into the sink.
func (a *Application) RunDownload(ctx context.Context, out io.Writer, filename string) int {
	ctx, stop := a.lifecycle(ctx)
	defer stop()

	location, size, err := a.store(ctx, filename)
	if err != nil {
		if !apperrors.IsContextError(err) {
			a.printError(err)
		}
		return a.exit(err)
	}
	if a.Config.Quiet {
		fmt.Fprintln(out, location)
	} else {
		cli.DisplayStored(out, location, size)
	}
	return a.exit(nil)
}

// RunHealth queries the service health endpoint.
func (a *Application) RunHealth(ctx context.Context, out io.Writer) int {
	ctx, stop := a.lifecycle(ctx)
	defer stop()

	status, err := a.client.Health(ctx)
	if err != nil {
		if !apperrors.IsContextError(err) {
			a.printError(err)
		}
		return a.exit(err)
	}
	cli.DisplayHealth(out, a.client.BaseURL(), status)
	if !status.OK() {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
