package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/messages"
)

var osCreateTemp = os.CreateTemp

// download streams rawURL into a temporary file and returns its path.
func (f *Fetcher) download(ctx context.Context, kind artifact.Kind, version string, rawURL string, label string) (string, error) {
	f.log.Debug().Str("url", rawURL).Msg("downloading")
	resp, err := f.source.Open(ctx, rawURL)
	if err != nil {
		var statusErr *artifact.HTTPStatusError
		if kind == artifact.Runtime && errors.As(err, &statusErr) {
			return "", fmt.Errorf(messages.FetchNotFoundFmt, artifact.ErrVersionNotFound, kind, version, err)
		}
		return "", fmt.Errorf(messages.FetchDownloadFmt, rawURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	tmp, err := osCreateTemp("", "sopmod-download-*")
	if err != nil {
		return "", fmt.Errorf(messages.FetchCreateTempFmt, err)
	}
	tmpName := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			_ = os.Remove(tmpName)
		}
	}()

	f.progress.Start(label, resp.ContentLength)
	counter := &progressWriter{progress: f.progress}
	_, copyErr := io.Copy(io.MultiWriter(tmp, counter), resp.Body)
	f.progress.Finish()
	if copyErr != nil {
		_ = tmp.Close()
		return "", fmt.Errorf(messages.FetchDownloadFmt, rawURL, &artifact.TransportError{URL: rawURL, Err: copyErr})
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf(messages.FetchCloseTempFmt, err)
	}
	ok = true
	return tmpName, nil
}

type progressWriter struct {
	progress Progress
	total    int64
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.total += int64(len(p))
	w.progress.Update(w.total)
	return len(p), nil
}
