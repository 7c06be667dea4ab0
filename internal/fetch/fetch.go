// Package fetch downloads installer artifacts over HTTP(S).
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"photon/internal/logging"
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// ProgressFunc receives the bytes written so far and the expected total,
// which is -1 when the server sent no length.
type ProgressFunc func(written, total int64)

// Fetcher downloads a URL to a local file in one piece.
type Fetcher struct {
	client   *http.Client
	progress ProgressFunc
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithProgress reports download progress to fn.
func WithProgress(fn ProgressFunc) Option {
	return func(f *Fetcher) { f.progress = fn }
}

// New creates a Fetcher. A nil client means a client with no timeout;
// the request is bounded only by ctx.
func New(client *http.Client, opts ...Option) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	f := &Fetcher{client: client}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch GETs url and writes the body to dest. The body is streamed to
// dest+".part" and renamed into place after a complete copy, so dest holds
// either exactly the retrieved bytes or nothing. The file is executable.
// The parent directory of dest must already exist.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) error {
	timer := logging.StartTimer(logging.CategoryFetch, "Fetch")
	defer timer.Stop()

	dir := filepath.Dir(dest)
	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("destination directory: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("destination directory %s is not a directory", dir)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	logging.FetchDebug("GET %s", url)
	resp, err := f.client.Do(req)
	if err != nil {
		logging.FetchError("GET %s failed: %v", url, err)
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.FetchError("GET %s returned %d", url, resp.StatusCode)
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	tmp := dest + ".part"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}

	var body io.Reader = resp.Body
	if f.progress != nil {
		body = &progressReader{r: resp.Body, total: resp.ContentLength, fn: f.progress}
	}

	n, err := io.Copy(out, body)
	if err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if resp.ContentLength >= 0 && n != resp.ContentLength {
		os.Remove(tmp)
		return fmt.Errorf("short download from %s: got %d of %d bytes", url, n, resp.ContentLength)
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move download into place: %w", err)
	}

	logging.Fetch("Downloaded %d bytes from %s to %s", n, url, dest)
	return nil
}

type progressReader struct {
	r       io.Reader
	total   int64
	written int64
	fn      ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.written += int64(n)
		p.fn(p.written, p.total)
	}
	return n, err
}
