// Package source opens the input tables of the analysis commands,
// from a local file or over http.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// IsRemote reports whether src is downloaded rather than read from disk
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Open returns a reader on src. http:// and https:// sources are
// downloaded, anything else is read as a local file
func Open(ctx context.Context, src string) (io.ReadCloser, error) {

	if !IsRemote(src) {
		return os.Open(src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fail to download %s: %w", src, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("fail to download %s: %s", src, resp.Status)
	}
	return resp.Body, nil
}
