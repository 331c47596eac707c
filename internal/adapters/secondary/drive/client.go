package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"ct-price-predictor/internal/config"
	"ct-price-predictor/internal/core/domain"
)

// Client downloads shared files from a Google Drive style host and keeps one
// local copy per file id for the life of the process.
type Client struct {
	baseURL    string
	suffix     string
	dir        string
	httpClient *http.Client

	mu    sync.RWMutex
	paths map[string]string
	group singleflight.Group
}

func NewClient(cfg *config.DriveConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		suffix:  cfg.FileSuffix,
		dir:     cfg.CacheDir,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		paths: make(map[string]string),
	}
}

// Retrieve returns the local path of the file, downloading it on first use.
// Concurrent first calls for the same id share one download.
func (c *Client) Retrieve(ctx context.Context, fileID string) (string, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return "", &domain.RetrievalError{Cause: errors.New("empty file id")}
	}

	if path, ok := c.cached(fileID); ok {
		return path, nil
	}

	// The shared download is detached from ctx and bounded by the client
	// timeout; each caller stops waiting on its own ctx.
	dl := context.WithoutCancel(ctx)
	ch := c.group.DoChan(fileID, func() (interface{}, error) {
		if path, ok := c.cached(fileID); ok {
			return path, nil
		}
		path, err := c.download(dl, fileID)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.paths[fileID] = path
		c.mu.Unlock()
		return path, nil
	})

	select {
	case <-ctx.Done():
		return "", &domain.RetrievalError{ModelID: fileID, Cause: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return "", &domain.RetrievalError{ModelID: fileID, Cause: res.Err}
		}
		if res.Shared {
			log.WithField("file_id", fileID).Debug("joined in-flight download")
		}
		return res.Val.(string), nil
	}
}

// cached returns the memoized path if the file is still on disk.
func (c *Client) cached(fileID string) (string, bool) {
	c.mu.RLock()
	path, ok := c.paths[fileID]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		c.forget(fileID, path)
		return "", false
	}
	return path, true
}

// forget drops the entry for fileID only while it still points at path; a
// concurrent download may already have stored a fresh one.
func (c *Client) forget(fileID, path string) {
	c.mu.Lock()
	if c.paths[fileID] == path {
		delete(c.paths, fileID)
	}
	c.mu.Unlock()
}

// Purge deletes every downloaded file and forgets them.
func (c *Client) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, path := range c.paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).WithField("path", path).Warn("remove downloaded model failed")
		}
		delete(c.paths, id)
	}
}

func (c *Client) downloadURL(fileID string) string {
	params := url.Values{}
	params.Set("export", "download")
	params.Set("id", fileID)
	return fmt.Sprintf("%s/uc?%s", c.baseURL, params.Encode())
}

func (c *Client) download(ctx context.Context, fileID string) (string, error) {
	start := time.Now()
	logger := log.WithField("file_id", fileID)

	resp, err := c.get(ctx, c.downloadURL(fileID))
	if err != nil {
		return "", err
	}

	// Large files are served behind an HTML confirmation page first.
	if isHTML(resp) {
		next, err := confirmURL(resp, fileID)
		resp.Body.Close()
		if err != nil {
			return "", err
		}
		logger.Debug("following download confirmation page")
		if resp, err = c.get(ctx, next); err != nil {
			return "", err
		}
		if isHTML(resp) {
			resp.Body.Close()
			return "", errors.New("file host returned a web page instead of the file; check the file id and sharing settings")
		}
	}
	defer resp.Body.Close()

	path, size, err := c.save(resp.Body)
	if err != nil {
		return "", err
	}

	logger.WithFields(log.Fields{
		"path":       path,
		"bytes":      size,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Info("model downloaded")
	return path, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) save(body io.Reader) (string, int64, error) {
	f, err := os.CreateTemp(c.dir, "model-*"+c.suffix)
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n == 0 {
		err = errors.New("empty response body")
	}
	if err != nil {
		os.Remove(f.Name())
		return "", 0, fmt.Errorf("write model file: %w", err)
	}
	return f.Name(), n, nil
}

func isHTML(resp *http.Response) bool {
	return strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html")
}
