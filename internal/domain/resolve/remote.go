package resolve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultRepositoryURL is the canonical public artifact repository.
const DefaultRepositoryURL = "https://repo1.maven.org/maven2"

// RemoteRepository fetches artifacts over HTTP into the local cache layout.
type RemoteRepository struct {
	baseURL string
	client  *http.Client
}

// NewRemoteRepository creates a remote repository client. An empty baseURL
// selects the default public repository.
func NewRemoteRepository(baseURL string) *RemoteRepository {
	if baseURL == "" {
		baseURL = DefaultRepositoryURL
	}
	return &RemoteRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// URL returns the repository location an artifact would be fetched from.
func (r *RemoteRepository) URL(group, name, version string) string {
	groupPath := strings.ReplaceAll(group, ".", "/")
	return fmt.Sprintf("%s/%s/%s/%s/%s-%s.jar", r.baseURL, groupPath, name, version, name, version)
}

// Fetch downloads one artifact jar to dest, writing through a temporary
// file so a partial download never masquerades as a cached artifact.
func (r *RemoteRepository) Fetch(ctx context.Context, group, name, version, dest string) error {
	url := r.URL(group, name, version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".part-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dest)
}
