package vespa

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const configProbeInterval = time.Second

// Deploy uploads the application package to the config server and activates
// it. The config server comes up well before the container, so Deploy first
// waits for its health endpoint with its own attempt budget; the container
// wait happens later through Ping.
func (c *Client) Deploy(ctx context.Context) error {
	if err := c.waitConfigServer(ctx); err != nil {
		return err
	}

	pkg, err := zipAppPackage(os.DirFS(c.cfg.AppPackagePath))
	if err != nil {
		return fmt.Errorf("vespa: package application %q: %w", c.cfg.AppPackagePath, err)
	}

	url := c.configURL + "/application/v2/tenant/" + c.cfg.Tenant + "/prepareandactivate"
	if err := c.postZip(ctx, url, pkg); err != nil {
		return fmt.Errorf("vespa: deploy application: %w", err)
	}

	c.log.Info("application deployed", nil, map[string]interface{}{
		"tenant":  c.cfg.Tenant,
		"package": c.cfg.AppPackagePath,
	})
	return nil
}

// waitConfigServer polls the config server health endpoint until it reports
// "up" or the budget is spent.
func (c *Client) waitConfigServer(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.ConfigMaxAttempts; attempt++ {
		lastErr = c.configServerUp(ctx)
		if lastErr == nil {
			c.log.Info("config server ready", nil, map[string]interface{}{"attempt": attempt})
			return nil
		}

		c.log.Debug("config server not ready", lastErr, map[string]interface{}{"attempt": attempt})

		if attempt == c.cfg.ConfigMaxAttempts {
			break
		}
		select {
		case <-time.After(configProbeInterval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("vespa: config server not ready after %d attempts: %w", c.cfg.ConfigMaxAttempts, lastErr)
}

func (c *Client) configServerUp(ctx context.Context) error {
	var parsed struct {
		Status struct {
			Code string `json:"code"`
		} `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.configURL+"/state/v1/health", nil, &parsed); err != nil {
		return err
	}
	if parsed.Status.Code != "up" {
		return fmt.Errorf("status %q", parsed.Status.Code)
	}
	return nil
}

// postZip uploads a zip payload to the config server.
func (c *Client) postZip(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/zip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("http %d for %s: %s", resp.StatusCode, url, bytes.TrimSpace(detail))
	}
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return nil
}

// zipAppPackage archives an application package directory in memory, keeping
// paths relative to the package root (services.xml at the top level).
func zipAppPackage(fsys fs.FS) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		w, err := zw.Create(filepath.ToSlash(path))
		if err != nil {
			return err
		}
		f, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		zw.Close() //nolint:errcheck
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
