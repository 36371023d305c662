package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const maxErrorBody = 256

// fetchJSON performs req and decodes a 2xx JSON body into out.
func fetchJSON(client *http.Client, log *slog.Logger, req *http.Request, out any) error {
	req.Header.Set("User-Agent", AppName+"/"+Version)
	resp, err := client.Do(req)
	if err != nil {
		log.Warn("failed to fetch", "host", req.URL.Host, "err", err)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Warn("unexpected status", "host", req.URL.Host, "status", resp.StatusCode)
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(strings.ToValidUTF8(string(body), "")),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Warn("failed to decode response", "host", req.URL.Host, "err", err)
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func clampPageSize(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
