// Package remote pulls taskwarrior JSON exports over HTTP.
package remote

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/taskwire/taskwire/task"
)

// Fetch performs a GET with basic auth and returns the raw response body.
// Credentials may be empty for unauthenticated endpoints.
func Fetch(ctx context.Context, url, username, password string) ([]byte, error) {
	client := resty.New()

	req := client.R().SetContext(ctx)
	if username != "" {
		req.SetBasicAuth(username, password)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("remote: error making HTTP request to %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("remote: unexpected status %s from %s", resp.Status(), url)
	}
	return resp.Body(), nil
}

// FetchTasks fetches a JSON array export from url and decodes it under the
// chosen depends format.
func FetchTasks[V task.Version](ctx context.Context, url, username, password string) ([]task.Task[V], error) {
	body, err := Fetch(ctx, url, username, password)
	if err != nil {
		return nil, err
	}
	tasks, err := task.Import[V](bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("remote: failed to decode export from %s: %w", url, err)
	}
	return tasks, nil
}
