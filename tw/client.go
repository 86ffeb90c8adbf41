// Package tw shells out to the taskwarrior binary. It only ever talks to the
// `task` command and never touches the .task directory itself, which is what
// the taskwarrior API guidelines ask of integrations.
package tw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"

	"github.com/taskwire/taskwire/task"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// Client runs taskwarrior commands. The zero value uses the `task` binary
// from PATH.
type Client struct {
	// Bin overrides the taskwarrior binary to execute.
	Bin string
}

// NewClient returns a Client using the default `task` binary.
func NewClient() *Client {
	return &Client{}
}

func (c *Client) bin() string {
	if c.Bin != "" {
		return c.Bin
	}
	return "task"
}

// Query exports all tasks matching the given filter words and decodes them.
// The filter is passed to taskwarrior verbatim; never build it from untrusted
// input.
func (c *Client) Query(ctx context.Context, filter ...string) ([]task.Task[task.TW26], error) {
	return query[task.TW26](ctx, c, filter)
}

// QueryLegacy is Query for installations older than taskwarrior 2.6.0, whose
// exports still carry comma-joined dependency strings.
func (c *Client) QueryLegacy(ctx context.Context, filter ...string) ([]task.Task[task.TW25], error) {
	return query[task.TW25](ctx, c, filter)
}

func query[V task.Version](ctx context.Context, c *Client, filter []string) ([]task.Task[V], error) {
	args := append(append([]string{}, filter...), "export", "rc.hooks=0")
	log.Debugf("running %s %v", c.bin(), args)

	cmd := exec.CommandContext(ctx, c.bin(), args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("taskwarrior export failed: exit code %d, stderr: %s",
				exitErr.ExitCode(), exitErr.Stderr)
		}
		return nil, fmt.Errorf("taskwarrior export failed: %w", err)
	}

	tasks, err := task.Import[V](bytes.NewReader(output))
	if err != nil {
		return nil, fmt.Errorf("failed to decode taskwarrior export: %w", err)
	}
	return tasks, nil
}

// Save hands the given tasks to `task import` on stdin as one JSON array.
func (c *Client) Save(ctx context.Context, tasks []task.Task[task.TW26]) error {
	return save(ctx, c, tasks)
}

// SaveLegacy is Save in the legacy depends format.
func (c *Client) SaveLegacy(ctx context.Context, tasks []task.Task[task.TW25]) error {
	return save(ctx, c, tasks)
}

func save[V task.Version](ctx context.Context, c *Client, tasks []task.Task[V]) error {
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to serialize tasks: %w", err)
	}
	log.Debugf("piping %d tasks into %s import", len(tasks), c.bin())

	cmd := exec.CommandContext(ctx, c.bin(), "import")
	cmd.Stdin = bytes.NewReader(payload)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("taskwarrior import failed: %w, output: %s", err, output)
	}
	return nil
}
