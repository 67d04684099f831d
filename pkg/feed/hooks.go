package feed

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	"github.com/mxpv/mygpo/pkg/model"
)

// Subscription actions passed to hooks in SUBSCRIPTION_ACTION.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

const defaultHookTimeout = 60 * time.Second

// ExecHook represents a single hook configuration
type ExecHook struct {
	Command []string `toml:"command"`
	Timeout int      `toml:"timeout"` // timeout in seconds, 0 means use default (60s)
}

// Invoke runs a hook with the provided environment variables
func (h *ExecHook) Invoke(ctx context.Context, env []string) error {
	if h == nil {
		return nil
	}
	if len(h.Command) == 0 {
		return errors.New("hook command is empty")
	}

	timeout := defaultHookTimeout
	if h.Timeout > 0 {
		timeout = time.Duration(h.Timeout) * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var cmd *exec.Cmd
	if len(h.Command) == 1 {
		// Single command, use shell to parse
		cmd = exec.CommandContext(ctx, "/bin/sh", "-c", h.Command[0])
	} else {
		cmd = exec.CommandContext(ctx, h.Command[0], h.Command[1:]...)
	}

	cmd.Env = append(os.Environ(), env...)

	data, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "hook execution failed, output: %s", string(data))
	}

	return nil
}

// ChangeEnv builds hook environment for a single subscription change.
func ChangeEnv(deviceID string, action string, podcast model.Podcast) []string {
	return []string{
		"DEVICE_ID=" + deviceID,
		"SUBSCRIPTION_ACTION=" + action,
		"PODCAST_URL=" + podcast.URL,
		"PODCAST_TITLE=" + podcast.Title,
	}
}
