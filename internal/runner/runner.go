// Package runner locates and supervises the sing-box process.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// BinaryEnv overrides the sing-box binary path.
const BinaryEnv = "SING_BOX_BIN"

var binaryCandidates = []string{
	"sing-box",
	"/usr/local/bin/sing-box",
	"/usr/bin/sing-box",
	"/opt/sing-box/sing-box",
}

// ErrBinaryNotFound means no sing-box executable could be located.
var ErrBinaryNotFound = errors.New("sing-box binary not found (set SING_BOX_BIN)")

// FindBinary returns the sing-box executable: $SING_BOX_BIN when set,
// otherwise the first candidate resolvable via PATH or on disk.
func FindBinary() (string, error) {
	if p := os.Getenv(BinaryEnv); p != "" {
		return p, nil
	}
	for _, candidate := range binaryCandidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", ErrBinaryNotFound
}

// Options configure process supervision.
type Options struct {
	Binary     string
	ConfigPath string
	Logger     *slog.Logger

	// MaxRestarts caps consecutive abnormal exits; 0 means restart forever.
	MaxRestarts int
	// InitialInterval and MaxInterval bound the restart backoff.
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// StableRuntime is how long the process must live for the restart
	// budget and backoff to reset.
	StableRuntime time.Duration
}

func (o *Options) applyDefaults() {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.InitialInterval == 0 {
		o.InitialInterval = time.Second
	}
	if o.MaxInterval == 0 {
		o.MaxInterval = 30 * time.Second
	}
	if o.StableRuntime == 0 {
		o.StableRuntime = time.Minute
	}
}

// Check runs `sing-box check` against the config.
func Check(ctx context.Context, binary, configPath string) error {
	cmd := exec.CommandContext(ctx, binary, "check", "-c", configPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("config check failed: %w", err)
	}
	return nil
}

// Run starts sing-box and restarts it with exponential backoff after
// abnormal exits. It returns nil when the process exits cleanly or ctx is
// canceled, and an error once the restart budget is spent.
func Run(ctx context.Context, opts Options) error {
	opts.applyDefaults()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = opts.InitialInterval
	bo.MaxInterval = opts.MaxInterval
	bo.MaxElapsedTime = 0

	restarts := 0
	for {
		started := time.Now()
		err := runOnce(ctx, opts)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			return nil
		}

		if time.Since(started) >= opts.StableRuntime {
			bo.Reset()
			restarts = 0
		}
		restarts++
		if opts.MaxRestarts > 0 && restarts > opts.MaxRestarts {
			return fmt.Errorf("giving up after %d restarts: %w", opts.MaxRestarts, err)
		}

		wait := bo.NextBackOff()
		opts.Logger.Warn("sing-box exited, restarting",
			"error", err, "restart", restarts, "wait", wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil
		}
	}
}

func runOnce(ctx context.Context, opts Options) error {
	cmd := exec.CommandContext(ctx, opts.Binary, "run", "-c", opts.ConfigPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	opts.Logger.Info("starting sing-box", "binary", opts.Binary, "config", opts.ConfigPath)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sing-box: %w", err)
	}
	return nil
}
