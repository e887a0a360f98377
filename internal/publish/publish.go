package publish

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 60 * time.Second

// ErrNoRemote is returned when publishing is attempted without a
// configured remote URL
var ErrNoRemote = errors.New("no publish remote configured")

// Publisher pushes the calendar file to a git remote. It runs the git
// binary directly; the remote URL may embed a token and comes from the
// caller. A failed publish never touches the local file.
type Publisher struct {
	remote      string
	branch      string
	authorName  string
	authorEmail string
	logger      *zap.Logger
}

// NewPublisher creates a publisher for the given remote and branch
func NewPublisher(remote, branch, authorName, authorEmail string, logger *zap.Logger) *Publisher {
	return &Publisher{
		remote:      remote,
		branch:      branch,
		authorName:  authorName,
		authorEmail: authorEmail,
		logger:      logger,
	}
}

// Publish stages the file, commits it with the given message and pushes
// to the configured remote. "nothing to commit" is treated as success.
func (p *Publisher) Publish(ctx context.Context, file, message string) error {
	if p.remote == "" {
		return ErrNoRemote
	}
	if message == "" {
		message = "Update calendar"
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := p.git(ctx, "add", file); err != nil {
		return fmt.Errorf("failed to stage %s: %w", file, err)
	}

	out, err := p.git(ctx,
		"-c", "user.name="+p.authorName,
		"-c", "user.email="+p.authorEmail,
		"commit", "-m", message)
	if err != nil {
		if strings.Contains(out, "nothing to commit") {
			p.logger.Info("Nothing to publish", zap.String("file", file))
			return nil
		}
		return fmt.Errorf("failed to commit: %w", err)
	}

	if _, err := p.git(ctx, "push", p.remote, p.branch); err != nil {
		return fmt.Errorf("failed to push to remote: %w", err)
	}

	p.logger.Info("Calendar published",
		zap.String("file", file),
		zap.String("branch", p.branch))

	return nil
}

// git runs a git command and returns its combined output. The output is
// folded into the error so callers can surface the real cause.
func (p *Publisher) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)

	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))

	p.logger.Debug("git command finished",
		zap.String("subcommand", args[0]),
		zap.Error(err))

	if err != nil {
		if output != "" {
			return output, fmt.Errorf("git %s: %v: %s", args[0], err, sanitize(output, p.remote))
		}
		return output, fmt.Errorf("git %s: %w", args[0], err)
	}

	return output, nil
}

// sanitize keeps the remote URL (which may embed a token) out of
// surfaced error text
func sanitize(output, remote string) string {
	if remote == "" {
		return output
	}
	return strings.ReplaceAll(output, remote, "<remote>")
}
