package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultLockName is the lock file created inside the working directory.
const DefaultLockName = ".jotter.lock"

// Client wraps git command execution with a file-based lock for process safety.
type Client struct {
	WorkDir string
	Logger  *slog.Logger

	// AuthorName and AuthorEmail, when set, override the committer identity.
	AuthorName  string
	AuthorEmail string
	lockPath    string
}

// NewClient creates a new git client for the given working directory.
// An empty lockName selects DefaultLockName.
func NewClient(workDir, lockName string, logger *slog.Logger) *Client {
	if lockName == "" {
		lockName = DefaultLockName
	}
	return &Client{
		WorkDir:  workDir,
		Logger:   logger,
		lockPath: lockName,
	}
}

// IsInstalled checks if git is available in the system path.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// LockName returns the name of the lock file relative to WorkDir.
func (c *Client) LockName() string {
	return c.lockPath
}

// Lock acquires the file-based lock. It blocks until the lock is acquired or
// ctx is done.
func (c *Client) Lock(ctx context.Context) (func(), error) {
	fullLockPath := filepath.Join(c.WorkDir, c.lockPath)

	for {
		f, err := os.OpenFile(fullLockPath, os.O_CREATE|os.O_EXCL, 0666)
		if err == nil {
			f.Close()
			return func() {
				os.Remove(fullLockPath)
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to acquire lock: %w", ctx.Err())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Run executes a raw git command in the working directory.
// NOTE: It does NOT acquire the lock. The caller must hold it via Client.Lock().
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}

	return strings.TrimSpace(output), nil
}

// IsRepo reports whether WorkDir is the top of a git repository.
func (c *Client) IsRepo() bool {
	info, err := os.Stat(filepath.Join(c.WorkDir, ".git"))
	return err == nil && info.IsDir()
}

// Init initializes a new git repository. Re-running it is harmless.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.Run(ctx, "init")
	return err
}

// Add adds files to the stage.
func (c *Client) Add(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, files...)
	_, err := c.Run(ctx, args...)
	return err
}

// Rm removes files from the working tree and from the index.
func (c *Client) Rm(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"rm", "-f", "--quiet", "--"}, files...)
	_, err := c.Run(ctx, args...)
	return err
}

// Unstage resets the index entries of files to HEAD, leaving the working
// tree alone. In a repository without commits the entries are dropped.
func (c *Client) Unstage(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"reset", "-q", "--"}, files...)
	if _, err := c.Run(ctx, args...); err == nil {
		return nil
	}
	args = append([]string{"rm", "--cached", "-q", "--ignore-unmatch", "--"}, files...)
	_, err := c.Run(ctx, args...)
	return err
}

// HasStagedChanges reports whether the index differs from HEAD.
func (c *Client) HasStagedChanges(ctx context.Context) (bool, error) {
	out, err := c.Run(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// Commit records staged changes. It is a no-op when nothing is staged.
func (c *Client) Commit(ctx context.Context, msg string) error {
	changed, err := c.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	var args []string
	if c.AuthorName != "" {
		args = append(args, "-c", "user.name="+c.AuthorName)
	}
	if c.AuthorEmail != "" {
		args = append(args, "-c", "user.email="+c.AuthorEmail)
	}
	args = append(args, "commit", "-m", msg)
	_, err = c.Run(ctx, args...)
	return err
}

// Revision is one entry of a file's history.
type Revision struct {
	Hash    string
	Date    time.Time
	Subject string
}

// Log returns up to limit revisions touching file, newest first.
// A repository without commits yields an empty history.
func (c *Client) Log(ctx context.Context, file string, limit int) ([]Revision, error) {
	args := []string{"log", "--format=%h%x09%aI%x09%s"}
	if limit > 0 {
		args = append(args, fmt.Sprintf("-n%d", limit))
	}
	args = append(args, "--", file)

	out, err := c.Run(ctx, args...)
	if err != nil {
		if strings.Contains(out, "does not have any commits") {
			return nil, nil
		}
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var revs []Revision
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			return nil, errors.New("unexpected git log output: " + line)
		}
		date, err := time.Parse(time.RFC3339, parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid commit date %q: %w", parts[1], err)
		}
		revs = append(revs, Revision{Hash: parts[0], Date: date, Subject: parts[2]})
	}
	return revs, nil
}
