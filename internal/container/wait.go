package container

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
)

// ErrLogStreamClosed is returned by WaitForLog when the container's log stream
// ends, usually because the container exited, before the message appeared.
var ErrLogStreamClosed = errors.New("container log stream closed")

const maxLogLine = 1024 * 1024

// WaitForLog follows the container's stdout and stderr until a line contains
// message. It returns ctx.Err() when the context ends first.
func (c *Client) WaitForLog(ctx context.Context, nameOrID, message string) error {
	rc, err := c.cli.ContainerLogs(ctx, nameOrID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to read container logs: %w", err)
	}
	defer rc.Close()

	return scanForMessage(ctx, demux(rc), message)
}

// demux splits the multiplexed (non-TTY) log stream into a plain line stream.
func demux(rc io.Reader) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		_, err := stdcopy.StdCopy(pw, pw, rc)
		pw.CloseWithError(err)
	}()
	return pr
}

func scanForMessage(ctx context.Context, r io.ReadCloser, message string) error {
	// Unblocks the demux goroutine when we stop reading early
	defer r.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLogLine)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), message) {
			return nil
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read container logs: %w", err)
	}
	return ErrLogStreamClosed
}
