package archive

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// StreamRPM converts an rpm package stream into a tar stream of its
// members and hands that to fn. bsdtar understands the rpm container
// format natively, which saves us from parsing cpio and rpm headers.
func StreamRPM(ctx context.Context, r io.Reader, fn func(tr *tar.Reader) error) error {
	cmd := exec.CommandContext(ctx, "bsdtar", "-c", "@-")
	cmd.Stdin = r

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("pipe bsdtar output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start bsdtar: %w", err)
	}

	fnErr := fn(tar.NewReader(stdout))
	// keep bsdtar from blocking on a full pipe before Wait reaps it
	io.Copy(io.Discard, stdout)
	waitErr := cmd.Wait()

	if fnErr != nil {
		return fnErr
	}
	if waitErr != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("bsdtar: %w: %s", waitErr, msg)
		}
		return fmt.Errorf("bsdtar: %w", waitErr)
	}
	return nil
}
