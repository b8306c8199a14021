// Package gitexec runs git commands for a repository checkout.
package gitexec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Exec runs git in repoDir and returns the full stdout. Stderr is captured
// and included in the error on failure.
func Exec(ctx context.Context, gitCommand, repoDir string, args []string) ([]byte, error) {
	var out, errOut bytes.Buffer
	c := exec.CommandContext(ctx, gitCommand, args...)
	c.Dir = repoDir
	c.Stdout = &out
	c.Stderr = &errOut
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("git %v failed: %v: %v", strings.Join(args, " "), err, strings.TrimSpace(errOut.String()))
	}
	return out.Bytes(), nil
}

// ExecPiped runs git in repoDir and streams stdout. The returned closer
// waits for the command; reading must finish (or ctx must be canceled)
// before Close returns.
func ExecPiped(ctx context.Context, gitCommand, repoDir string, args []string) (io.ReadCloser, error) {
	c := exec.CommandContext(ctx, gitCommand, args...)
	c.Dir = repoDir
	var errOut bytes.Buffer
	c.Stderr = &errOut
	stdout, err := c.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("git %v failed to start: %v", strings.Join(args, " "), err)
	}
	return &pipedCmd{ctx: ctx, cmd: c, rd: stdout, errOut: &errOut, args: args}, nil
}

type pipedCmd struct {
	ctx    context.Context
	cmd    *exec.Cmd
	rd     io.ReadCloser
	errOut *bytes.Buffer
	args   []string
}

func (p *pipedCmd) Read(buf []byte) (int, error) {
	return p.rd.Read(buf)
}

func (p *pipedCmd) Close() error {
	// closing the pipe first lets git exit even when reading stopped early
	p.rd.Close()
	err := p.cmd.Wait()
	if err != nil {
		if p.ctx.Err() != nil {
			// killed on purpose
			return p.ctx.Err()
		}
		return fmt.Errorf("git %v failed: %v: %v", strings.Join(p.args, " "), err, strings.TrimSpace(p.errOut.String()))
	}
	return nil
}
