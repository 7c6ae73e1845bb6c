// Package remote runs commands on the generation VPS over SSH: kicking off
// bulk jobs, tailing the generation log, checking process state. It is a thin
// wrapper over x/crypto/ssh with the auth and host settings coming from
// config.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

// Options configures the SSH connection.
type Options struct {
	Host     string
	Port     int
	User     string
	Password string
	// KeyFile is preferred over Password when both are set.
	KeyFile string
	// InsecureHostKey skips host key verification, matching the
	// StrictHostKeyChecking=no automation the VPS scripts always used.
	InsecureHostKey bool
	ConnectTimeout  time.Duration
}

// Executor dials a remote host per command. Commands are short-lived batch
// invocations, so no connection is kept open between calls.
type Executor struct {
	opts Options
}

func NewExecutor(opts Options) (*Executor, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("remote: host not configured")
	}
	if opts.User == "" {
		return nil, fmt.Errorf("remote: user not configured")
	}
	if opts.Password == "" && opts.KeyFile == "" {
		return nil, fmt.Errorf("remote: neither password nor key file configured")
	}
	if opts.Port == 0 {
		opts.Port = 22
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	return &Executor{opts: opts}, nil
}

func (e *Executor) clientConfig() (*ssh.ClientConfig, error) {
	var auth []ssh.AuthMethod
	if e.opts.KeyFile != "" {
		key, err := os.ReadFile(e.opts.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("read key file: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if e.opts.Password != "" {
		auth = append(auth, ssh.Password(e.opts.Password))
	}

	cfg := &ssh.ClientConfig{
		User:    e.opts.User,
		Auth:    auth,
		Timeout: e.opts.ConnectTimeout,
	}
	if e.opts.InsecureHostKey {
		cfg.HostKeyCallback = ssh.InsecureIgnoreHostKey()
	} else {
		return nil, fmt.Errorf("remote: host key verification requires remote.insecure_host_key=true or a known_hosts integration")
	}
	return cfg, nil
}

// Run executes one command and returns its combined output. The context bounds
// the whole call; generation commands can legitimately run for many minutes,
// so callers set generous deadlines.
func (e *Executor) Run(ctx context.Context, command string) (string, error) {
	cfg, err := e.clientConfig()
	if err != nil {
		return "", err
	}

	addr := net.JoinHostPort(e.opts.Host, strconv.Itoa(e.opts.Port))
	conn, err := ssh.Dial("tcp", addr, cfg)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	session, err := conn.NewSession()
	if err != nil {
		return "", fmt.Errorf("new session: %w", err)
	}
	defer session.Close()

	var out bytes.Buffer
	session.Stdout = &out
	session.Stderr = &out

	done := make(chan error, 1)
	go func() { done <- session.Run(command) }()

	select {
	case err := <-done:
		if err != nil {
			return out.String(), fmt.Errorf("run %q: %w", command, err)
		}
		return out.String(), nil
	case <-ctx.Done():
		session.Signal(ssh.SIGKILL)
		return out.String(), ctx.Err()
	}
}

// TailLog fetches the last n lines of a remote file.
func (e *Executor) TailLog(ctx context.Context, path string, n int) (string, error) {
	if n <= 0 {
		n = 50
	}
	return e.Run(ctx, TailCommand(path, n))
}

// TailCommand builds the tail invocation for a remote log path.
func TailCommand(path string, n int) string {
	return fmt.Sprintf("tail -n %d %s", n, shellQuote(path))
}

// shellQuote single-quotes a path for the remote shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
