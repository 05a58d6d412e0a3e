/**
 * Copyright 2025 Adobe. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

// Package remote runs commands and transfers files on the server under test
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/satelliteqe/robottelo/lib/log"
)

// Config of the ssh connection
type Config struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	KeyPath  string        `mapstructure:"key"`     // Private key file
	Timeout  time.Duration `mapstructure:"timeout"` // Connection timeout
	Pty      bool          `mapstructure:"pty"`     // Request pseudo terminal for the commands
}

// Addr returns host:port of the server
func (c Config) Addr() string {
	port := c.Port
	if port == 0 {
		port = 22
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// Result of the remote command
type Result struct {
	ExitStatus int
	Stdout     []string // Output lines without line endings
	Stderr     string
}

// Client is the ssh connection to the server, it's not safe to run
// commands from multiple goroutines
type Client struct {
	cfg  Config
	conn *ssh.Client

	sftpMu sync.Mutex
	sftp   *sftp.Client
}

func (c Config) clientConfig() (*ssh.ClientConfig, error) {
	var auth []ssh.AuthMethod
	if c.KeyPath != "" {
		data, err := os.ReadFile(c.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("Remote: Unable to read private key %q: %v", c.KeyPath, err)
		}
		signer, err := ssh.ParsePrivateKey(data)
		if err != nil {
			return nil, fmt.Errorf("Remote: Unable to parse private key %q: %v", c.KeyPath, err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if c.Password != "" {
		auth = append(auth, ssh.Password(c.Password))
	}
	if len(auth) == 0 {
		return nil, fmt.Errorf("Remote: No password or key provided for %s@%s", c.User, c.Host)
	}
	return &ssh.ClientConfig{
		User:            c.User,
		Auth:            auth,
		Timeout:         c.Timeout,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // #nosec G106 , test servers are recreated all the time
	}, nil
}

// Dial connects to the server
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	logger := log.WithFunc("remote", "Dial").With("addr", cfg.Addr(), "user", cfg.User)

	sshCfg, err := cfg.clientConfig()
	if err != nil {
		return nil, err
	}
	dialer := net.Dialer{Timeout: cfg.Timeout}
	netConn, err := dialer.DialContext(ctx, "tcp", cfg.Addr())
	if err != nil {
		return nil, fmt.Errorf("Remote: Unable to connect to %s: %w", cfg.Addr(), err)
	}
	conn, chans, reqs, err := ssh.NewClientConn(netConn, cfg.Addr(), sshCfg)
	if err != nil {
		netConn.Close()
		return nil, fmt.Errorf("Remote: Unable to establish ssh connection to %s: %w", cfg.Addr(), err)
	}
	logger.Debug("Connected")
	return &Client{cfg: cfg, conn: ssh.NewClient(conn, chans, reqs)}, nil
}

// Execute runs the command and waits for it to complete. Non-zero exit status
// is not an error, it's returned in the result.
func (c *Client) Execute(ctx context.Context, cmd string) (*Result, error) {
	logger := log.WithFunc("remote", "Execute")
	logger.Debug("Running command", "cmd", cmd)

	session, err := c.conn.NewSession()
	if err != nil {
		return nil, fmt.Errorf("Remote: Unable to create session: %w", err)
	}
	defer session.Close()

	if c.cfg.Pty {
		modes := ssh.TerminalModes{
			ssh.ECHO:          0,     // disable echoing
			ssh.TTY_OP_ISPEED: 14400, // input speed = 14.4kbaud
			ssh.TTY_OP_OSPEED: 14400, // output speed = 14.4kbaud
		}
		if err = session.RequestPty("xterm", 40, 200, modes); err != nil {
			return nil, fmt.Errorf("Remote: Unable to request PTY: %w", err)
		}
	}

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() { done <- session.Run(cmd) }()

	select {
	case <-ctx.Done():
		session.Signal(ssh.SIGKILL)
		return nil, fmt.Errorf("Remote: Command %q interrupted: %w", cmd, ctx.Err())
	case err = <-done:
	}

	res := &Result{
		Stdout: SplitLines(stdout.String()),
		Stderr: stderr.String(),
	}
	var exitErr *ssh.ExitError
	if errors.As(err, &exitErr) {
		res.ExitStatus = exitErr.ExitStatus()
	} else if err != nil {
		return nil, fmt.Errorf("Remote: Command %q failed: %w", cmd, err)
	}
	logger.Debug("Command completed", "exit_status", res.ExitStatus, "lines", len(res.Stdout))
	return res, nil
}

// SplitLines splits the output to lines, the pty line endings are handled too
func SplitLines(out string) []string {
	out = strings.TrimRight(out, "\r\n")
	if out == "" {
		return []string{}
	}
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}

func (c *Client) sftpClient() (*sftp.Client, error) {
	c.sftpMu.Lock()
	defer c.sftpMu.Unlock()
	if c.sftp != nil {
		return c.sftp, nil
	}
	client, err := sftp.NewClient(c.conn)
	if err != nil {
		return nil, fmt.Errorf("Remote: Unable to create sftp client: %w", err)
	}
	c.sftp = client
	return client, nil
}

// Upload copies local file to the remote path
func (c *Client) Upload(localPath, remotePath string) error {
	client, err := c.sftpClient()
	if err != nil {
		return err
	}
	localFile, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("Remote: Unable to open a local source file %q: %v", localPath, err)
	}
	defer localFile.Close()

	remoteFile, err := client.Create(remotePath)
	if err != nil {
		return fmt.Errorf("Remote: Unable to create a remote destination file %q: %v", remotePath, err)
	}
	defer remoteFile.Close()

	if _, err = localFile.WriteTo(remoteFile); err != nil {
		return fmt.Errorf("Remote: Unable to copy local to remote file: %v", err)
	}
	log.WithFunc("remote", "Upload").Debug("File uploaded", "local", localPath, "remote", remotePath)
	return nil
}

// Download copies remote file to the local path
func (c *Client) Download(remotePath, localPath string) error {
	client, err := c.sftpClient()
	if err != nil {
		return err
	}
	remoteFile, err := client.Open(remotePath)
	if err != nil {
		return fmt.Errorf("Remote: Unable to open a remote source file %q: %v", remotePath, err)
	}
	defer remoteFile.Close()

	localFile, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("Remote: Unable to create a local destination file %q: %v", localPath, err)
	}
	defer localFile.Close()

	if _, err = remoteFile.WriteTo(localFile); err != nil {
		return fmt.Errorf("Remote: Unable to copy remote to local file: %v", err)
	}
	log.WithFunc("remote", "Download").Debug("File downloaded", "remote", remotePath, "local", localPath)
	return nil
}

// Close releases the connection
func (c *Client) Close() error {
	c.sftpMu.Lock()
	if c.sftp != nil {
		c.sftp.Close()
		c.sftp = nil
	}
	c.sftpMu.Unlock()
	return c.conn.Close()
}
