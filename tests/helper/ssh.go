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

// Simplifies work with ssh testing
package helper

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"strconv"
	"syscall"
	"testing"
	"unsafe"

	"github.com/creack/pty"
	sshd "github.com/gliderlabs/ssh"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/satelliteqe/robottelo/lib/remote"
)

// Base ssh server with no handler
func MockSSHServer(t *testing.T, sshSrv *sshd.Server, user, pass, key string) (string, string) {
	t.Helper()
	if pass != "" {
		sshSrv.SetOption(sshd.PasswordAuth(func(ctx sshd.Context, password string) bool {
			res := ctx.User() == user && password == pass
			t.Log("MockSSHServer: Checked password:", res)
			return res
		}))
	}
	if key != "" {
		sshSrv.SetOption(sshd.PublicKeyAuth(func(ctx sshd.Context, inkey sshd.PublicKey) bool {
			res := ctx.User() == user && key == string(ssh.MarshalAuthorizedKey(inkey))
			t.Log("MockSSHServer: Checked pubkey:", res)
			return res
		}))
	}

	sshListener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("MockSSHServer: Unable to start SSH server to listen: %v", err)
		return "", ""
	}
	t.Cleanup(func() {
		sshListener.Close()
	})
	sshSrv.Addr = sshListener.Addr().String()

	_, port, err := net.SplitHostPort(sshListener.Addr().String())
	if err != nil {
		t.Fatalf("MockSSHServer: Unable to get SSH listening port: %v", err)
		return "", ""
	}

	go sshSrv.Serve(sshListener)

	t.Log("MockSSHServer: Started Test SSH server on", sshSrv.Addr)

	return "127.0.0.1", port
}

// MockSatelliteServer emulates the server under test: the hammer commands
// are served by the fake, the rest is executed by the local shell. Files
// are transferred through the sftp subsystem to the local filesystem.
func MockSatelliteServer(t *testing.T, user, pass string, hammer *FakeHammer) remote.Config {
	t.Helper()
	sshSrv := &sshd.Server{
		Handler: func(s sshd.Session) {
			cmd := s.RawCommand()
			t.Log("MockSatelliteServer: Start handling session:", cmd)
			switch {
			case hammer != nil && IsHammerCommand(cmd):
				stdout, stderr, code := hammer.Run(cmd)
				io.WriteString(s, stdout)
				io.WriteString(s.Stderr(), stderr)
				s.Exit(code)
			default:
				s.Exit(execSession(t, s, cmd))
			}
			t.Log("MockSatelliteServer: End handling session")
		},
		SubsystemHandlers: map[string]sshd.SubsystemHandler{
			"sftp": sftpHandler(t),
		},
	}
	host, port := MockSSHServer(t, sshSrv, user, pass, "")
	portNum, _ := strconv.Atoi(port)
	return remote.Config{Host: host, Port: portNum, User: user, Password: pass}
}

// execSession runs the command with sh, under pty if it was requested,
// the shell is started if no command is provided
func execSession(t *testing.T, s sshd.Session, command string) int {
	cmd := exec.Command("sh")
	if command != "" {
		cmd = exec.Command("sh", "-c", command)
	}

	ptyReq, winCh, isPty := s.Pty()
	if !isPty {
		if command == "" {
			io.WriteString(s, "No PTY requested.\n")
			return 1
		}
		cmd.Stdout = s
		cmd.Stderr = s.Stderr()
		return exitCode(cmd.Run())
	}

	t.Log("MockSatelliteServer: PTY is requested")
	cmd.Env = append(os.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))
	f, err := pty.Start(cmd)
	if err != nil {
		t.Log("MockSatelliteServer: Unable to start pty:", err)
		return 255
	}
	defer f.Close()
	go func() {
		for win := range winCh {
			setWinsize(f, win.Width, win.Height)
		}
	}()
	go func() {
		io.Copy(f, s) // stdin
	}()
	io.Copy(s, f) // stdout, returns EIO when the command exits
	return exitCode(cmd.Wait())
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if err != nil {
		return 255
	}
	return 0
}

func setWinsize(f *os.File, w, h int) {
	syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uintptr(syscall.TIOCSWINSZ),
		uintptr(unsafe.Pointer(&struct{ h, w, x, y uint16 }{uint16(h), uint16(w), 0, 0})))
}

func sftpHandler(t *testing.T) sshd.SubsystemHandler {
	return func(s sshd.Session) {
		t.Log("MockSatelliteServer: Start handling sftp session")
		server, err := sftp.NewServer(s)
		if err != nil {
			t.Log("MockSatelliteServer: Sftp init error:", err)
			return
		}
		if err := server.Serve(); err == io.EOF {
			server.Close()
			t.Log("MockSatelliteServer: Sftp client exited session.")
		} else if err != nil {
			t.Log("MockSatelliteServer: Sftp server completed with error:", err)
		}
	}
}
