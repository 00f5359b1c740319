// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container detects a local container runtime and runs
// short-lived extraction containers through it.
package container

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime provides the container operations an extraction backend needs.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// ImageExists returns nil when the named image is present locally.
	ImageExists(image string) error

	// Run starts a throwaway container from image with args as its command.
	// stdin is piped in and the container's stdout is copied to stdout.
	// The container has no network access.
	Run(image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// runtime implements Runtime for one container binary. Docker and Podman
// differ only in the binary name and the image check subcommand.
type runtime struct {
	bin           string
	imageCheckCmd []string
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := append(append([]string{}, r.imageCheckCmd...), image)
	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	full := make([]string, 0, 6+len(args))
	full = append(full, "run", "--rm", "-i", "--network", "none", image)
	full = append(full, args...)

	var stderr bytes.Buffer
	if err := r.exec.RunPiped(r.bin, full, stdin, stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s container %s: %w: %s", r.bin, image, err, msg)
		}
		return fmt.Errorf("running %s container %s: %w", r.bin, image, err)
	}
	return nil
}

func newRuntime(bin string, exec executor) *runtime {
	r := &runtime{bin: bin, exec: exec}
	switch bin {
	case binPodman:
		r.imageCheckCmd = []string{"image", "exists"}
	default:
		r.imageCheckCmd = []string{"image", "inspect"}
	}
	return r
}

var defaultExec = &osExecutor{}

// DetectRuntime returns the preferred runtime ("docker" or "podman") when it
// is operational. With an empty preference docker is tried first, then
// podman.
func DetectRuntime(preferred string) (Runtime, error) {
	return detectRuntime(defaultExec, preferred)
}

func detectRuntime(exec executor, preferred string) (Runtime, error) {
	candidates := []string{binDocker, binPodman}
	switch preferred {
	case "":
	case binDocker, binPodman:
		candidates = []string{preferred}
	default:
		return nil, fmt.Errorf("unsupported container runtime %q (want %s or %s)", preferred, binDocker, binPodman)
	}

	for _, bin := range candidates {
		if rt := newRuntime(bin, exec); rt.Available() {
			return rt, nil
		}
	}

	return nil, fmt.Errorf(
		"no container runtime available: %s not found or not operational",
		strings.Join(candidates, " nor "),
	)
}
