//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Postgres test container constants.
const (
	postgresImage     = "docker.io/library/postgres:17-alpine"
	postgresContainer = "ledger-test-postgres"
	postgresPort      = "55432"
	postgresPassword  = "ledger"
	postgresDSN       = "postgres://postgres:" + postgresPassword + "@localhost:" + postgresPort + "/postgres?sslmode=disable"
	postgresWait      = 30 * time.Second
)

// containerRuntime returns "podman" or "docker" if a working runtime
// is available, or "" if neither is usable. It checks both that the
// binary exists on PATH and that it can connect to its daemon/machine.
func containerRuntime() string {
	for _, name := range []string{"podman", "docker"} {
		if _, err := exec.LookPath(name); err != nil {
			continue
		}
		if exec.Command(name, "info").Run() != nil {
			fmt.Fprintf(os.Stderr, "WARNING: %s found on PATH but not usable (is the daemon/machine running?)\n", name)
			continue
		}
		return name
	}
	return ""
}

// startPostgres runs a disposable postgres container and waits until it
// accepts connections.
func startPostgres(rt string) error {
	fmt.Fprintln(os.Stderr, "Starting postgres container...")
	cmd := exec.Command(rt, "run", "-d", "--rm",
		"--name", postgresContainer,
		"-e", "POSTGRES_PASSWORD="+postgresPassword,
		"-p", postgresPort+":5432",
		postgresImage)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("starting %s: %w", postgresContainer, err)
	}

	deadline := time.Now().Add(postgresWait)
	for time.Now().Before(deadline) {
		if exec.Command(rt, "exec", postgresContainer, "pg_isready", "-U", "postgres").Run() == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	stopPostgres(rt)
	return fmt.Errorf("%s not ready after %s", postgresContainer, postgresWait)
}

// stopPostgres removes the test container. Errors are ignored because
// the container may already be gone.
func stopPostgres(rt string) {
	fmt.Fprintln(os.Stderr, "Stopping postgres container...")
	_ = exec.Command(rt, "rm", "-f", postgresContainer).Run()
}
