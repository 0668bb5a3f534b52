//go:build linux

package minelog

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// CPUModel identifies the host CPU for plot titles: the model name from
// /proc/cpuinfo, falling back to the uname machine field.
func CPUModel() string {
	if f, err := os.Open("/proc/cpuinfo"); err == nil {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, "model name") {
				if _, model, ok := strings.Cut(line, ":"); ok {
					return strings.TrimSpace(model)
				}
			}
		}
	}
	var u unix.Utsname
	if err := unix.Uname(&u); err == nil {
		return unix.ByteSliceToString(u.Machine[:]) + " (linux fallback)"
	}
	return "unknown CPU"
}
