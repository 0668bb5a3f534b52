//go:build !linux && !darwin

package minelog

import "runtime"

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// CPUModel identifies the host CPU for plot titles.
func CPUModel() string {
	return runtime.GOARCH + " / " + runtime.GOOS + " (fallback)"
}
