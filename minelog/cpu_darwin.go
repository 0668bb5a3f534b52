//go:build darwin

package minelog

import "golang.org/x/sys/unix"

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// CPUModel identifies the host CPU for plot titles via the sysctl brand
// string, falling back to the uname machine field.
func CPUModel() string {
	if model, err := unix.Sysctl("machdep.cpu.brand_string"); err == nil && model != "" {
		return model
	}
	var u unix.Utsname
	if err := unix.Uname(&u); err == nil {
		return unix.ByteSliceToString(u.Machine[:]) + " (macOS fallback)"
	}
	return "unknown CPU"
}
