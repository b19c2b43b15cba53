// go-ratfist
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-ratfist.
//
// go-ratfist is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-ratfist is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-ratfist; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package detection

import (
	"testing"
)

func TestIsPathIgnored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		devicePath  string
		ignorePaths []string
		expected    bool
	}{
		{
			name:        "empty ignore list",
			devicePath:  "/dev/ttyACM0",
			ignorePaths: []string{},
			expected:    false,
		},
		{
			name:        "empty device path",
			devicePath:  "",
			ignorePaths: []string{"/dev/ttyACM0"},
			expected:    false,
		},
		{
			name:        "exact match unix path",
			devicePath:  "/dev/ttyACM0",
			ignorePaths: []string{"/dev/ttyACM0"},
			expected:    true,
		},
		{
			name:        "windows case insensitive",
			devicePath:  "com3",
			ignorePaths: []string{"COM3"},
			expected:    true,
		},
		{
			name:        "path with relative components",
			devicePath:  "/dev/../dev/ttyACM0",
			ignorePaths: []string{"/dev/ttyACM0"},
			expected:    true,
		},
		{
			name:        "empty strings in ignore list",
			devicePath:  "/dev/ttyACM0",
			ignorePaths: []string{"", "/dev/ttyACM0", ""},
			expected:    true,
		},
		{
			name:        "no match",
			devicePath:  "/dev/ttyACM1",
			ignorePaths: []string{"/dev/ttyACM0", "COM3"},
			expected:    false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := IsPathIgnored(tt.devicePath, tt.ignorePaths)
			if result != tt.expected {
				t.Errorf("IsPathIgnored(%q, %v) = %v, want %v",
					tt.devicePath, tt.ignorePaths, result, tt.expected)
			}
		})
	}
}

func TestIsBlocked(t *testing.T) {
	t.Parallel()

	blocklist := []string{" 0403:6001 ", "1a86:7523"}
	tests := []struct {
		vidpid string
		want   bool
	}{
		{vidpid: "0403:6001", want: true},
		{vidpid: "1A86:7523", want: true},
		{vidpid: "0483:374B", want: false},
		{vidpid: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		if got := IsBlocked(tt.vidpid, blocklist); got != tt.want {
			t.Errorf("IsBlocked(%q) = %v, want %v", tt.vidpid, got, tt.want)
		}
	}
}

func TestFormatVIDPID(t *testing.T) {
	t.Parallel()

	if got := FormatVIDPID("0483", "374b"); got != "0483:374B" {
		t.Errorf("FormatVIDPID() = %q, want %q", got, "0483:374B")
	}
	if got := FormatVIDPID("0483", ""); got != "" {
		t.Errorf("FormatVIDPID() with missing PID = %q, want empty", got)
	}
}
