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

package uart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"

	"github.com/ZaparooProject/go-ratfist/detection"
)

func stubList(ports []*enumerator.PortDetails, err error) func() ([]*enumerator.PortDetails, error) {
	return func() ([]*enumerator.PortDetails, error) {
		return ports, err
	}
}

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	d := &detector{list: stubList([]*enumerator.PortDetails{
		{Name: "/dev/ttyS0"},
		{Name: "/dev/ttyACM0", IsUSB: true, VID: "0483", PID: "374b", Product: "STM32 STLink", SerialNumber: "066F"},
		{Name: "/dev/ttyUSB1", IsUSB: true, VID: "1a86", PID: "7523"},
		{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001", Product: "FT232R"},
		{Name: ""},
		nil,
	}, nil)}

	opts := &detection.Options{
		Blocklist:   []string{"1A86:7523"},
		IgnorePaths: []string{"/dev/ttyUSB0"},
	}

	devices, err := d.Detect(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, devices, 2)

	assert.Equal(t, "/dev/ttyACM0", devices[0].Path)
	assert.Equal(t, "STM32 STLink", devices[0].Name)
	assert.Equal(t, "0483:374B", devices[0].Metadata["vidpid"])
	assert.Equal(t, "066F", devices[0].Metadata["serial"])
	assert.Equal(t, "uart", devices[0].Transport)

	assert.Equal(t, "/dev/ttyS0", devices[1].Path)
	assert.Empty(t, devices[1].Metadata["vidpid"])
}

func TestDetector_DetectErrors(t *testing.T) {
	t.Parallel()

	listErr := errors.New("permission denied")
	d := &detector{list: stubList(nil, listErr)}
	_, err := d.Detect(context.Background(), nil)
	require.ErrorIs(t, err, listErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Detect(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDetector_Registered(t *testing.T) {
	t.Parallel()

	var found bool
	for _, d := range detection.Detectors() {
		if d.Transport() == "uart" {
			found = true
		}
	}
	assert.True(t, found, "uart detector should register itself on import")
}
