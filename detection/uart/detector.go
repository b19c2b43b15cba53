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

// Package uart registers a detector that lists serial ports.
package uart

import (
	"context"
	"fmt"
	"sort"

	"go.bug.st/serial/enumerator"

	"github.com/ZaparooProject/go-ratfist/detection"
)

// detector implements the Detector interface for serial ports
type detector struct {
	list func() ([]*enumerator.PortDetails, error)
}

// New creates a new UART detector
func New() detection.Detector {
	return &detector{list: enumerator.GetDetailedPortsList}
}

// init registers the detector on package import
func init() {
	detection.RegisterDetector(New())
}

// Transport returns the transport type
func (*detector) Transport() string {
	return "uart"
}

// Detect lists serial ports, USB adapters first.
func (d *detector) Detect(ctx context.Context, opts *detection.Options) ([]detection.DeviceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ports, err := d.list()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	devices := make([]detection.DeviceInfo, 0, len(ports))
	for _, port := range ports {
		if port == nil || port.Name == "" {
			continue
		}
		if opts != nil && detection.IsPathIgnored(port.Name, opts.IgnorePaths) {
			continue
		}

		info := detection.DeviceInfo{
			Transport: "uart",
			Path:      port.Name,
			Metadata:  map[string]string{},
		}
		if port.IsUSB {
			vidpid := detection.FormatVIDPID(port.VID, port.PID)
			if opts != nil && detection.IsBlocked(vidpid, opts.Blocklist) {
				continue
			}
			info.Name = port.Product
			info.Metadata["vidpid"] = vidpid
			if port.SerialNumber != "" {
				info.Metadata["serial"] = port.SerialNumber
			}
		}
		devices = append(devices, info)
	}

	sort.SliceStable(devices, func(i, j int) bool {
		iUSB := devices[i].Metadata["vidpid"] != ""
		jUSB := devices[j].Metadata["vidpid"] != ""
		if iUSB != jUSB {
			return iUSB
		}
		return devices[i].Path < devices[j].Path
	})
	return devices, nil
}
