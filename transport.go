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

package ratfist

import "time"

// Transport is the byte stream to a ratfist device. One goroutine polls it
// while another writes to it, so implementations must tolerate a concurrent
// PollByte and Write.
type Transport interface {
	// PollByte returns the next byte. ok is false when nothing arrived within
	// the read timeout.
	PollByte() (b byte, ok bool, err error)

	// Write sends p to the device.
	Write(p []byte) (int, error)

	// SetTimeout sets how long PollByte waits for a byte
	SetTimeout(timeout time.Duration) error

	// Close closes the transport connection
	Close() error

	// IsConnected returns true if the transport is connected
	IsConnected() bool

	// Type returns the transport type
	Type() TransportType
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportUART represents UART/serial transport.
	TransportUART TransportType = "uart"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)

// LineSource supplies operator input one line at a time, without the line
// terminator. ReadLine returns io.EOF when no more input will arrive.
type LineSource interface {
	ReadLine() (string, error)

	// Close makes a pending ReadLine return. It must be safe to call more
	// than once and concurrently with ReadLine.
	Close() error
}
