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

// Package uart provides a serial port transport for ratfist devices.
package uart

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/ZaparooProject/go-ratfist"
)

const (
	// DefaultBaudRate is the rate the ratfist firmware configures its UART for.
	DefaultBaudRate = 115200
	// DefaultReadTimeout bounds each PollByte call.
	DefaultReadTimeout = 100 * time.Millisecond

	readBufferSize = 64
)

// port is the subset of serial.Port the transport needs.
type port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

// Option configures a Transport before the port is opened.
type Option func(*config)

type config struct {
	mode        *serial.Mode
	readTimeout time.Duration
}

// WithBaudRate overrides DefaultBaudRate.
func WithBaudRate(baud int) Option {
	return func(c *config) {
		c.mode.BaudRate = baud
	}
}

// WithReadTimeout overrides DefaultReadTimeout.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.readTimeout = timeout
	}
}

func defaultConfig() *config {
	return &config{
		mode: &serial.Mode{
			BaudRate: DefaultBaudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		},
		readTimeout: DefaultReadTimeout,
	}
}

// Transport implements ratfist.Transport over a serial port. PollByte must
// only be called from one goroutine; Write may run concurrently with it.
type Transport struct {
	port     port
	portName string
	buf      []byte
	readBuf  [readBufferSize]byte
	mu       sync.Mutex
	closed   bool
}

// New opens the serial port at portName, 8N1.
func New(portName string, opts ...Option) (*Transport, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	p, err := serial.Open(portName, cfg.mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	// Bytes queued before the port was opened belong to nobody.
	if err := p.ResetInputBuffer(); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("failed to reset input buffer: %w", err)
	}

	t := newTransport(portName, p)
	if err := t.SetTimeout(cfg.readTimeout); err != nil {
		_ = p.Close()
		return nil, err
	}
	return t, nil
}

func newTransport(portName string, p port) *Transport {
	return &Transport{
		port:     p,
		portName: portName,
	}
}

// PollByte returns the next byte from the port, reading ahead into a small
// buffer. ok is false when the read timeout expired with no data.
func (t *Transport) PollByte() (byte, bool, error) {
	if len(t.buf) == 0 {
		if !t.IsConnected() {
			return 0, false, t.closedError("read")
		}

		n, err := t.port.Read(t.readBuf[:])
		if err != nil {
			if isPortClosed(err) || !t.IsConnected() {
				return 0, false, t.closedError("read")
			}
			return 0, false, ratfist.NewTransportError("read", t.portName,
				fmt.Errorf("%w: %w", ratfist.ErrTransportRead, err))
		}
		if n == 0 {
			return 0, false, nil
		}
		t.buf = t.readBuf[:n]
	}

	b := t.buf[0]
	t.buf = t.buf[1:]
	return b, true, nil
}

// Write sends p to the port.
func (t *Transport) Write(p []byte) (int, error) {
	if !t.IsConnected() {
		return 0, t.closedError("write")
	}

	n, err := t.port.Write(p)
	if err != nil {
		if isPortClosed(err) {
			return n, t.closedError("write")
		}
		return n, ratfist.NewTransportError("write", t.portName,
			fmt.Errorf("%w: %w", ratfist.ErrTransportWrite, err))
	}
	return n, nil
}

// SetTimeout sets the read timeout for the transport
func (t *Transport) SetTimeout(timeout time.Duration) error {
	if err := t.port.SetReadTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set read timeout on %s: %w", t.portName, err)
	}
	return nil
}

// Close closes the transport connection
func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	if err := t.port.Close(); err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", t.portName, err)
	}
	return nil
}

// IsConnected returns true if the transport is connected
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.port != nil && !t.closed
}

// Type returns the transport type
func (*Transport) Type() ratfist.TransportType {
	return ratfist.TransportUART
}

// PortName returns the device path the transport was opened on.
func (t *Transport) PortName() string {
	return t.portName
}

func (t *Transport) closedError(op string) error {
	return ratfist.NewTransportError(op, t.portName, ratfist.ErrTransportClosed)
}

func isPortClosed(err error) bool {
	var portErr *serial.PortError
	return errors.As(err, &portErr) && portErr.Code() == serial.PortClosed
}
