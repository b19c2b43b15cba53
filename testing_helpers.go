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

import (
	"io"
	"strings"
	"sync"
	"time"
)

// MockTransport is an in-memory Transport for tests. Bytes queued with Feed
// are returned by PollByte; bytes passed to Write are recorded.
type MockTransport struct {
	readErr    error
	writeErr   error
	dataCh     chan struct{}
	pending    []byte
	written    []byte
	timeout    time.Duration
	writeLimit int
	mu         sync.Mutex
	closed     bool
}

// NewMockTransport creates a new mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{
		dataCh:  make(chan struct{}, 1),
		timeout: 5 * time.Millisecond,
	}
}

// Feed queues bytes for PollByte.
func (m *MockTransport) Feed(data []byte) {
	m.mu.Lock()
	m.pending = append(m.pending, data...)
	m.mu.Unlock()

	select {
	case m.dataCh <- struct{}{}:
	default:
	}
}

// FeedString queues s for PollByte.
func (m *MockTransport) FeedString(s string) {
	m.Feed([]byte(s))
}

// SetReadError makes every following PollByte fail with err once the queued
// bytes are drained.
func (m *MockTransport) SetReadError(err error) {
	m.mu.Lock()
	m.readErr = err
	m.mu.Unlock()

	select {
	case m.dataCh <- struct{}{}:
	default:
	}
}

// SetWriteError makes every following Write fail with err.
func (m *MockTransport) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// SetWriteLimit makes every following Write accept at most n bytes, as a
// port that stalls mid-frame would. Zero removes the limit.
func (m *MockTransport) SetWriteLimit(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeLimit = n
}

// PollByte returns the next queued byte, or ok == false after the timeout.
func (m *MockTransport) PollByte() (byte, bool, error) {
	if b, ok, done, err := m.next(); done {
		return b, ok, err
	}

	m.mu.Lock()
	timeout := m.timeout
	m.mu.Unlock()

	select {
	case <-m.dataCh:
	case <-time.After(timeout):
	}

	b, ok, _, err := m.next()
	return b, ok, err
}

func (m *MockTransport) next() (b byte, ok, done bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, false, true, ErrTransportClosed
	}
	if len(m.pending) > 0 {
		b = m.pending[0]
		m.pending = m.pending[1:]
		return b, true, true, nil
	}
	if m.readErr != nil {
		return 0, false, true, m.readErr
	}
	return 0, false, false, nil
}

// Write records p.
func (m *MockTransport) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrTransportClosed
	}
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	if m.writeLimit > 0 && len(p) > m.writeLimit {
		p = p[:m.writeLimit]
	}
	m.written = append(m.written, p...)
	return len(p), nil
}

// Written returns everything written so far.
func (m *MockTransport) Written() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.written)
}

// Drained reports whether every queued byte has been polled.
func (m *MockTransport) Drained() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending) == 0
}

// SetTimeout sets how long PollByte waits for data
func (m *MockTransport) SetTimeout(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = timeout
	return nil
}

// Close marks the transport as closed
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// IsConnected returns false once the mock is closed
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Type returns TransportMock
func (*MockTransport) Type() TransportType {
	return TransportMock
}

var (
	_ Transport  = (*MockTransport)(nil)
	_ LineSource = (*ScriptedInput)(nil)
)

// ScriptedInput is a LineSource that replays fixed lines. When the lines run
// out it blocks until closed, like an operator who stopped typing.
type ScriptedInput struct {
	lines  chan string
	done   chan struct{}
	once   sync.Once
	closed bool
	mu     sync.Mutex
}

// NewScriptedInput creates a LineSource that yields lines in order.
func NewScriptedInput(lines ...string) *ScriptedInput {
	in := &ScriptedInput{
		lines: make(chan string, len(lines)),
		done:  make(chan struct{}),
	}
	for _, line := range lines {
		in.lines <- line
	}
	return in
}

// ReadLine returns the next line, or io.EOF once closed.
func (in *ScriptedInput) ReadLine() (string, error) {
	select {
	case line := <-in.lines:
		return strings.TrimRight(line, "\r\n"), nil
	case <-in.done:
		return "", io.EOF
	}
}

// Close unblocks a pending ReadLine.
func (in *ScriptedInput) Close() error {
	in.once.Do(func() {
		in.mu.Lock()
		in.closed = true
		in.mu.Unlock()
		close(in.done)
	})
	return nil
}

// Closed reports whether Close was called.
func (in *ScriptedInput) Closed() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.closed
}
