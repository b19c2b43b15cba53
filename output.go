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
	"fmt"
	"io"
	"strings"

	"github.com/ZaparooProject/go-ratfist/internal/frame"
	"github.com/ZaparooProject/go-ratfist/internal/message"
)

// Output formats session events for the operator, one line per event. Each
// line is a single Write, but lines from the receive and send directions may
// interleave in any order.
type Output struct {
	w      io.Writer
	device string
}

// NewOutput creates a new output handler
func NewOutput(w io.Writer, device string) *Output {
	return &Output{w: w, device: device}
}

// Received prints a decoded frame.
func (o *Output) Received(msg *frame.Message) {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "%s <-- %s (%s)", msg.Payload, o.device, trimTerminator(msg.Raw))
	if !msg.Valid {
		_, _ = fmt.Fprintf(&b, " - INVALID checksum (expected %02X)", msg.Computed)
	}
	if note := message.Annotation(msg.Payload); note != "" {
		_, _ = fmt.Fprintf(&b, " [%s]", note)
	}
	o.line(b.String())
}

// Malformed prints a frame that failed structural decoding.
func (o *Output) Malformed(raw []byte, err error) {
	o.line(fmt.Sprintf("invalid <-- %s (%s): %v", o.device, quoteRaw(raw), err))
}

// Overflow prints a frame dropped for exceeding the length limit.
func (o *Output) Overflow(err error) {
	o.line(fmt.Sprintf("overflow <-- %s: %v", o.device, err))
}

// Sent prints a frame written to the device.
func (o *Output) Sent(payload string, raw []byte) {
	o.line(fmt.Sprintf("%s --> %s (%s)", payload, o.device, trimTerminator(string(raw))))
}

// Rejected prints an operator line that could not be framed.
func (o *Output) Rejected(payload string, err error) {
	o.line(fmt.Sprintf("not sent %q: %v", payload, err))
}

func (o *Output) line(s string) {
	_, _ = io.WriteString(o.w, s+"\n")
}

func trimTerminator(raw string) string {
	return strings.TrimSuffix(raw, string(frame.Terminator))
}

// quoteRaw shows raw bytes with control characters escaped, since a
// malformed frame may carry anything.
func quoteRaw(raw []byte) string {
	q := fmt.Sprintf("%q", trimTerminator(string(raw)))
	return q[1 : len(q)-1]
}
