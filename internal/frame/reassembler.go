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

package frame

import "fmt"

// State is the reassembler state.
type State int

const (
	// Idle means no frame is in progress; bytes other than '$' are discarded.
	Idle State = iota
	// Collecting means a candidate frame is being accumulated.
	Collecting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Collecting:
		return "collecting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats counts bytes the reassembler dropped without emitting a frame.
type Stats struct {
	Frames    int64 // complete candidates emitted
	Discarded int64 // bytes dropped while idle
	Resyncs   int64 // partial candidates abandoned for a new '$'
	Overflows int64 // candidates dropped for exceeding the length limit
}

// Reassembler turns a byte stream into candidate frames. It is not safe for
// concurrent use; the receive loop owns it.
type Reassembler struct {
	buf    []byte
	stats  Stats
	maxLen int
	state  State
}

// NewReassembler creates a reassembler. maxLen bounds the whole frame, from
// '$' through the final LF. A maxLen of 0 disables the limit, leaving '$' as
// the only thing that bounds the buffer.
func NewReassembler(maxLen int) *Reassembler {
	if maxLen < 0 {
		maxLen = 0
	}
	return &Reassembler{maxLen: maxLen}
}

// Feed consumes one byte. It returns the candidate frame when b completes one,
// and an error wrapping ErrFrameTooLong when the candidate had to be dropped.
// The returned slice is owned by the caller.
func (r *Reassembler) Feed(b byte) ([]byte, error) {
	if b == StartMarker {
		if r.state == Collecting {
			r.stats.Resyncs++
		}
		r.buf = append(r.buf[:0], b)
		r.state = Collecting
		return nil, nil
	}

	if r.state == Idle {
		r.stats.Discarded++
		return nil, nil
	}

	r.buf = append(r.buf, b)
	n := len(r.buf)
	if r.maxLen > 0 && n > r.maxLen {
		r.Reset()
		r.stats.Overflows++
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrFrameTooLong, n, r.maxLen)
	}

	if n >= 2 && r.buf[n-2] == CR && r.buf[n-1] == LF {
		candidate := make([]byte, n)
		copy(candidate, r.buf)
		r.Reset()
		r.stats.Frames++
		return candidate, nil
	}
	return nil, nil
}

// Reset abandons any candidate and returns to Idle.
func (r *Reassembler) Reset() {
	r.buf = r.buf[:0]
	r.state = Idle
}

// State returns the current state.
func (r *Reassembler) State() State {
	return r.state
}

// Pending returns the number of bytes in the current candidate.
func (r *Reassembler) Pending() int {
	return len(r.buf)
}

// Stats returns the running counters.
func (r *Reassembler) Stats() Stats {
	return r.stats
}
