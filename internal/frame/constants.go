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

// Package frame implements the ratfist wire framing: the XOR checksum, the
// frame codec and the incremental stream reassembler.
package frame

// Frame markers
const (
	StartMarker    = '$' // Start of frame
	ChecksumMarker = '*' // Separates payload from checksum field
	CR             = '\r'
	LF             = '\n'
)

// Frame size limits
const (
	// ChecksumFieldLength is the length of "*XX".
	ChecksumFieldLength = 3
	// TrailerLength is the length of "*XX\r\n".
	TrailerLength = ChecksumFieldLength + 2
	// MinFrameLength is the shortest structurally valid frame, "$*00\r\n".
	MinFrameLength = 1 + TrailerLength
	// DefaultMaxFrameLength matches the largest receive buffer of the firmware.
	DefaultMaxFrameLength = 1000
)

// Terminator ends every frame.
var Terminator = []byte{CR, LF}

// reserved reports whether c may not appear in a payload.
func reserved(c byte) bool {
	return c == StartMarker || c == ChecksumMarker || c == CR || c == LF
}
