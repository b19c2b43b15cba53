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

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	// ErrInvalidPayload is returned by Encode when a payload contains a reserved character.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrMalformedFrame is returned by Decode when a frame does not match the wire grammar.
	ErrMalformedFrame = errors.New("malformed frame")
	// ErrFrameTooLong is returned by the Reassembler when a candidate frame outgrows its limit.
	ErrFrameTooLong = errors.New("frame too long")
)

const hexDigits = "0123456789ABCDEF"

// Message is a decoded frame.
type Message struct {
	Payload  string
	Raw      string
	Declared byte // checksum carried by the frame
	Computed byte // checksum recomputed over Payload
	Valid    bool
}

// Encode wraps payload into a wire frame: $payload*XX\r\n.
func Encode(payload string) ([]byte, error) {
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}

	checksum := ChecksumString(payload)

	out := make([]byte, 0, len(payload)+MinFrameLength)
	out = append(out, StartMarker)
	out = append(out, payload...)
	out = append(out, ChecksumMarker, hexDigits[checksum>>4], hexDigits[checksum&0x0F])
	out = append(out, Terminator...)
	return out, nil
}

// ValidatePayload checks that payload can be framed.
func ValidatePayload(payload string) error {
	for i := 0; i < len(payload); i++ {
		if reserved(payload[i]) {
			return fmt.Errorf("%w: reserved character %q at position %d", ErrInvalidPayload, payload[i], i)
		}
	}
	return nil
}

// Decode parses a complete frame. Structural problems fail with ErrMalformedFrame;
// a checksum mismatch is reported through Message.Valid instead.
func Decode(raw []byte) (*Message, error) {
	if len(raw) < MinFrameLength {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the minimum of %d",
			ErrMalformedFrame, len(raw), MinFrameLength)
	}
	if raw[0] != StartMarker {
		return nil, fmt.Errorf("%w: missing start marker", ErrMalformedFrame)
	}
	if !bytes.HasSuffix(raw, Terminator) {
		return nil, fmt.Errorf("%w: missing CRLF terminator", ErrMalformedFrame)
	}

	field := raw[len(raw)-TrailerLength : len(raw)-len(Terminator)]
	if field[0] != ChecksumMarker {
		return nil, fmt.Errorf("%w: missing checksum field", ErrMalformedFrame)
	}
	hi, okHi := hexValue(field[1])
	lo, okLo := hexValue(field[2])
	if !okHi || !okLo {
		return nil, fmt.Errorf("%w: checksum %q is not two hex digits", ErrMalformedFrame, field[1:])
	}

	payload := raw[1 : len(raw)-TrailerLength]
	for i, c := range payload {
		if reserved(c) {
			return nil, fmt.Errorf("%w: reserved character %q in payload at position %d",
				ErrMalformedFrame, c, i)
		}
	}

	declared := hi<<4 | lo
	computed := Checksum(payload)
	return &Message{
		Payload:  string(payload),
		Raw:      string(raw),
		Declared: declared,
		Computed: computed,
		Valid:    declared == computed,
	}, nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	default:
		return 0, false
	}
}
