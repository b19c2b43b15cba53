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

/*
Package ratfist provides a Go library for talking to ratfist spinner firmware
over its serial message protocol.

Every message on the wire is an ASCII frame:

	$<payload>*<CC>\r\n

where CC is the XOR of all payload bytes as two uppercase hex digits. The
payload itself may not contain '$', '*', CR or LF.

Features:
  - Frame encoding and validation
  - Byte-stream reassembly that survives line noise and partial frames
  - Full-duplex sessions: operator lines out, device frames in
  - Firmware error code annotation (ERROR,<code> replies)
  - Serial port detection across Linux, Windows and macOS

Basic Usage:

	import (
	    "github.com/ZaparooProject/go-ratfist"
	    "github.com/ZaparooProject/go-ratfist/transport/uart"
	)

	// Open the device at 115200 baud, 8N1
	transport, err := uart.New("/dev/ttyACM0")
	if err != nil {
	    log.Fatal(err)
	}
	defer transport.Close()

	session, err := ratfist.NewSession(transport,
	    ratfist.WithOutput(os.Stdout),
	    ratfist.WithMaxFrameLength(250),
	)
	if err != nil {
	    log.Fatal(err)
	}

	// Run until the operator types "exit", input ends, or ctx is cancelled
	if err := session.Run(ctx, lines); err != nil {
	    log.Fatal(err)
	}

Output:

Each frame or operator action produces one line:

	LED1 <-- ratfist ($LED1*7C)
	LED1 <-- ratfist ($LED1*FF) - INVALID checksum (expected 7C)
	invalid <-- ratfist ($AB): malformed frame: ...
	LED1 --> ratfist ($LED1*7C)

Error Handling:

Protocol problems (bad checksums, malformed or oversized frames, payloads
with reserved characters) are reported on the output and never end a session.
Transport failures do, and are returned as *TransportError:

	if errors.Is(err, ratfist.ErrTransportClosed) {
	    // Port closed underneath us
	} else if errors.Is(err, ratfist.ErrTransportRead) {
	    // Device unplugged or I/O failure
	}

Thread Safety:

A Session runs its receive and send directions on separate goroutines.
Lines from the two directions may interleave, but each line is written
whole.
*/
package ratfist
