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

// Package message recognizes ratfist payloads for display. It never rejects a
// payload: anything it does not know is shown as-is.
package message

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldSeparator splits a payload into its name and arguments.
const FieldSeparator = ","

// ErrorName is the payload name the firmware uses to report failures.
const ErrorName = "ERROR"

// Names of the messages the firmware understands or emits.
var Names = []string{
	"SET_PLAN",
	"GET_PLAN",
	"SPIN_PLAN_REPLY",
	"SET_SPIN_STATE",
	"GET_SPIN_STATE",
	"SPIN_STATE_REPLY",
	ErrorName,
}

// errorCodes maps firmware error codes to their names.
var errorCodes = map[int]string{
	0:   "NO_ERROR",
	-1:  "RX_CHECKSUM_ERROR",
	-2:  "MESSAGE_PARSING_ERROR",
	-3:  "MESSAGE_FORMATTING_ERROR",
	-4:  "MEM_ALLOC_ERROR",
	-5:  "MESSAGE_ROUTING_ERROR",
	-6:  "UNKNOWN_SUBSYSTEM_ERROR",
	-7:  "UNKNOWN_MESSAGE_TYPE_ERROR",
	-8:  "MISSING_MESSAGE_HANDLER_ERROR",
	-9:  "TX_BUFFER_FULL",
	-10: "RX_BUFFER_FULL",
	-11: "MESSAGE_TOO_LONG_ERROR",
}

// Info describes a payload.
type Info struct {
	Name      string
	Args      []string
	ErrorCode int
	Known     bool
	IsError   bool
}

// Parse splits payload into a name and arguments.
func Parse(payload string) Info {
	fields := strings.Split(payload, FieldSeparator)
	info := Info{Name: fields[0], Args: fields[1:]}

	for _, name := range Names {
		if name == info.Name {
			info.Known = true
			break
		}
	}

	if info.Name == ErrorName && len(info.Args) == 1 {
		if code, err := strconv.Atoi(strings.TrimSpace(info.Args[0])); err == nil {
			info.IsError = true
			info.ErrorCode = code
		}
	}
	return info
}

// ErrorCodeName returns the firmware name of code.
func ErrorCodeName(code int) string {
	if name, ok := errorCodes[code]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_ERROR(%d)", code)
}

// Annotation returns a short label for payloads worth calling out, or "".
// Only firmware error replies are annotated.
func Annotation(payload string) string {
	info := Parse(payload)
	if !info.IsError {
		return ""
	}
	return ErrorCodeName(info.ErrorCode)
}
