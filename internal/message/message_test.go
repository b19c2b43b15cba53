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

package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		payload string
		want    Info
	}{
		{
			name:    "known request",
			payload: "GET_PLAN,0",
			want:    Info{Name: "GET_PLAN", Args: []string{"0"}, Known: true},
		},
		{
			name:    "reply with many fields",
			payload: "SPIN_STATE_REPLY,1,RUNNING,1500,42.000000",
			want: Info{
				Name:  "SPIN_STATE_REPLY",
				Args:  []string{"1", "RUNNING", "1500", "42.000000"},
				Known: true,
			},
		},
		{
			name:    "firmware error",
			payload: "ERROR,-1",
			want:    Info{Name: "ERROR", Args: []string{"-1"}, Known: true, IsError: true, ErrorCode: -1},
		},
		{
			name:    "error without code",
			payload: "ERROR",
			want:    Info{Name: "ERROR", Args: []string{}, Known: true},
		},
		{
			name:    "error with non numeric code",
			payload: "ERROR,oops",
			want:    Info{Name: "ERROR", Args: []string{"oops"}, Known: true},
		},
		{
			name:    "free text",
			payload: "LED1",
			want:    Info{Name: "LED1", Args: []string{}},
		},
		{
			name:    "empty",
			payload: "",
			want:    Info{Name: "", Args: []string{}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Parse(tt.payload))
		})
	}
}

func TestAnnotation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "RX_CHECKSUM_ERROR", Annotation("ERROR,-1"))
	assert.Equal(t, "MESSAGE_TOO_LONG_ERROR", Annotation("ERROR,-11"))
	assert.Equal(t, "UNKNOWN_ERROR(-42)", Annotation("ERROR,-42"))
	assert.Empty(t, Annotation("GET_PLAN,0"))
	assert.Empty(t, Annotation("LED1"))
}
