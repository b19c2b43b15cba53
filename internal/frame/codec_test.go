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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{name: "LED1", payload: "LED1", want: "$LED1*7C\r\n"},
		{name: "empty payload", payload: "", want: "$*00\r\n"},
		{name: "single character zero padded", payload: "\x05", want: "$\x05*05\r\n"},
		{name: "uppercase hex", payload: "AB", want: "$AB*03\r\n"},
		{name: "start marker", payload: "a$b", wantErr: true},
		{name: "checksum marker", payload: "a*b", wantErr: true},
		{name: "carriage return", payload: "ab\r", wantErr: true},
		{name: "line feed", payload: "\nab", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Encode(tt.payload)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPayload)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		want *Message
		name string
		raw  string
	}{
		{
			name: "valid frame",
			raw:  "$LED1*7C\r\n",
			want: &Message{Payload: "LED1", Raw: "$LED1*7C\r\n", Declared: 0x7C, Computed: 0x7C, Valid: true},
		},
		{
			name: "checksum mismatch",
			raw:  "$LED1*FF\r\n",
			want: &Message{Payload: "LED1", Raw: "$LED1*FF\r\n", Declared: 0xFF, Computed: 0x7C, Valid: false},
		},
		{
			name: "lowercase hex accepted",
			raw:  "$LED1*7c\r\n",
			want: &Message{Payload: "LED1", Raw: "$LED1*7c\r\n", Declared: 0x7C, Computed: 0x7C, Valid: true},
		},
		{
			name: "empty payload",
			raw:  "$*00\r\n",
			want: &Message{Payload: "", Raw: "$*00\r\n", Declared: 0, Computed: 0, Valid: true},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode([]byte(tt.raw))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no checksum field", raw: "$AB\r\n"},
		{name: "too short", raw: "$\r\n"},
		{name: "empty", raw: ""},
		{name: "missing start marker", raw: "LED1*7C\r\n"},
		{name: "missing terminator", raw: "$LED1*7C\n"},
		{name: "non hex checksum", raw: "$LED1*ZZ\r\n"},
		{name: "one digit checksum", raw: "$LED1*A\r\n"},
		{name: "three digit checksum", raw: "$LED1*7CB\r\n"},
		{name: "second checksum marker", raw: "$LE*D1*1A\r\n"},
		{name: "embedded start marker", raw: "$LE$D1*1A\r\n"},
		{name: "embedded line feed", raw: "$LE\nD1*1A\r\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg, err := Decode([]byte(tt.raw))
			require.ErrorIs(t, err, ErrMalformedFrame)
			assert.Nil(t, msg)
		})
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	payloads := []string{
		"",
		"LED1",
		"GET_PLAN,0",
		"SET_PLAN,1,1000,50.000000,2000,0.000000",
		"SET_SPIN_STATE,2,ON",
		"~!@#%^&()_+{}|:<>?",
	}

	for _, payload := range payloads {
		raw, err := Encode(payload)
		require.NoError(t, err)

		msg, err := Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, payload, msg.Payload)
		assert.True(t, msg.Valid, "payload %q", payload)
		assert.Equal(t, string(raw), msg.Raw)
	}
}

func TestDecode_SingleBitFlip(t *testing.T) {
	t.Parallel()

	raw, err := Encode("SET_PLAN,1,1000,50.0")
	require.NoError(t, err)

	payloadEnd := len(raw) - TrailerLength
	for i := 1; i < payloadEnd; i++ {
		for bit := 0; bit < 8; bit++ {
			corrupted := append([]byte(nil), raw...)
			corrupted[i] ^= 1 << bit

			msg, err := Decode(corrupted)
			if err != nil {
				// The flip produced a reserved character; that is structural damage.
				require.ErrorIs(t, err, ErrMalformedFrame)
				continue
			}
			assert.False(t, msg.Valid, "flip of bit %d in byte %d went undetected", bit, i)
		}
	}
}
