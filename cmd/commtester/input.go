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

package main

import (
	"errors"
	"io"
	"sync"

	"github.com/chzyer/readline"

	"github.com/ZaparooProject/go-ratfist"
)

// readliner is the part of *readline.Instance the session needs.
type readliner interface {
	Readline() (string, error)
	Close() error
}

// lineReader adapts readline to ratfist.LineSource.
type lineReader struct {
	rl   readliner
	once sync.Once
}

var _ ratfist.LineSource = (*lineReader)(nil)

func newLineReader(rl readliner) *lineReader {
	return &lineReader{rl: rl}
}

// ReadLine returns the next operator line. Ctrl-C on an empty prompt ends
// input like Ctrl-D does; on a partly typed line it only discards the line.
func (r *lineReader) ReadLine() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		if line == "" {
			return "", io.EOF
		}
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

// Close releases the terminal. It is safe to call more than once.
func (r *lineReader) Close() error {
	var err error
	r.once.Do(func() {
		err = r.rl.Close()
	})
	return err
}
