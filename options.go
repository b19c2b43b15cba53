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
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ZaparooProject/go-ratfist/internal/frame"
)

// DefaultDeviceName labels the remote end in console output.
const DefaultDeviceName = "ratfist"

// Config holds session settings.
type Config struct {
	Output         io.Writer
	Logger         zerolog.Logger
	DeviceName     string
	MaxFrameLength int
}

// DefaultConfig returns the default session configuration
func DefaultConfig() *Config {
	return &Config{
		Output:         os.Stdout,
		Logger:         zerolog.Nop(),
		DeviceName:     DefaultDeviceName,
		MaxFrameLength: frame.DefaultMaxFrameLength,
	}
}

// Option is a functional option for configuring a Session
type Option func(*Config) error

// WithOutput sets where received and sent frames are printed.
func WithOutput(w io.Writer) Option {
	return func(c *Config) error {
		if w == nil {
			return errors.New("output writer must not be nil")
		}
		c.Output = w
		return nil
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithDeviceName sets the label printed for the remote end.
func WithDeviceName(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return errors.New("device name must not be empty")
		}
		c.DeviceName = name
		return nil
	}
}

// WithMaxFrameLength bounds the size of a frame, counting from '$' through
// the final LF. Zero removes the bound, so only a new start marker resets an
// unterminated frame.
func WithMaxFrameLength(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return errors.New("max frame length must not be negative")
		}
		if n > 0 && n < frame.MinFrameLength {
			return errors.New("max frame length is shorter than the smallest frame")
		}
		c.MaxFrameLength = n
		return nil
	}
}
