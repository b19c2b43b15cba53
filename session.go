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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ZaparooProject/go-ratfist/internal/frame"
)

// ExitCommand is the operator line that ends a session.
const ExitCommand = "exit"

// Session connects an operator to a ratfist device. The receive direction
// prints every frame the device sends; the send direction frames operator
// lines and writes them to the device.
type Session struct {
	transport   Transport
	output      *Output
	reassembler *frame.Reassembler
	config      *Config
	logger      zerolog.Logger
}

// NewSession creates a session on top of transport.
func NewSession(transport Transport, opts ...Option) (*Session, error) {
	if transport == nil {
		return nil, errors.New("transport must not be nil")
	}

	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return &Session{
		transport:   transport,
		output:      NewOutput(config.Output, config.DeviceName),
		reassembler: frame.NewReassembler(config.MaxFrameLength),
		config:      config,
		logger:      config.Logger.With().Str("transport", string(transport.Type())).Logger(),
	}, nil
}

// Run drives both directions until the operator enters ExitCommand, input
// reaches io.EOF, ctx is cancelled, or the transport fails. Transport failures
// are returned; everything else is a clean shutdown and returns nil.
//
// input is closed when the session has to abandon a pending ReadLine, so
// that a blocked prompt returns.
func (s *Session) Run(ctx context.Context, input LineSource) error {
	stop := context.AfterFunc(ctx, func() { closeInput(input) })
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.logger.Info().Msg("session started")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := s.Receive(gctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("receive failed")
			closeInput(input)
		}
		return err
	})
	g.Go(func() error {
		defer cancel()
		return s.readInput(gctx, input)
	})

	err := g.Wait()
	s.logger.Info().Msg("session stopped")
	return err
}

// Receive polls the transport and prints every frame until ctx is cancelled.
// It returns nil on cancellation and a *TransportError if the transport fails.
func (s *Session) Receive(ctx context.Context) error {
	defer func() {
		stats := s.reassembler.Stats()
		s.logger.Debug().
			Int64("frames", stats.Frames).
			Int64("discarded", stats.Discarded).
			Int64("resyncs", stats.Resyncs).
			Int64("overflows", stats.Overflows).
			Msg("receive stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, ok, err := s.transport.PollByte()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return wrapTransportError("read", ErrTransportRead, err)
		}
		if !ok {
			continue
		}

		s.handleByte(b)
	}
}

func (s *Session) handleByte(b byte) {
	candidate, err := s.reassembler.Feed(b)
	if err != nil {
		s.output.Overflow(err)
		return
	}
	if candidate == nil {
		return
	}

	msg, err := frame.Decode(candidate)
	if err != nil {
		s.output.Malformed(candidate, err)
		return
	}
	if !msg.Valid {
		s.logger.Debug().
			Str("payload", msg.Payload).
			Uint8("declared", msg.Declared).
			Uint8("computed", msg.Computed).
			Msg("checksum mismatch")
	}
	s.output.Received(msg)
}

// Send frames line and writes it to the device. A line that cannot be framed
// is reported to the operator and dropped without error; only transport
// failures are returned.
func (s *Session) Send(line string) error {
	raw, err := frame.Encode(line)
	if err != nil {
		s.output.Rejected(line, err)
		return nil
	}

	n, err := s.transport.Write(raw)
	if err != nil {
		return wrapTransportError("write", ErrTransportWrite, err)
	}
	if n != len(raw) {
		return NewTransportError("write", "",
			fmt.Errorf("%w: %w: wrote %d of %d bytes", ErrTransportWrite, ErrShortWrite, n, len(raw)))
	}

	s.output.Sent(line, raw)
	return nil
}

func (s *Session) readInput(ctx context.Context, input LineSource) error {
	for {
		line, err := input.ReadLine()
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read operator input: %w", err)
		}

		switch line {
		case "":
			continue
		case ExitCommand:
			return nil
		}

		if err := s.Send(line); err != nil {
			s.logger.Error().Err(err).Msg("send failed")
			return err
		}
	}
}

func wrapTransportError(op string, kind, err error) error {
	if IsTransportError(err) {
		return err
	}
	return NewTransportError(op, "", fmt.Errorf("%w: %w", kind, err))
}

func closeInput(input LineSource) {
	_ = input.Close()
}
