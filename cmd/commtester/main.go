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

// Command commtester is an interactive terminal for ratfist devices. Lines
// typed at the prompt are framed and sent; frames from the device are
// checked and printed as they arrive. Type "exit" to quit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"github.com/ZaparooProject/go-ratfist"
	"github.com/ZaparooProject/go-ratfist/detection"
	// Import detectors to register them
	_ "github.com/ZaparooProject/go-ratfist/detection/uart"
	"github.com/ZaparooProject/go-ratfist/transport/uart"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		printUsage(flag.CommandLine.Output(), detectPorts())
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return exitUsage
	}
	devicePath := flag.Arg(0)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       ratfist.ExitCommand,
	})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "ERROR: failed to start line editor: %v\n", err)
		return exitError
	}
	input := newLineReader(rl)
	defer func() { _ = input.Close() }()

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        rl.Stderr(),
		TimeFormat: time.RFC3339,
	}).Level(zerolog.WarnLevel).With().Timestamp().Str("device", devicePath).Logger()

	transport, err := uart.New(devicePath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open device")
		return exitError
	}
	defer func() { _ = transport.Close() }()

	session, err := ratfist.NewSession(transport,
		ratfist.WithOutput(rl.Stdout()),
		ratfist.WithLogger(logger),
	)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create session")
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = session.Run(ctx, input)
	_, _ = fmt.Fprintln(rl.Stdout(), "Exiting")
	if err != nil {
		logger.Error().Err(err).Msg("session failed")
		return exitError
	}
	return exitOK
}

func detectPorts() []detection.DeviceInfo {
	opts := detection.DefaultOptions()
	devices, err := detection.DetectAll(context.Background(), &opts)
	if err != nil && !errors.Is(err, detection.ErrNoDevicesFound) {
		_, _ = fmt.Fprintf(os.Stderr, "WARNING: port detection failed: %v\n", err)
	}
	return devices
}

func printUsage(w io.Writer, devices []detection.DeviceInfo) {
	_, _ = fmt.Fprintf(w, "Usage: %s <device>\n\n", os.Args[0])
	_, _ = fmt.Fprintf(w, "Opens <device> at %d baud and relays framed messages.\n", uart.DefaultBaudRate)
	_, _ = fmt.Fprintf(w, "Type %q at the prompt to quit.\n", ratfist.ExitCommand)

	if len(devices) == 0 {
		_, _ = fmt.Fprint(w, "\nNo serial ports detected.\n")
		return
	}
	_, _ = fmt.Fprint(w, "\nDetected serial ports:\n")
	for _, device := range devices {
		_, _ = fmt.Fprintf(w, "  %s\n", device.String())
	}
}
