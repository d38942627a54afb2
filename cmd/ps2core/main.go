/*
 * Copyright 2026, PS2 Core Emulation Substrate Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/ps2core/emu/internal/config"
	"github.com/ps2core/emu/internal/machine"
	"github.com/ps2core/emu/internal/monitor"
	logger "github.com/ps2core/emu/util/logger"
)

var Logger *slog.Logger

func main() {
	optBios := getopt.StringLong("bios", 'b', "", "BIOS image path")
	optElf := getopt.StringLong("elf", 'e', "", "Flat executable to preload into RAM")
	optConfig := getopt.StringLong("config", 'c', "", "TOML configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optMonitor := getopt.BoolLong("monitor", 'm', "Drop into the interactive debug console instead of free-running")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			slog.Error("cannot create log file", "path", *optLogFile, "error", err)
			os.Exit(1)
		}
	}

	cfg := config.Default()
	if *optConfig != "" {
		loaded, err := config.Load(*optConfig)
		if err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		cfg = loaded
	}
	debug := cfg.DebugMask() != 0

	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel}, &debug))
	slog.SetDefault(Logger)

	Logger.Info("ps2core started")

	if *optBios == "" {
		Logger.Error("--bios is required")
		os.Exit(-1)
	}

	biosImage, err := os.ReadFile(*optBios)
	if err != nil {
		Logger.Error("reading BIOS image", "path", *optBios, "error", err)
		os.Exit(-1)
	}

	m := machine.New(Logger)
	if err := m.LoadBIOS(biosImage); err != nil {
		Logger.Error("loading BIOS image", "error", err)
		os.Exit(1)
	}

	if *optElf != "" {
		elfImage, err := os.ReadFile(*optElf)
		if err != nil {
			Logger.Error("reading executable image", "path", *optElf, "error", err)
			os.Exit(-1)
		}
		if err := m.LoadFlat(elfImage, cfg.ElfLoadAddr); err != nil {
			Logger.Error("loading executable image", "error", err)
			os.Exit(1)
		}
	}

	m.ConsoleSink(func(b byte) { os.Stdout.Write([]byte{b}) })

	if *optMonitor {
		monitor.Run(m)
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for m.Running() {
		select {
		case <-sigChan:
			Logger.Info("shutdown signal received")
			return
		default:
		}

		if err := m.Step(); err != nil {
			Logger.Error("emulation fault", "error", err)
			os.Exit(1)
		}
	}

	Logger.Info("ps2core shutting down")
}
