/*
 * gtu312 - Main process.
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
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/gtu312/simulator/config"
	"github.com/gtu312/simulator/console"
	"github.com/gtu312/simulator/machine"
	"github.com/gtu312/simulator/program"
	logger "github.com/gtu312/simulator/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Settings file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.IntLong("debug", 'D', 0, "Debug level (0-3)")
	optMaxCycles := getopt.IntLong("max-cycles", 'm', 0, "Cycle budget (0 = use config/default)")
	optInteractive := getopt.BoolLong("interactive", 'i', "Drop into the interactive console instead of free-running")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	args := getopt.Args()
	filename := "os_program.txt"
	if len(args) > 0 {
		filename = args[0]
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "unable to create log file: "+err.Error())
			os.Exit(1)
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	handler := logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, optDebug)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	Logger.Info("gtu312 started")

	settings, err := config.Load(*optConfig)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
	if *optMaxCycles > 0 {
		settings.MaxCycles = *optMaxCycles
	}
	debugLevel := settings.Debug
	if *optDebug > 0 {
		debugLevel = *optDebug
	}
	// The settings file may set a debug level the -D flag didn't; make
	// sure the handler's stderr echo threshold reflects whichever one won.
	handler.SetLevel(&debugLevel)

	source, err := os.ReadFile(filename)
	if err != nil {
		Logger.Error("unable to read program file: " + err.Error())
		os.Exit(1)
	}

	result := program.Parse(string(source))
	for _, parseErr := range result.Errors {
		Logger.Warn(parseErr.Error())
	}

	cpu := machine.NewCPU(settings.MemorySize, settings.ThreadTableSize, machine.WithLogger(Logger))

	loadResult, err := cpu.Load(result.Data, result.Instructions, settings.InstructionBase)
	if err != nil {
		Logger.Error("failed to load program: " + err.Error())
		os.Exit(1)
	}
	fmt.Printf("Program loaded. Initial PC = %d\n", loadResult.InitialPC)
	fmt.Printf("Instructions mapped: %d\n", loadResult.InstructionsMapped)

	if *optInteractive {
		console.Run(cpu)
		printSummary(cpu)
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopped := false
	stdin := bufio.NewReader(os.Stdin)

	hook := func(_ *machine.CPU, cycles int) bool {
		select {
		case <-sigChan:
			fmt.Println("Got quit signal")
			stopped = true
			return false
		default:
		}
		// Debug level 2 single-steps the free-running loop the same way
		// the interactive console's "step" command does, one Enter at a
		// time; the console's inspection commands are not available here.
		if debugLevel >= 2 {
			fmt.Printf("-- cycle %d, press Enter to continue --\n", cycles)
			if _, err := stdin.ReadString('\n'); err != nil {
				stopped = true
				return false
			}
		}
		return true
	}

	runResult, err := cpu.Run(settings.MaxCycles, debugLevel, hook)
	if err != nil {
		Logger.Error(err.Error())
	}
	if stopped {
		Logger.Info("Shutting down on signal")
	}
	if runResult.BudgetExceeded {
		Logger.Warn("cycle budget exhausted before all threads terminated")
	}

	printSummary(cpu)
}

func printSummary(cpu *machine.CPU) {
	for _, line := range cpu.FormatSummary() {
		fmt.Println(line)
	}
}
