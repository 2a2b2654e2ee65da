// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package uci is a thin Universal Chess Interface front-end over
// pkg/engine: it translates the small, fixed set of UCI commands a GUI
// sends into calls against engine.Engine, and prints its reports and
// results back in UCI's wire format. It carries no state of its own
// beyond the Engine it was built with.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/engine"
	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/move"
	"github.com/chesswise/mess/pkg/search"
)

// errQuit unwinds Start's read loop on a "quit" command.
var errQuit = errors.New("uci: quit")

// Client is a running UCI session bound to a single engine.Engine.
type Client struct {
	stdin  io.Reader // GUI to engine commands
	stdout io.Writer // engine to GUI commands

	engine *engine.Engine
}

// NewClient creates a Client reading UCI commands from stdin and
// writing replies to stdout, driving a freshly built Engine.
func NewClient() *Client {
	return &Client{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		engine: engine.New(nil, engine.DefaultOptions()),
	}
}

// Start runs the read-eval-print loop: one line of input is one UCI
// command, until "quit" or the input stream ends.
func (c *Client) Start() error {
	reader := bufio.NewReader(c.stdin)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		switch err := c.Run(line); err {
		case nil:
			// no error: continue repl

		case errQuit:
			return nil

		default:
			c.Println(err)
		}
	}
}

// Run parses and executes a single line of UCI input.
func (c *Client) Run(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name, args := fields[0], fields[1:]
	switch name {
	case "uci":
		return c.cmdUCI()
	case "isready":
		c.Println("readyok")
		return nil
	case "ucinewgame":
		return c.engine.NewGame()
	case "position":
		return c.cmdPosition(args)
	case "go":
		return c.cmdGo(args)
	case "stop":
		c.engine.Stop()
		return nil
	case "ponderhit":
		c.engine.SetPonder(false)
		return nil
	case "setoption":
		return c.cmdSetOption(args)
	case "quit":
		return errQuit
	default:
		return fmt.Errorf("%s: command not found", name)
	}
}

func (c *Client) cmdUCI() error {
	c.Printf("id name %s\n", "mess")
	c.Printf("id author %s\n", "Rak Laptudirm")
	c.Println("option name Hash type spin default 16 min 1 max 4096")
	c.Println("option name Ponder type check default false")
	c.Println("uciok")
	return nil
}

// cmdPosition implements "position [startpos | fen <fen>] [moves <m> ...]".
func (c *Client) cmdPosition(args []string) error {
	if len(args) == 0 {
		return errors.New("position: missing startpos or fen")
	}

	var fen string
	rest := args[1:]

	switch args[0] {
	case "startpos":
		fen = board.StartFEN
	case "fen":
		fenFields := 0
		for fenFields < len(rest) && rest[fenFields] != "moves" {
			fenFields++
		}
		fen = strings.Join(rest[:fenFields], " ")
		rest = rest[fenFields:]
	default:
		return fmt.Errorf("position: unknown subcommand %q", args[0])
	}

	if err := c.engine.SetPosition(fen); err != nil {
		return err
	}

	if len(rest) > 0 && rest[0] == "moves" {
		return c.engine.ApplyMoveList(strings.Join(rest[1:], " "))
	}
	return nil
}

// cmdGo implements "go [depth <n>] [movetime <ms>] [wtime <ms>] [btime
// <ms>] [winc <ms>] [binc <ms>] [movestogo <n>] [infinite] [ponder]".
// It starts the search on the engine's own worker goroutine and
// returns immediately, printing each completed depth's report as it
// arrives and finally a "bestmove" line once the search has stopped.
func (c *Client) cmdGo(args []string) error {
	var limits search.Limits

	for i := 0; i < len(args); i++ {
		next := func() int {
			i++
			if i >= len(args) {
				return 0
			}
			n, _ := strconv.Atoi(args[i])
			return n
		}

		switch args[i] {
		case "depth":
			limits.Depth = next()
		case "nodes":
			limits.Nodes = next()
		case "movetime":
			limits.MoveTime = next()
		case "wtime":
			limits.Time[0] = next()
		case "btime":
			limits.Time[1] = next()
		case "winc":
			limits.Increment[0] = next()
		case "binc":
			limits.Increment[1] = next()
		case "movestogo":
			limits.MovesToGo = next()
		case "infinite":
			limits.Infinite = true
		case "ponder":
			c.engine.SetPonder(true)
		}
	}

	c.engine.SetLimits(limits)
	c.engine.Go(
		func(r search.Report) {
			c.Println(r)
		},
		func(best move.Move, score eval.Eval) {
			c.Printf("bestmove %s\n", best)
		},
	)
	return nil
}

func (c *Client) cmdSetOption(args []string) error {
	// "setoption name <id> [value <x>]" - Ponder is the only option
	// applied. Hash, although advertised by cmdUCI, and every other name
	// are accepted and ignored so GUIs probing for features see no errors.
	if len(args) >= 2 && args[0] == "name" && strings.EqualFold(args[1], "ponder") {
		value := len(args) >= 4 && args[2] == "value" && args[3] == "true"
		c.engine.SetPonder(value)
	}
	return nil
}

// Println acts as fmt.Println on the client's stdout.
func (c *Client) Println(a ...any) (int, error) {
	return fmt.Fprintln(c.stdout, a...)
}

// Printf acts as fmt.Printf on the client's stdout.
func (c *Client) Printf(format string, a ...any) (int, error) {
	return fmt.Fprintf(c.stdout, format, a...)
}
