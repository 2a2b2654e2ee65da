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

// Package clock implements the search's time management: deciding how
// long an iterative deepening loop is allowed to run for, given either
// a GUI-provided time control or a fixed move time. It is named clock
// rather than time to avoid shadowing the standard library package
// that every file in here also needs.
package clock

import (
	"time"

	"github.com/chesswise/mess/internal/util"
	"github.com/chesswise/mess/pkg/piece"
)

// Manager decides when a search should stop and can be asked to buy
// more time when the search wants to finish an iteration it started.
type Manager interface {
	// GetDeadline calculates and stores the optimal time budget for
	// the upcoming search.
	GetDeadline()

	// ExtendDeadline pushes the current deadline back, for a caller
	// that wants more time, e.g. to finish a fail-high re-search. Not
	// every manager is able to grant an extension.
	ExtendDeadline()

	// Expired reports whether the search deadline has passed.
	Expired() bool
}

// NormalManager allocates a fraction of the remaining clock time for
// the side to move, following the wtime/btime/winc/binc/movestogo
// controls a UCI GUI provides.
type NormalManager struct {
	Us piece.Color

	Time, Increment [piece.ColorN]int
	MovesToGo       int

	deadline time.Time
}

var _ Manager = (*NormalManager)(nil)

// GetDeadline splits the remaining time across the estimated number of
// moves left to the next time control, plus the increment, and never
// budgets more than half of the clock on a single move.
func (m *NormalManager) GetDeadline() {
	movesToGo := m.MovesToGo
	if movesToGo == 0 {
		movesToGo = 30
	}

	remaining := time.Duration(m.Time[m.Us]) * time.Millisecond
	increment := time.Duration(m.Increment[m.Us]) * time.Millisecond

	budget := remaining/time.Duration(movesToGo) + increment/2
	budget = util.Min(budget, remaining/2)

	m.deadline = time.Now().Add(budget)
}

// ExtendDeadline grows the deadline by one twentieth of the side's
// remaining clock time.
func (m *NormalManager) ExtendDeadline() {
	remaining := time.Duration(m.Time[m.Us]) * time.Millisecond
	m.deadline = m.deadline.Add(remaining / 20)
}

// Expired reports whether the allocated deadline has passed.
func (m *NormalManager) Expired() bool {
	return time.Now().After(m.deadline)
}

// MoveManager runs a search for a fixed move time, as requested by a
// UCI "go movetime" command. Its deadline cannot be extended.
type MoveManager struct {
	Duration int // milliseconds

	deadline time.Time
}

var _ Manager = (*MoveManager)(nil)

// GetDeadline sets the deadline to Duration milliseconds from now.
func (m *MoveManager) GetDeadline() {
	m.deadline = time.Now().Add(time.Duration(m.Duration) * time.Millisecond)
}

// ExtendDeadline is a no-op: a fixed move time cannot be extended.
func (m *MoveManager) ExtendDeadline() {}

// Expired reports whether the fixed move time has elapsed.
func (m *MoveManager) Expired() bool {
	return time.Now().After(m.deadline)
}

// InfiniteManager never expires, for "go infinite" searches that stop
// only on an explicit UCI "stop" command.
type InfiniteManager struct{}

var _ Manager = InfiniteManager{}

// GetDeadline is a no-op: an infinite search has no deadline.
func (InfiniteManager) GetDeadline() {}

// ExtendDeadline is a no-op: an infinite search has no deadline.
func (InfiniteManager) ExtendDeadline() {}

// Expired always reports false; only Context.Stop ends the search.
func (InfiniteManager) Expired() bool {
	return false
}
