// SPDX-License-Identifier: MPL-2.0

// Package sound signals the end of a job run audibly.
//
// The only backend rings the terminal bell, so a Player can only be built when
// the output is a terminal. Callers treat construction failures as "no sound".
package sound

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kpbaks/bacon/pkg/jobspec"

	"golang.org/x/term"
)

const (
	// BeepSuccess is played when a run succeeds.
	BeepSuccess Beep = "success"
	// BeepFailure is played when a run fails.
	BeepFailure Beep = "failure"

	bell = "\a"
)

// ErrNotATerminal is returned by New when the output cannot ring a bell.
var ErrNotATerminal = errors.New("sound output is not a terminal")

type (
	// Beep names a notification sound.
	Beep string

	// Player plays notification sounds.
	Player interface {
		Play(beep Beep) error
	}

	// Constructor builds a Player for a base volume.
	Constructor func(volume jobspec.Volume) (Player, error)

	// BellPlayer rings the terminal bell: once for success, twice for failure.
	// A zero volume mutes it.
	BellPlayer struct {
		out    io.Writer
		volume jobspec.Volume
	}

	fdWriter interface {
		io.Writer
		Fd() uintptr
	}
)

// New builds a BellPlayer on stderr.
func New(volume jobspec.Volume) (Player, error) {
	p, err := NewOn(os.Stderr, volume)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewOn builds a BellPlayer writing to out, which must be a terminal.
func NewOn(out io.Writer, volume jobspec.Volume) (*BellPlayer, error) {
	if err := volume.Validate(); err != nil {
		return nil, err
	}
	f, ok := out.(fdWriter)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, ErrNotATerminal
	}
	return &BellPlayer{out: out, volume: volume}, nil
}

// Play rings the bell for beep.
func (p *BellPlayer) Play(beep Beep) error {
	if p.volume == 0 {
		return nil
	}
	n := 1
	if beep == BeepFailure {
		n = 2
	}
	if _, err := io.WriteString(p.out, strings.Repeat(bell, n)); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}
