// SPDX-License-Identifier: MPL-2.0

package sound

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kpbaks/bacon/pkg/jobspec"
)

func TestNewOn_RejectsNonTerminal(t *testing.T) {
	t.Parallel()

	if _, err := NewOn(&bytes.Buffer{}, 50); !errors.Is(err, ErrNotATerminal) {
		t.Errorf("NewOn(buffer) error = %v, want ErrNotATerminal", err)
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()
	if _, err := NewOn(f, 50); !errors.Is(err, ErrNotATerminal) {
		t.Errorf("NewOn(regular file) error = %v, want ErrNotATerminal", err)
	}
}

func TestNewOn_RejectsInvalidVolume(t *testing.T) {
	t.Parallel()

	if _, err := NewOn(&bytes.Buffer{}, 101); !errors.Is(err, jobspec.ErrInvalidVolume) {
		t.Errorf("NewOn(volume 101) error = %v, want ErrInvalidVolume", err)
	}
}

func TestBellPlayer_Play(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := &BellPlayer{out: &buf, volume: 40}
	if err := p.Play(BeepSuccess); err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	if err := p.Play(BeepFailure); err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	if got := buf.String(); got != "\a\a\a" {
		t.Errorf("bell output = %q, want three bells", got)
	}

	buf.Reset()
	muted := &BellPlayer{out: &buf, volume: 0}
	if err := muted.Play(BeepFailure); err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("muted player wrote %q", buf.String())
	}
}
