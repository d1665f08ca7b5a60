// Package register provides the calculator's 26 named storage slots.
package register

import (
	"github.com/leapstack-labs/bfcalc/pkg/core"
	"github.com/leapstack-labs/bfcalc/pkg/rational"
)

// Count is the number of registers, one per letter 'a'..'z'.
const Count = 'z' - 'a' + 1

// File is a fixed set of registers. The zero value holds zero in every slot
// and is ready to use. A File is not safe for concurrent use.
type File struct {
	slots [Count]rational.Rational
}

// New returns a register file with every register set to zero.
func New() *File {
	return &File{}
}

// Valid reports whether letter names a register.
func Valid(letter rune) bool {
	return letter >= 'a' && letter <= 'z'
}

func index(letter rune) (int, error) {
	if !Valid(letter) {
		return 0, core.NewError(core.KindInvalidRegister, core.MsgRegisterRange, string(letter))
	}
	return int(letter - 'a'), nil
}

// Store overwrites the register named by letter.
func (f *File) Store(letter rune, value rational.Rational) error {
	i, err := index(letter)
	if err != nil {
		return err
	}
	f.slots[i] = value
	return nil
}

// Get returns the value of the register named by letter, or zero if it has
// never been written.
func (f *File) Get(letter rune) (rational.Rational, error) {
	i, err := index(letter)
	if err != nil {
		return rational.Rational{}, err
	}
	return f.slots[i], nil
}

// Entry is one register and its value.
type Entry struct {
	Letter rune
	Value  rational.Rational
}

// Snapshot returns every register in letter order.
func (f *File) Snapshot() []Entry {
	entries := make([]Entry, 0, Count)
	for i, v := range f.slots {
		entries = append(entries, Entry{Letter: rune('a' + i), Value: v})
	}
	return entries
}

// NonZero returns the registers holding a nonzero value, in letter order.
func (f *File) NonZero() []Entry {
	var entries []Entry
	for _, e := range f.Snapshot() {
		if !e.Value.IsZero() {
			entries = append(entries, e)
		}
	}
	return entries
}
