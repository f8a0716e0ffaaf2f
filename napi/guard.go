package napi

import (
	"fmt"
	"unsafe"

	"github.com/wippyai/napi-runtime/errors"
)

// Storage is implemented by views that expose host-backed bytes.
type Storage interface {
	Bytes() []byte
}

func (b ArrayBuffer) Bytes() []byte { return b.data }
func (b Buffer) Bytes() []byte      { return b.data }

// BorrowGuard tracks the byte ranges a callback currently holds for writing.
// Two views can alias the same storage (a buffer and a typed array over it,
// or the same argument passed twice); a guard turns that aliasing into an
// error instead of silent overlap.
//
// The zero value is ready to use. A guard belongs to one call frame and is
// not safe for concurrent use.
type BorrowGuard struct {
	spans []span
}

type span struct {
	start, end uintptr
}

// Borrow records s as mutably borrowed until the returned release function
// runs. It fails when s overlaps a range that is still borrowed. Empty
// storage never conflicts.
func (g *BorrowGuard) Borrow(s Storage) (release func(), err error) {
	b := s.Bytes()
	if len(b) == 0 {
		return func() {}, nil
	}

	start := uintptr(unsafe.Pointer(&b[0]))
	sp := span{start: start, end: start + uintptr(len(b))}

	for _, held := range g.spans {
		if sp.start < held.end && held.start < sp.end {
			return nil, errors.New(errors.KindInvalidArg).
				Phase(errors.PhaseApplication).
				Message("storage %s overlaps an active borrow", fmtSpan(sp)).
				Build()
		}
	}

	g.spans = append(g.spans, sp)

	released := false
	return func() {
		if released {
			return
		}
		released = true
		for i, held := range g.spans {
			if held == sp {
				g.spans = append(g.spans[:i], g.spans[i+1:]...)
				return
			}
		}
	}, nil
}

// Active returns the number of outstanding borrows.
func (g *BorrowGuard) Active() int {
	return len(g.spans)
}

func fmtSpan(s span) string {
	return fmt.Sprintf("[%#x, %#x)", s.start, s.end)
}
