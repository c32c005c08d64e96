// Package guard implements the error scope wrapped around every fallible OS
// primitive. A [Scope] converts whatever the primitive reports through the OS
// error channel (or a panic) into a typed [pathfs.OperationError], and
// unwinds registered release callbacks on every exit path.
package guard

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/brettbedarf/pathfs"
	"github.com/brettbedarf/pathfs/internal/util"
)

// open scopes by ID; diagnostic only, scopes never consult each other
var active = xsync.NewMap[uuid.UUID, string]()

// Scope is an open fallible OS region for one named primitive.
//
// Scopes are independent values, so nesting is safe. Release is guaranteed by
// deferring [Scope.Exit] right after [Enter]:
//
//	scope := guard.Enter(logger, pathfs.OpOpenDir, path)
//	defer scope.Exit()
//
// NOTE: Scope itself is **not** thread-safe meaning references to it should
// not be shared between goroutines
type Scope struct {
	id       uuid.UUID
	op       string
	args     []any
	closeFns []func() error
	exited   bool
	logger   util.Logger
}

// Enter opens a scope for op called with args. Scope events are traced to
// logger.
func Enter(logger util.Logger, op string, args ...any) *Scope {
	s := &Scope{id: uuid.New(), op: op, args: args, logger: logger}
	active.Store(s.id, op)

	logger.Trace().Str("scope", s.id.String()).Str("op", op).Interface("args", args).Msg("Entered error scope")
	return s
}

// Do runs the scope's own primitive. See [Scope.Run].
func (s *Scope) Do(fn func() error) error {
	return s.Run(s.op, fn)
}

// Run calls fn as primitive op with the scope's arguments. An error returned
// by fn, or a panic raised inside it, comes back as an *OperationError that
// wraps the cause. Errors that are already typed pass through unchanged.
func (s *Scope) Run(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			err = s.translate(op, fmt.Errorf("panic in %s: %w", op, cause))
		}
	}()
	return s.translate(op, fn())
}

// AddClose pushes a release callback (e.g., closing a directory stream) onto
// the stack unwound by Exit. Its failure is reported as primitive op.
func (s *Scope) AddClose(op string, fn func() error) {
	s.closeFns = append(s.closeFns, func() error {
		return s.Run(op, fn)
	})
}

// Exit unwinds all release callbacks in reverse order and closes the scope.
// Every callback runs even if an earlier one fails; the first failure is
// returned. Safe to call on a nil scope or more than once, so you can
// `defer scope.Exit()` unconditionally.
func (s *Scope) Exit() error {
	if s == nil || s.exited {
		return nil
	}
	s.exited = true
	defer active.Delete(s.id)

	var first error
	for i := len(s.closeFns) - 1; i >= 0; i-- {
		if err := s.closeFns[i](); err != nil && first == nil {
			first = err
		}
	}
	s.closeFns = nil

	s.logger.Trace().Str("scope", s.id.String()).Str("op", s.op).AnErr("closeErr", first).Msg("Exited error scope")
	return first
}

// ID returns the scope's unique identifier as it appears in trace logs
func (s *Scope) ID() uuid.UUID {
	return s.id
}

func (s *Scope) translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var opErr *pathfs.OperationError
	if errors.As(err, &opErr) {
		return err
	}
	return &pathfs.OperationError{Op: op, Args: s.args, Err: err}
}

// Do wraps a single primitive in its own scope: enter, run, exit.
func Do(logger util.Logger, op string, args []any, fn func() error) error {
	s := Enter(logger, op, args...)
	defer s.Exit() // nolint:errcheck
	return s.Do(fn)
}

// Active returns the number of scopes entered but not yet exited
func Active() int {
	return active.Size()
}
