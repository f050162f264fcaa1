package logger

import "context"

// Nop drops every entry. The zero value is ready to use, so structs holding a
// Logger can default to Nop{} instead of checking for nil.
type Nop struct{}

var _ Logger = Nop{}

// NewNoopLogger returns a Logger that discards everything.
func NewNoopLogger() Logger { return Nop{} }

func (Nop) Debug(context.Context, string, ...Fields)        {}
func (Nop) Info(context.Context, string, ...Fields)         {}
func (Nop) Warn(context.Context, string, ...Fields)         {}
func (Nop) Error(context.Context, string, error, ...Fields) {}
func (Nop) Fatal(context.Context, string, error, ...Fields) {}

// WithFields and WithComponent return the receiver; there is nothing to annotate.
func (n Nop) WithFields(Fields) Logger    { return n }
func (n Nop) WithComponent(string) Logger { return n }
