package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-tex2soy"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input tex2soy.Input) (*tex2soy.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*tex2soy.Converter)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment, and converter construction.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	Getenv       func(string) string
	Environ      func() []string
	NewConverter func(opts ...tex2soy.Option) (CLIConverter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Getenv:       os.Getenv,
		Environ:      os.Environ,
		NewConverter: newLibraryConverter,
	}
}

func newLibraryConverter(opts ...tex2soy.Option) (CLIConverter, error) {
	return tex2soy.NewConverter(opts...)
}
