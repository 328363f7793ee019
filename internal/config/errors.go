package config

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by the config package.
var (
	// ErrConfigNotFound is returned when the config file is not found.
	ErrConfigNotFound = errors.New("config: configuration file not found")
	// ErrInvalidConfig is matched by every *ValidationError.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// ParseError reports a config source that is not well-formed YAML
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: parsing layout: %v", e.Err)
	}
	return fmt.Sprintf("config: parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Violation is one field outside its allowed range
type Violation struct {
	// Field is the dotted YAML path, e.g. "layout.margin"
	Field string
	// Rule is the failed constraint, e.g. "gte" or "fit"
	Rule  string
	Param string
	Value any
	// Message is a human readable explanation
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (got %v)", v.Field, v.Message, v.Value)
}

// ValidationError lists every violated constraint of a config
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("config: %d invalid field(s): %s", len(e.Violations), strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrInvalidConfig) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Fields returns the offending field paths in report order
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Field)
	}
	return out
}
