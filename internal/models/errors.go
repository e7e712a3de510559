package models

import (
	"errors"
	"fmt"
)

var (
	// ErrAreaNotFound is wrapped by a FetchError when the page for the
	// requested area code does not exist.
	ErrAreaNotFound = errors.New("could not find the area that you are searching for")

	// ErrNotImplemented is returned for forecast types whose recipe is a stub.
	ErrNotImplemented = errors.New("forecast type not implemented")
)

// FetchError reports a failure retrieving page markup.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports markup that did not have the expected shape.
type ParseError struct {
	Recipe string
	Field  string
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "parse"
	if e.Recipe != "" {
		msg += " " + e.Recipe
	}
	if e.Field != "" {
		msg += " field " + e.Field
	}
	msg += ": " + e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError reports a setting the program has no rule for.
type ConfigError struct {
	Setting string
	Value   string
	Msg     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Setting, e.Value, e.Msg)
}

// Process exit codes by error class.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitFetch   = 2
	ExitParse   = 3
	ExitConfig  = 4
)

// ExitCode classifies err for the command line.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		fetchErr  *FetchError
		parseErr  *ParseError
		configErr *ConfigError
	)
	switch {
	case errors.As(err, &fetchErr):
		return ExitFetch
	case errors.As(err, &parseErr):
		return ExitParse
	case errors.As(err, &configErr), errors.Is(err, ErrNotImplemented):
		return ExitConfig
	default:
		return ExitFailure
	}
}
