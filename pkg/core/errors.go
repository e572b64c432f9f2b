package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is matching against the typed errors below.
var (
	ErrUnknownSmell          = errors.New("unknown smell")
	ErrUnsupportedColumnType = errors.New("unsupported column type")
	ErrDuplicateRegistration = errors.New("duplicate registration")
	ErrConfiguration         = errors.New("invalid configuration")
)

// UnknownSmellError is returned when a smell type is not registered.
type UnknownSmellError struct {
	Name      string
	Available []string
}

func (e *UnknownSmellError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown smell %q", e.Name)
	}
	return fmt.Sprintf("unknown smell %q\nAvailable smells: %s\nHint: Run 'datasmell smells' to list registered checks",
		e.Name, strings.Join(e.Available, ", "))
}

// Is matches ErrUnknownSmell.
func (e *UnknownSmellError) Is(target error) bool { return target == ErrUnknownSmell }

// UnsupportedColumnTypeError is returned when a check is explicitly requested
// for a column whose data type it does not support.
type UnsupportedColumnTypeError struct {
	Column    string
	DataType  ColumnDataType
	SmellType DataSmellType
	Supported []ColumnDataType
}

func (e *UnsupportedColumnTypeError) Error() string {
	supported := make([]string, len(e.Supported))
	for i, t := range e.Supported {
		supported[i] = string(t)
	}
	return fmt.Sprintf("smell %s does not support column %q of type %s (supported: %s)",
		e.SmellType, e.Column, e.DataType, strings.Join(supported, ", "))
}

// Is matches ErrUnsupportedColumnType.
func (e *UnsupportedColumnTypeError) Is(target error) bool { return target == ErrUnsupportedColumnType }

// DuplicateRegistrationError is returned when a smell type is registered twice.
type DuplicateRegistrationError struct {
	SmellType DataSmellType
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("smell %s is already registered", e.SmellType)
}

// Is matches ErrDuplicateRegistration.
func (e *DuplicateRegistrationError) Is(target error) bool { return target == ErrDuplicateRegistration }

// ConfigurationError reports an invalid parameter or an attempt to change a locked one.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return "invalid configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Reason)
}

// Is matches ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }
