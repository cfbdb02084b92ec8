/*
 * errors.go, part of sfio
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package sfio

// Error is the interface for errors that all packages in this library implement.
// The Decorate method allows to add and retrieve info from the error, without
// changing its type or wrapping it around something else. If passed an empty
// string, it should just return the current decoration slice.
type Error interface {
	Error() string
	Decorate(string) []string
}

// FileError is the interface for errors tied to a specific file.
type FileError interface {
	Error
	FileName() string
	Format() string
	Critical() bool
}

// The error taxonomy is distinguished structurally, through marker methods,
// so that packages that cannot import this one (box, fortran) still produce
// classifiable errors.

// NotFound is the class of errors for unknown section names, or queries
// that overlap no stored instance.
type NotFound interface {
	Error
	NotFound()
}

// IndexError is the class of errors for out-of-range integer, slice or
// list indexing.
type IndexError interface {
	Error
	OutOfRange()
}

// FormatError is the class of errors for malformed binary blocks or
// otherwise structurally broken file content.
type FormatError interface {
	Error
	BadFormat()
}

// ValueError is the class of errors for malformed or ambiguous input
// values, such as a flat box input of the wrong length.
type ValueError interface {
	Error
	BadValue()
}

// CError is the concrete error type used by this package.
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string {
	return err.msg
}

// Decorate adds the dec string to the decoration slice of the error,
// and returns the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

type notFoundError struct{ CError }

func (err *notFoundError) NotFound() {}

type indexError struct{ CError }

func (err *indexError) OutOfRange() {}

type valueError struct{ CError }

func (err *valueError) BadValue() {}

func newNotFound(msg string) *notFoundError {
	return &notFoundError{CError{msg: msg}}
}

func newIndexError(msg string) *indexError {
	return &indexError{CError{msg: msg}}
}

func newValueError(msg string) *valueError {
	return &valueError{CError{msg: msg}}
}

// errDecorate asserts that err implements Error and decorates it with the
// caller's name before returning it. Non-library errors pass through as is.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
