/**
 * Copyright 2025 Adobe. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

package ui

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failures a page workflow could end with
type Kind string

const (
	// KindNotFound - target entity or element is absent
	KindNotFound Kind = "not_found"
	// KindOperationFailed - the expected confirmation is absent after an action
	KindOperationFailed Kind = "operation_failed"
	// KindInvalidArgument - caller supplied a value outside of allowed vocabulary or arity
	KindInvalidArgument Kind = "invalid_argument"
	// KindTimeout - a bounded wait elapsed
	KindTimeout Kind = "timeout"
	// KindDriver - the driver itself failed (browser crashed, page closed...)
	KindDriver Kind = "driver"
)

// Sentinels to check the kind with errors.Is
var (
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrOperationFailed = &Error{Kind: KindOperationFailed}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrTimeout         = &Error{Kind: KindTimeout}
	ErrDriver          = &Error{Kind: KindDriver}
)

// Error is the labeled UI failure with human readable message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind, so sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newError(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf creates KindNotFound error
func NotFoundf(format string, args ...any) error {
	return newError(KindNotFound, format, args...)
}

// OperationFailedf creates KindOperationFailed error
func OperationFailedf(format string, args ...any) error {
	return newError(KindOperationFailed, format, args...)
}

// InvalidArgumentf creates KindInvalidArgument error
func InvalidArgumentf(format string, args ...any) error {
	return newError(KindInvalidArgument, format, args...)
}

// Timeoutf creates KindTimeout error
func Timeoutf(format string, args ...any) error {
	return newError(KindTimeout, format, args...)
}

// DriverError wraps the driver failure, nil stays nil
func DriverError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	var uiErr *Error
	if errors.As(err, &uiErr) {
		return err
	}
	return &Error{Kind: KindDriver, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns kind of the error or empty string if it's not a UI error
func KindOf(err error) Kind {
	var uiErr *Error
	if errors.As(err, &uiErr) {
		return uiErr.Kind
	}
	return ""
}
