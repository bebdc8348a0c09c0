// Copyright 2023 Palantir Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errfmt formats errors with the stack trace of their cause.
package errfmt

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

type pkgErrorsStackTracer interface {
	StackTrace() errors.StackTrace
}

type runtimeStackTracer interface {
	StackTrace() []runtime.Frame
}

// Print returns the message of err followed by the deepest stack trace
// found in its chain of wrapped errors. Each frame is printed on two lines:
// the function name, then a tab and the file and line number. Print returns
// an empty string if err is nil.
func Print(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(err.Error())

	var trace func(*strings.Builder)
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch st := e.(type) {
		case pkgErrorsStackTracer:
			trace = func(b *strings.Builder) {
				for _, f := range st.StackTrace() {
					fmt.Fprintf(b, "\n%+v", f)
				}
			}
		case runtimeStackTracer:
			trace = func(b *strings.Builder) {
				for _, f := range st.StackTrace() {
					fmt.Fprintf(b, "\n%s\n\t%s:%d", f.Function, f.File, f.Line)
				}
			}
		}
	}

	if trace != nil {
		trace(&b)
	}
	return b.String()
}
