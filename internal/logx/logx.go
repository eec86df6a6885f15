// Copyright 2026 The Horn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package logx holds the shared logging defaults.
package logx

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Discard drops everything.
var Discard logrus.FieldLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// Or returns l, or Discard when l is nil.
func Or(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Discard
	}
	return l
}
