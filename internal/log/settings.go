// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Format is the format of the logger output.
type Format uint8

const (
	// FormatConsole is the console format, with coloured levels.
	FormatConsole Format = iota
	// FormatPlain is the console format without colours,
	// suitable for files and tests.
	FormatPlain
)

type contextKeyValues struct {
	key    string
	values []string
}

type callerSettings struct {
	file *bool
	line *bool
	funC *bool
}

type settings struct {
	writer  io.Writer
	level   *Level
	format  *Format
	caller  callerSettings
	context []contextKeyValues
}

func newSettings(options []Option) (s settings) {
	for _, option := range options {
		option(&s)
	}
	return s
}

// mergeWith sets unset fields of s with the values of other.
// Context key values of other are prepended to the ones of s.
func (s *settings) mergeWith(other settings) {
	if s.writer == nil {
		s.writer = other.writer
	}

	if s.level == nil && other.level != nil {
		value := *other.level
		s.level = &value
	}

	if s.format == nil && other.format != nil {
		value := *other.format
		s.format = &value
	}

	s.caller.mergeWith(other.caller)

	if len(other.context) > 0 {
		merged := make([]contextKeyValues, 0, len(other.context)+len(s.context))
		for _, kv := range other.context {
			merged = append(merged, contextKeyValues{
				key:    kv.key,
				values: append([]string(nil), kv.values...),
			})
		}
		for _, kv := range s.context {
			merged = appendContext(merged, kv)
		}
		s.context = merged
	}
}

// overrideWith sets fields of s with the set fields of other.
func (s *settings) overrideWith(other settings) {
	if other.writer != nil {
		s.writer = other.writer
	}

	if other.level != nil && *other.level != DoNotChange {
		value := *other.level
		s.level = &value
	}

	if other.format != nil {
		value := *other.format
		s.format = &value
	}

	if other.caller.file != nil {
		s.caller.file = other.caller.file
	}
	if other.caller.line != nil {
		s.caller.line = other.caller.line
	}
	if other.caller.funC != nil {
		s.caller.funC = other.caller.funC
	}

	for _, kv := range other.context {
		s.context = appendContext(s.context, kv)
	}
}

func (s *settings) setDefaults() {
	if s.writer == nil {
		s.writer = os.Stdout
	}

	if s.level == nil {
		level := Info
		s.level = &level
	}

	if s.format == nil {
		format := FormatConsole
		s.format = &format
	}

	s.caller.setDefaults()
}

func appendContext(kvs []contextKeyValues, kv contextKeyValues) []contextKeyValues {
	for i := range kvs {
		if kvs[i].key == kv.key {
			kvs[i].values = append(kvs[i].values, kv.values...)
			return kvs
		}
	}
	return append(kvs, contextKeyValues{
		key:    kv.key,
		values: append([]string(nil), kv.values...),
	})
}

func (c *callerSettings) mergeWith(other callerSettings) {
	if c.file == nil && other.file != nil {
		value := *other.file
		c.file = &value
	}

	if c.line == nil && other.line != nil {
		value := *other.line
		c.line = &value
	}

	if c.funC == nil && other.funC != nil {
		value := *other.funC
		c.funC = &value
	}
}

func (c *callerSettings) setDefaults() {
	disabled := false
	if c.file == nil {
		c.file = &disabled
	}
	if c.line == nil {
		c.line = &disabled
	}
	if c.funC == nil {
		c.funC = &disabled
	}
}

func (c callerSettings) String() string {
	if !*c.file && !*c.line && !*c.funC {
		return ""
	}

	const depth = 3
	pc, file, line, ok := runtime.Caller(depth)
	if !ok {
		return "error"
	}

	var fields []string

	if *c.file {
		fields = append(fields, filepath.Base(file))
	}

	if *c.line {
		fields = append(fields, "L"+fmt.Sprint(line))
	}

	if *c.funC {
		details := runtime.FuncForPC(pc)
		if details != nil {
			funcName := strings.TrimLeft(filepath.Ext(details.Name()), ".")
			fields = append(fields, funcName)
		}
	}

	return strings.Join(fields, ":")
}
