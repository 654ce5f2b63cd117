// Copyright (c) 2015-2025 MinIO, Inc.
//
// This file is part of MinIO Object Storage stack
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package probe implements a simple mechanism to trace and return errors in large programs.
package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var (
	// rootPath is the root of the source tree; it is trimmed from trace file names.
	rootPath string

	// appInfo holds key/value pairs attached to every new error.
	appInfo   = map[string]string{}
	appInfoMu sync.RWMutex
)

// Init initializes probe. It is typically called once from the main()
// function or at least from any source file placed at the top level
// of the source tree.
func Init() {
	_, file, _, ok := runtime.Caller(1)
	if ok {
		rootPath = filepath.Dir(file)
	}
}

// SetAppInfo sets an application specific key:value pair, included
// with every new error.
func SetAppInfo(key, value string) {
	appInfoMu.Lock()
	defer appInfoMu.Unlock()
	appInfo[key] = value
}

// GetSysInfo returns useful system statistics.
func GetSysInfo() map[string]string {
	host, e := os.Hostname()
	if e != nil {
		host = ""
	}
	sysInfo := map[string]string{
		"host.name": host,
		"host.os":   runtime.GOOS,
		"host.arch": runtime.GOARCH,
		"host.lang": runtime.Version(),
		"host.cpus": strconv.Itoa(runtime.NumCPU()),
	}
	var memstats runtime.MemStats
	runtime.ReadMemStats(&memstats)
	sysInfo["mem.heap.used"] = strconv.FormatUint(memstats.HeapAlloc, 10)
	sysInfo["mem.heap.total"] = strconv.FormatUint(memstats.HeapSys, 10)

	appInfoMu.RLock()
	defer appInfoMu.RUnlock()
	for k, v := range appInfo {
		sysInfo["app."+k] = v
	}
	return sysInfo
}

// TracePoint container for individual trace entries in overall call trace
type TracePoint struct {
	Line     int      `json:"line,omitempty"`
	Filename string   `json:"file,omitempty"`
	Function string   `json:"func,omitempty"`
	Env      []string `json:"env,omitempty"`
}

// Error implements tracing error functionality.
type Error struct {
	Cause     error             `json:"cause,omitempty"`
	CallTrace []TracePoint      `json:"trace,omitempty"`
	SysInfo   map[string]string `json:"sysinfo,omitempty"`
}

// NewError function instantiates an error probe for tracing.
// Default ``error`` (golang's error interface) is injected in
// only once. Rest of the time, you trace the return path with
// ``probe.Trace`` and finally handling them with top level
// ``probe.Fatal`` and ``probe.Error`` functions.
func NewError(e error) *Error {
	if e == nil {
		return nil
	}
	err := &Error{Cause: e, SysInfo: GetSysInfo()}
	return err.trace(2)
}

// Trace records the point at which it is invoked.
// Stack traces are important for debugging purposes.
func (e *Error) Trace(fields ...string) *Error {
	if e == nil {
		return nil
	}
	return e.trace(2, fields...)
}

func (e *Error) trace(skip int, fields ...string) *Error {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return e
	}
	if rootPath != "" {
		if rel, re := filepath.Rel(rootPath, file); re == nil {
			file = rel
		}
	}
	function := runtime.FuncForPC(pc).Name()
	if idx := strings.LastIndex(function, "."); idx >= 0 {
		function = function[idx+1:]
	}
	e.CallTrace = append(e.CallTrace, TracePoint{
		Line:     line,
		Filename: file,
		Function: function,
		Env:      fields,
	})
	return e
}

// Untrace erases last known trace entry.
func (e *Error) Untrace() *Error {
	if e == nil {
		return nil
	}
	if l := len(e.CallTrace); l > 0 {
		e.CallTrace = e.CallTrace[:l-1]
	}
	return e
}

// ToGoError returns original error message.
func (e *Error) ToGoError() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// String returns error message.
func (e *Error) String() string {
	if e == nil || e.Cause == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(e.Cause.Error())
	b.WriteString("\n")
	if len(e.CallTrace) > 0 {
		b.WriteString(" (")
		for i := len(e.CallTrace) - 1; i >= 0; i-- {
			tp := e.CallTrace[i]
			fmt.Fprintf(&b, "%d) %s:%d %s(..)", len(e.CallTrace)-i, tp.Filename, tp.Line, tp.Function)
			if len(tp.Env) > 0 {
				fmt.Fprintf(&b, " Tags: [%s]", strings.Join(tp.Env, ", "))
			}
			b.WriteString("\n ")
		}
		b.WriteString(")\n")
	}
	keys := make([]string, 0, len(e.SysInfo))
	for k := range e.SysInfo {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s: %s\n", k, e.SysInfo[k])
	}
	return strings.TrimSpace(b.String())
}
