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

// Package hookreader reports the bytes read from a stream to a second
// reader, typically a progress bar.
package hookreader

import "io"

type hookReader struct {
	source io.Reader
	hook   io.Reader
}

// Read always reads from the source and passes the bytes read on to the
// hook. The hook's io.EOF is ignored, any other hook error is returned.
func (hr *hookReader) Read(b []byte) (n int, err error) {
	n, err = hr.source.Read(b)
	if err != nil && err != io.EOF {
		return n, err
	}
	if n > 0 {
		if _, herr := hr.hook.Read(b[:n]); herr != nil && herr != io.EOF {
			return n, herr
		}
	}
	return n, err
}

// NewHook returns source unchanged when hook is nil.
func NewHook(source, hook io.Reader) io.Reader {
	if hook == nil {
		return source
	}
	return &hookReader{source: source, hook: hook}
}
