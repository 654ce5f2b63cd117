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

// Package httptracer logs every HTTP round trip of a transport as a
// structured event. Only the method, path, status and duration are
// recorded, never headers or bodies.
package httptracer

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// RoundTripTrace interposes HTTP transport requests and logs them.
type RoundTripTrace struct {
	Logger    zerolog.Logger
	Transport http.RoundTripper // HTTP transport that needs to be intercepted
}

// RoundTrip executes the request and logs its outcome.
func (t RoundTripTrace) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Transport == nil {
		return nil, errors.New("httptracer: no transport configured")
	}

	start := time.Now()
	res, err := t.Transport.RoundTrip(req)
	event := t.Logger.Debug().
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Dur("duration", time.Since(start))
	if err != nil {
		event.Err(err).Msg("request failed")
		return res, err
	}
	event.Int("status", res.StatusCode).Msg("request")
	return res, nil
}

// New returns a traceable transport.
func New(logger zerolog.Logger, transport http.RoundTripper) http.RoundTripper {
	return RoundTripTrace{Logger: logger, Transport: transport}
}
