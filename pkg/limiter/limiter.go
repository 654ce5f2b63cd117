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

// Package limiter throttles request and response bodies of an
// http.RoundTripper with token buckets.
package limiter

import (
	"errors"
	"io"
	"net/http"

	"github.com/juju/ratelimit"
)

type limiter struct {
	upload    *ratelimit.Bucket
	download  *ratelimit.Bucket
	transport http.RoundTripper
}

type readCloser struct {
	io.Reader
	io.Closer
}

func limitReader(r io.Reader, b *ratelimit.Bucket) io.Reader {
	if b == nil {
		return r
	}
	return ratelimit.Reader(r, b)
}

// RoundTrip wraps the outgoing body with the upload bucket and the
// incoming body with the download bucket.
func (l *limiter) RoundTrip(req *http.Request) (*http.Response, error) {
	if l.transport == nil {
		return nil, errors.New("limiter: no transport configured")
	}
	if req.Body != nil && l.upload != nil {
		// RoundTrippers must not modify the caller's request.
		body := req.Body
		req = req.Clone(req.Context())
		req.Body = &readCloser{
			Reader: limitReader(body, l.upload),
			Closer: body,
		}
	}

	res, err := l.transport.RoundTrip(req)
	if res != nil && res.Body != nil && l.download != nil {
		res.Body = &readCloser{
			Reader: limitReader(res.Body, l.download),
			Closer: res.Body,
		}
	}
	return res, err
}

func newBucket(rate uint64) *ratelimit.Bucket {
	if rate == 0 {
		return nil
	}
	return ratelimit.NewBucketWithRate(float64(rate), int64(rate))
}

// New returns transport unchanged when both limits are zero. Limits are
// in bytes per second.
func New(uploadLimit, downloadLimit uint64, transport http.RoundTripper) http.RoundTripper {
	if uploadLimit == 0 && downloadLimit == 0 {
		return transport
	}
	return &limiter{
		upload:    newBucket(uploadLimit),
		download:  newBucket(downloadLimit),
		transport: transport,
	}
}
