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

package cmd

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/bucketctl/bucketctl/pkg/probe"
	minio "github.com/minio/minio-go/v7"
)

// PutOptions holds options for PUT operation
type PutOptions struct {
	// ContentType overrides detection from the file contents.
	ContentType string
	// Progress is notified with every chunk read from the file.
	Progress io.Reader
}

// GetOptions holds options of the GET operation
type GetOptions struct {
	// Progress is notified with every chunk written to disk. A Progress
	// with a SetTotal(int64) method is told the object size first.
	Progress io.Reader
}

// Client - object store capability bound to a single bucket.
type Client interface {
	// I/O operations
	Put(ctx context.Context, key, localPath string, opts PutOptions) (n int64, err *probe.Error)
	Get(ctx context.Context, key, localPath string, opts GetOptions) (n int64, err *probe.Error)

	// List lazily streams every object under prefix. Errors are sent
	// in-band through ClientContent.Err.
	List(ctx context.Context, prefix string, recursive bool) <-chan *ClientContent

	// Delete operations
	Remove(ctx context.Context, key string) *probe.Error

	// Bucket operations
	BucketExists(ctx context.Context) (bool, *probe.Error)
	MakeBucket(ctx context.Context, region string) *probe.Error

	// GetURL returns back internal url
	GetURL() string
}

// ClientContent - Content container for content metadata
type ClientContent struct {
	Key         string
	Time        time.Time
	Size        int64
	ETag        string
	ContentType string
	// IsDir is set for directory markers, zero byte keys ending in "/".
	IsDir bool
	Err   *probe.Error
}

// Config - connection settings for the object store.
type Config struct {
	Endpoint  string // host[:port], no scheme
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Secure    bool
	Lookup    minio.BucketLookupType

	AppName    string
	AppVersion string
	Debug      bool
	Insecure   bool

	// Bytes per second, 0 means unlimited.
	UploadLimit   uint64
	DownloadLimit uint64

	// Transport overrides the default HTTP transport, used by tests.
	Transport http.RoundTripper
}
