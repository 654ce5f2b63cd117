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
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bucketctl/bucketctl/pkg/hookreader"
	"github.com/bucketctl/bucketctl/pkg/httptracer"
	"github.com/bucketctl/bucketctl/pkg/limiter"
	"github.com/bucketctl/bucketctl/pkg/probe"
	"github.com/gabriel-vasile/mimetype"
	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// S3 client
type s3Client struct {
	api    *minio.Client
	bucket string
	url    string
}

const defaultContentType = "application/octet-stream"

// s3New returns an initialized s3Client bound to config.Bucket. If debug
// is enabled, it also enables an internal trace transport.
func s3New(config *Config) (Client, *probe.Error) {
	if config.Bucket == "" {
		return nil, probe.NewError(BucketNameEmpty{})
	}

	transport := config.Transport
	if transport == nil {
		transport = newDefaultTransport(config)
	}
	transport = limiter.New(config.UploadLimit, config.DownloadLimit, transport)
	if config.Debug {
		transport = httptracer.New(newTraceLogger(), transport)
	}

	api, e := minio.New(config.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure:       config.Secure,
		Region:       config.Region,
		BucketLookup: config.Lookup,
		Transport:    transport,
	})
	if e != nil {
		return nil, probe.NewError(configErr{e})
	}

	// Set app info.
	api.SetAppInfo(config.AppName, config.AppVersion)

	scheme := "http"
	if config.Secure {
		scheme = "https"
	}
	return &s3Client{
		api:    api,
		bucket: config.Bucket,
		url:    scheme + "://" + config.Endpoint + "/" + config.Bucket,
	}, nil
}

func newDefaultTransport(config *Config) *http.Transport {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          256,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		// Set this value so that the underlying transport round-tripper
		// doesn't try to auto decode the body of objects with
		// content-encoding set to `gzip`.
		DisableCompression: true,
	}
	if config.Secure {
		tr.TLSClientConfig = &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: config.Insecure,
		}
	}
	return tr
}

// newTraceLogger writes request traces to stderr.
func newTraceLogger() zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339, NoColor: globalNoColor}
	return zerolog.New(out).With().Timestamp().Str("component", "s3").Logger()
}

// GetURL get url.
func (c *s3Client) GetURL() string {
	return c.url
}

// toClientError translates backend error codes into typed client errors.
func (c *s3Client) toClientError(op, key string, e error) *probe.Error {
	switch minio.ToErrorResponse(e).Code {
	case "NoSuchBucket":
		return probe.NewError(BucketDoesNotExist{Bucket: c.bucket})
	case "InvalidBucketName":
		return probe.NewError(BucketInvalid{Bucket: c.bucket})
	case "NoSuchKey":
		return probe.NewError(ObjectMissing{Bucket: c.bucket, Key: key})
	case "AccessDenied":
		return probe.NewError(PathInsufficientPermission{Bucket: c.bucket, Key: key})
	}
	return probe.NewError(StoreError{Op: op, Bucket: c.bucket, Key: key, Err: e})
}

// detectContentType sniffs the leading bytes of the file.
func detectContentType(localPath string) string {
	mtype, e := mimetype.DetectFile(localPath)
	if e != nil {
		return defaultContentType
	}
	return mtype.String()
}

// Put - upload a local file as key.
func (c *s3Client) Put(ctx context.Context, key, localPath string, opts PutOptions) (int64, *probe.Error) {
	if key == "" {
		return 0, probe.NewError(ObjectNameEmpty{})
	}
	f, e := os.Open(localPath)
	if e != nil {
		return 0, probe.NewError(e)
	}
	defer f.Close()

	st, e := f.Stat()
	if e != nil {
		return 0, probe.NewError(e)
	}
	if !st.Mode().IsRegular() {
		return 0, errInvalidSource(localPath)
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = detectContentType(localPath)
	}

	info, e := c.api.PutObject(ctx, c.bucket, key, f, st.Size(), minio.PutObjectOptions{
		ContentType: contentType,
		Progress:    opts.Progress,
	})
	if e != nil {
		return info.Size, c.toClientError("upload", key, e)
	}
	return info.Size, nil
}

// Get - download key into localPath. Data is written to a temporary
// file first and renamed into place once complete.
func (c *s3Client) Get(ctx context.Context, key, localPath string, opts GetOptions) (int64, *probe.Error) {
	if key == "" {
		return 0, probe.NewError(ObjectNameEmpty{})
	}
	reader, e := c.api.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if e != nil {
		return 0, c.toClientError("download", key, e)
	}
	defer reader.Close()

	// GetObject is lazy, Stat surfaces a missing key before we touch the disk.
	info, e := reader.Stat()
	if e != nil {
		return 0, c.toClientError("download", key, e)
	}
	if bar, ok := opts.Progress.(interface{ SetTotal(int64) }); ok {
		bar.SetTotal(info.Size)
	}

	partPath := localPath + globalPartSuffix
	f, e := os.OpenFile(partPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if e != nil {
		return 0, probe.NewError(e)
	}

	w := &fileWriter{f: f}
	n, e := io.Copy(w, hookreader.NewHook(reader, opts.Progress))
	if e != nil {
		f.Close()
		os.Remove(partPath)
		if w.err != nil {
			return n, probe.NewError(w.err)
		}
		// Anything else broke on the wire side.
		return n, c.toClientError("download", key, e)
	}
	if e = f.Close(); e != nil {
		os.Remove(partPath)
		return n, probe.NewError(e)
	}
	if e = os.Rename(partPath, localPath); e != nil {
		os.Remove(partPath)
		return n, probe.NewError(e)
	}
	return n, nil
}

// fileWriter remembers its own write error so a failed copy can tell a
// local disk failure from a broken download.
type fileWriter struct {
	f   *os.File
	err error
}

func (w *fileWriter) Write(p []byte) (int, error) {
	n, e := w.f.Write(p)
	if e != nil {
		w.err = e
	}
	return n, e
}

// List - list every object under prefix. Stops at the first backend error.
func (c *s3Client) List(ctx context.Context, prefix string, recursive bool) <-chan *ClientContent {
	contentCh := make(chan *ClientContent)
	go func() {
		defer close(contentCh)
		opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: recursive}
		for entry := range c.api.ListObjects(ctx, c.bucket, opts) {
			content := &ClientContent{}
			if entry.Err != nil {
				content.Key = prefix
				content.Err = c.toClientError("list", prefix, entry.Err)
			} else {
				content = objectInfo2ClientContent(entry)
			}
			select {
			case contentCh <- content:
			case <-ctx.Done():
				return
			}
			if content.Err != nil {
				return
			}
		}
	}()
	return contentCh
}

func objectInfo2ClientContent(entry minio.ObjectInfo) *ClientContent {
	return &ClientContent{
		Key:         entry.Key,
		Time:        entry.LastModified,
		Size:        entry.Size,
		ETag:        entry.ETag,
		ContentType: entry.ContentType,
		IsDir:       strings.HasSuffix(entry.Key, "/") && entry.Size == 0,
	}
}

// Remove - delete a single key.
func (c *s3Client) Remove(ctx context.Context, key string) *probe.Error {
	if key == "" {
		return probe.NewError(ObjectNameEmpty{})
	}
	if e := c.api.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); e != nil {
		return c.toClientError("delete", key, e)
	}
	return nil
}

// BucketExists - check whether the bound bucket exists.
func (c *s3Client) BucketExists(ctx context.Context) (bool, *probe.Error) {
	ok, e := c.api.BucketExists(ctx, c.bucket)
	if e != nil {
		return false, c.toClientError("stat", "", e)
	}
	return ok, nil
}

// MakeBucket - make the bound bucket, an existing bucket we own is not an error.
func (c *s3Client) MakeBucket(ctx context.Context, region string) *probe.Error {
	e := c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{Region: region})
	if e != nil {
		if minio.ToErrorResponse(e).Code == "BucketAlreadyOwnedByYou" {
			return nil
		}
		return c.toClientError("create", "", e)
	}
	return nil
}
