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
	"bufio"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	minio "github.com/minio/minio-go/v7"
	checkv1 "gopkg.in/check.v1"
)

type storedObject struct {
	data        []byte
	contentType string
	modTime     time.Time
}

// objectStoreHandler is an http.Handler serving a single in-memory
// bucket with just enough of the S3 API for the client.
type objectStoreHandler struct {
	mu      sync.Mutex
	bucket  string
	exists  bool
	objects map[string]storedObject
	// truncated keys advertise their full length but send only half of it.
	truncated map[string]bool
}

func newObjectStoreHandler(bucket string, exists bool) *objectStoreHandler {
	return &objectStoreHandler{bucket: bucket, exists: exists, objects: map[string]storedObject{}}
}

type listEntry struct {
	Key          string    `xml:"Key"`
	LastModified time.Time `xml:"LastModified"`
	ETag         string    `xml:"ETag"`
	Size         int64     `xml:"Size"`
	StorageClass string    `xml:"StorageClass"`
}

type commonPrefix struct {
	Prefix string `xml:"Prefix"`
}

type listBucketV2Result struct {
	XMLName        xml.Name       `xml:"http://s3.amazonaws.com/doc/2006-03-01/ ListBucketResult"`
	Name           string         `xml:"Name"`
	Prefix         string         `xml:"Prefix"`
	Delimiter      string         `xml:"Delimiter,omitempty"`
	KeyCount       int            `xml:"KeyCount"`
	MaxKeys        int            `xml:"MaxKeys"`
	IsTruncated    bool           `xml:"IsTruncated"`
	Contents       []listEntry    `xml:"Contents"`
	CommonPrefixes []commonPrefix `xml:"CommonPrefixes"`
}

func writeS3Error(w http.ResponseWriter, status int, code, resource string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>%s</Code><Message>%s</Message><Resource>%s</Resource><RequestId>test</RequestId></Error>`,
		code, code, resource)
}

// readPayload decodes aws-chunked bodies, signed or with trailers, and
// returns plain bodies as-is.
func readPayload(r *http.Request) ([]byte, error) {
	if !strings.HasPrefix(r.Header.Get("X-Amz-Content-Sha256"), "STREAMING-") &&
		!strings.Contains(r.Header.Get("Content-Encoding"), "aws-chunked") {
		return io.ReadAll(r.Body)
	}
	var buf bytes.Buffer
	br := bufio.NewReader(r.Body)
	for {
		line, e := br.ReadString('\n')
		if e != nil {
			return nil, e
		}
		sizeHex, _, _ := strings.Cut(strings.TrimSpace(line), ";")
		size, e := strconv.ParseInt(sizeHex, 16, 64)
		if e != nil {
			return nil, e
		}
		if size == 0 {
			return buf.Bytes(), nil
		}
		if _, e = io.CopyN(&buf, br, size); e != nil {
			return nil, e
		}
		if _, e = br.Discard(2); e != nil {
			return nil, e
		}
	}
}

func (h *objectStoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if bucket != h.bucket {
		writeS3Error(w, http.StatusNotFound, "NoSuchBucket", r.URL.Path)
		return
	}
	if key == "" {
		h.serveBucket(w, r)
		return
	}
	if !h.exists {
		writeS3Error(w, http.StatusNotFound, "NoSuchBucket", r.URL.Path)
		return
	}

	switch r.Method {
	case http.MethodPut:
		data, e := readPayload(r)
		if e != nil {
			writeS3Error(w, http.StatusBadRequest, "IncompleteBody", r.URL.Path)
			return
		}
		h.objects[key] = storedObject{data: data, contentType: r.Header.Get("Content-Type"), modTime: UTCNow()}
		w.Header().Set("ETag", `"9af2f8218b150c351ad802c6f3d66abe"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet, http.MethodHead:
		obj, ok := h.objects[key]
		if !ok {
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			writeS3Error(w, http.StatusNotFound, "NoSuchKey", r.URL.Path)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(obj.data)))
		w.Header().Set("Content-Type", obj.contentType)
		w.Header().Set("Last-Modified", obj.modTime.Format(http.TimeFormat))
		w.Header().Set("ETag", `"9af2f8218b150c351ad802c6f3d66abe"`)
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			if h.truncated[key] {
				w.Write(obj.data[:len(obj.data)/2])
				return
			}
			w.Write(obj.data)
		}
	case http.MethodDelete:
		delete(h.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *objectStoreHandler) serveBucket(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodHead:
		if !h.exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodPut:
		io.Copy(io.Discard, r.Body)
		h.exists = true
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		if !h.exists {
			writeS3Error(w, http.StatusNotFound, "NoSuchBucket", r.URL.Path)
			return
		}
		if _, ok := r.URL.Query()["location"]; ok {
			io.WriteString(w, `<LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/"></LocationConstraint>`)
			return
		}
		h.serveList(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *objectStoreHandler) serveList(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	delimiter := r.URL.Query().Get("delimiter")
	result := listBucketV2Result{Name: h.bucket, Prefix: prefix, Delimiter: delimiter, MaxKeys: 1000}

	keys := make([]string, 0, len(h.objects))
	for k := range h.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	seen := map[string]bool{}
	for _, k := range keys {
		if delimiter != "" {
			if i := strings.Index(k[len(prefix):], delimiter); i >= 0 {
				p := k[:len(prefix)+i+len(delimiter)]
				if !seen[p] {
					seen[p] = true
					result.CommonPrefixes = append(result.CommonPrefixes, commonPrefix{Prefix: p})
				}
				continue
			}
		}
		obj := h.objects[k]
		result.Contents = append(result.Contents, listEntry{
			Key:          k,
			LastModified: obj.modTime,
			ETag:         `"9af2f8218b150c351ad802c6f3d66abe"`,
			Size:         int64(len(obj.data)),
			StorageClass: "STANDARD",
		})
	}
	result.KeyCount = len(result.Contents) + len(result.CommonPrefixes)

	w.Header().Set("Content-Type", "application/xml")
	io.WriteString(w, xml.Header)
	xml.NewEncoder(w).Encode(result)
}

func (h *objectStoreHandler) object(key string) (storedObject, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	obj, ok := h.objects[key]
	return obj, ok
}

func newTestS3Client(c *checkv1.C, server *httptest.Server, bucket string) Client {
	clnt, err := s3New(&Config{
		Endpoint:  strings.TrimPrefix(server.URL, "http://"),
		AccessKey: "WLGDGYAQYIGI833EV05A",
		SecretKey: "BYvgJM101sHngl2uzjXS/OBF/aMxAN06JrJ3qJlF",
		Bucket:    bucket,
		Region:    "us-east-1",
		Lookup:    minio.BucketLookupPath,
		AppName:   globalAppName,
	})
	c.Assert(err, checkv1.IsNil)
	return clnt
}

func (s *TestSuite) TestS3ObjectOperations(c *checkv1.C) {
	handler := newObjectStoreHandler("bucket", true)
	server := httptest.NewServer(handler)
	defer server.Close()
	clnt := newTestS3Client(c, server, "bucket")
	c.Assert(bucketOf(clnt), checkv1.Equals, "bucket")

	dir := c.MkDir()
	source := filepath.Join(dir, "hello.txt")
	c.Assert(os.WriteFile(source, []byte("Hello, World"), 0o644), checkv1.IsNil)

	n, err := clnt.Put(context.Background(), "greetings/hello.txt", source, PutOptions{})
	c.Assert(err, checkv1.IsNil)
	c.Assert(n, checkv1.Equals, int64(12))
	obj, ok := handler.object("greetings/hello.txt")
	c.Assert(ok, checkv1.Equals, true)
	c.Assert(string(obj.data), checkv1.Equals, "Hello, World")
	c.Assert(strings.HasPrefix(obj.contentType, "text/plain"), checkv1.Equals, true)

	target := filepath.Join(dir, "out", "hello.txt")
	c.Assert(os.MkdirAll(filepath.Dir(target), 0o755), checkv1.IsNil)
	n, err = clnt.Get(context.Background(), "greetings/hello.txt", target, GetOptions{})
	c.Assert(err, checkv1.IsNil)
	c.Assert(n, checkv1.Equals, int64(12))
	data, e := os.ReadFile(target)
	c.Assert(e, checkv1.IsNil)
	c.Assert(string(data), checkv1.Equals, "Hello, World")
	_, e = os.Stat(target + globalPartSuffix)
	c.Assert(os.IsNotExist(e), checkv1.Equals, true)

	var keys []string
	for content := range clnt.List(context.Background(), "greetings/", true) {
		c.Assert(content.Err, checkv1.IsNil)
		keys = append(keys, content.Key)
		c.Assert(content.Size, checkv1.Equals, int64(12))
	}
	c.Assert(keys, checkv1.DeepEquals, []string{"greetings/hello.txt"})

	c.Assert(clnt.Remove(context.Background(), "greetings/hello.txt"), checkv1.IsNil)
	_, ok = handler.object("greetings/hello.txt")
	c.Assert(ok, checkv1.Equals, false)
}

func (s *TestSuite) TestS3ContentTypeOverride(c *checkv1.C) {
	handler := newObjectStoreHandler("bucket", true)
	server := httptest.NewServer(handler)
	defer server.Close()
	clnt := newTestS3Client(c, server, "bucket")

	source := filepath.Join(c.MkDir(), "data.bin")
	c.Assert(os.WriteFile(source, []byte{0x00, 0x01, 0x02}, 0o644), checkv1.IsNil)

	_, err := clnt.Put(context.Background(), "data.bin", source, PutOptions{})
	c.Assert(err, checkv1.IsNil)
	obj, _ := handler.object("data.bin")
	c.Assert(obj.contentType, checkv1.Equals, defaultContentType)

	_, err = clnt.Put(context.Background(), "data.csv", source, PutOptions{ContentType: "text/csv"})
	c.Assert(err, checkv1.IsNil)
	obj, _ = handler.object("data.csv")
	c.Assert(obj.contentType, checkv1.Equals, "text/csv")
}

func (s *TestSuite) TestS3GetMissingObject(c *checkv1.C) {
	handler := newObjectStoreHandler("bucket", true)
	server := httptest.NewServer(handler)
	defer server.Close()
	clnt := newTestS3Client(c, server, "bucket")

	target := filepath.Join(c.MkDir(), "missing.txt")
	_, err := clnt.Get(context.Background(), "missing.txt", target, GetOptions{})
	c.Assert(err, checkv1.NotNil)
	_, ok := err.ToGoError().(ObjectMissing)
	c.Assert(ok, checkv1.Equals, true)
	c.Assert(errorToExitStatus(err), checkv1.Equals, globalStoreErrorExitStatus)

	// Nothing is left behind locally.
	_, e := os.Stat(target)
	c.Assert(os.IsNotExist(e), checkv1.Equals, true)
	_, e = os.Stat(target + globalPartSuffix)
	c.Assert(os.IsNotExist(e), checkv1.Equals, true)
}

func (s *TestSuite) TestS3GetProgressTotal(c *checkv1.C) {
	handler := newObjectStoreHandler("bucket", true)
	handler.objects["report.csv"] = storedObject{data: []byte("a,b\n1,2\n"), modTime: UTCNow()}
	server := httptest.NewServer(handler)
	defer server.Close()
	clnt := newTestS3Client(c, server, "bucket")

	progress := &countingProgress{}
	target := filepath.Join(c.MkDir(), "report.csv")
	_, err := clnt.Get(context.Background(), "report.csv", target, GetOptions{Progress: progress})
	c.Assert(err, checkv1.IsNil)
	c.Assert(progress.total, checkv1.Equals, int64(8))
	c.Assert(progress.read, checkv1.Equals, int64(8))
}

func (s *TestSuite) TestS3GetBrokenBody(c *checkv1.C) {
	handler := newObjectStoreHandler("bucket", true)
	handler.objects["big.bin"] = storedObject{data: bytes.Repeat([]byte("x"), 1000), modTime: UTCNow()}
	handler.truncated = map[string]bool{"big.bin": true}
	server := httptest.NewServer(handler)
	defer server.Close()
	clnt := newTestS3Client(c, server, "bucket")

	target := filepath.Join(c.MkDir(), "big.bin")
	_, err := clnt.Get(context.Background(), "big.bin", target, GetOptions{})
	c.Assert(err, checkv1.NotNil)
	storeErr, ok := err.ToGoError().(StoreError)
	c.Assert(ok, checkv1.Equals, true)
	c.Assert(storeErr.Op, checkv1.Equals, "download")
	c.Assert(storeErr.Bucket, checkv1.Equals, "bucket")
	c.Assert(storeErr.Key, checkv1.Equals, "big.bin")
	c.Assert(errorToExitStatus(err), checkv1.Equals, globalStoreErrorExitStatus)

	_, e := os.Stat(target)
	c.Assert(os.IsNotExist(e), checkv1.Equals, true)
	_, e = os.Stat(target + globalPartSuffix)
	c.Assert(os.IsNotExist(e), checkv1.Equals, true)
}

func (s *TestSuite) TestS3EnsureBucket(c *checkv1.C) {
	handler := newObjectStoreHandler("bucket", false)
	server := httptest.NewServer(handler)
	defer server.Close()
	clnt := newTestS3Client(c, server, "bucket")

	created, err := ensureBucket(context.Background(), clnt, "us-east-1")
	c.Assert(err, checkv1.IsNil)
	c.Assert(created, checkv1.Equals, true)

	created, err = ensureBucket(context.Background(), clnt, "us-east-1")
	c.Assert(err, checkv1.IsNil)
	c.Assert(created, checkv1.Equals, false)
}

func (s *TestSuite) TestS3NonRecursiveList(c *checkv1.C) {
	handler := newObjectStoreHandler("bucket", true)
	handler.objects["top.txt"] = storedObject{data: []byte("t"), modTime: UTCNow()}
	handler.objects["dir/"] = storedObject{modTime: UTCNow()}
	handler.objects["dir/inner.txt"] = storedObject{data: []byte("i"), modTime: UTCNow()}
	server := httptest.NewServer(handler)
	defer server.Close()
	clnt := newTestS3Client(c, server, "bucket")

	var keys []string
	for content := range clnt.List(context.Background(), "", false) {
		c.Assert(content.Err, checkv1.IsNil)
		keys = append(keys, content.Key)
		if content.Key == "dir/" {
			c.Assert(content.IsDir, checkv1.Equals, true)
		}
	}
	c.Assert(keys, checkv1.DeepEquals, []string{"top.txt", "dir/"})
}

func (s *TestSuite) TestS3UploadTreeThenDeletePrefix(c *checkv1.C) {
	handler := newObjectStoreHandler("bucket", true)
	handler.objects["keep/me.txt"] = storedObject{data: []byte("k"), modTime: UTCNow()}
	server := httptest.NewServer(handler)
	defer server.Close()
	clnt := newTestS3Client(c, server, "bucket")

	root := c.MkDir()
	writeTree(c, root, map[string]string{
		"index.html":        "<html></html>",
		"assets/app.js":     "console.log(1)",
		"assets/img/a b.js": "x",
	})

	result, err := uploadTree(context.Background(), clnt, root, "site/", treeUploadOptions{})
	c.Assert(err, checkv1.IsNil)
	c.Assert(result.Succeeded(), checkv1.Equals, 3)
	obj, ok := handler.object("site/assets/img/a b.js")
	c.Assert(ok, checkv1.Equals, true)
	c.Assert(string(obj.data), checkv1.Equals, "x")

	count, err := listContents(context.Background(), clnt, "site/")
	c.Assert(err, checkv1.IsNil)
	c.Assert(count, checkv1.Equals, 3)

	result, err = deletePrefix(context.Background(), clnt, "site/", prefixDeleteOptions{})
	c.Assert(err, checkv1.IsNil)
	c.Assert(result.Succeeded(), checkv1.Equals, 3)

	count, err = listContents(context.Background(), clnt, "site/")
	c.Assert(err, checkv1.IsNil)
	c.Assert(count, checkv1.Equals, 0)
	_, ok = handler.object("keep/me.txt")
	c.Assert(ok, checkv1.Equals, true)
}
