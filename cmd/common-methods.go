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
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/bucketctl/bucketctl/pkg/probe"
	json "github.com/minio/colorjson"
	"github.com/minio/pkg/v3/console"
)

// newClientFn is replaced in tests.
var newClientFn = s3New

// newClient resolves the configuration from globals and files and
// returns a client bound to the configured bucket.
func newClient() (Client, *Config, *probe.Error) {
	config, err := loadConfig(globalConfigFilePath, globalEnvFilePath)
	if err != nil {
		return nil, nil, err.Trace()
	}
	config.AppName = globalAppName
	config.AppVersion = ReleaseTag
	config.Debug = globalDebug
	config.Insecure = globalInsecure
	config.UploadLimit = globalLimitUpload
	config.DownloadLimit = globalLimitDownload

	clnt, err := newClientFn(config)
	if err != nil {
		return nil, nil, err.Trace(config.Endpoint, config.Bucket)
	}
	return clnt, config, nil
}

// bucketMessage reports that the bucket had to be created.
type bucketMessage struct {
	Status string `json:"status"`
	Bucket string `json:"bucket"`
}

func (b bucketMessage) String() string {
	return console.Colorize("Bucket", fmt.Sprintf("Created bucket `%s`.", b.Bucket))
}

func (b bucketMessage) JSON() string {
	b.Status = "success"
	msgBytes, e := json.MarshalIndent(b, "", " ")
	fatalIf(probe.NewError(e), "Unable to marshal into JSON.")
	return string(msgBytes)
}

// ensureBucket creates the client's bucket when it does not exist yet.
func ensureBucket(ctx context.Context, clnt Client, region string) (created bool, err *probe.Error) {
	ok, err := clnt.BucketExists(ctx)
	if err != nil {
		return false, err.Trace()
	}
	if ok {
		return false, nil
	}
	if err = clnt.MakeBucket(ctx, region); err != nil {
		return false, err.Trace(region)
	}
	return true, nil
}

// mustGetClient builds the client and makes sure its bucket exists,
// exiting with the matching status on failure.
func mustGetClient(ctx context.Context) Client {
	clnt, config, err := newClient()
	fatalIf(err.Trace(), "Unable to initialize client.")

	created, err := ensureBucket(ctx, clnt, config.Region)
	fatalIf(err.Trace(config.Bucket), "Unable to access bucket `%s`.", config.Bucket)
	if created {
		printItemMsg(bucketMessage{Bucket: config.Bucket})
	}
	return clnt
}

// bucketOf returns the bucket name a client is bound to.
func bucketOf(clnt Client) string {
	return path.Base(clnt.GetURL())
}

// putFile uploads a single local file as key.
func putFile(ctx context.Context, clnt Client, source, key string) (int64, *probe.Error) {
	st, e := os.Stat(source)
	if e != nil || !st.Mode().IsRegular() {
		return 0, errInvalidSource(source)
	}
	opts := PutOptions{}
	if showProgress() {
		bar := newProgressBar(st.Size())
		bar.SetCaption(source + ": ")
		defer bar.Finish()
		opts.Progress = bar
	}
	n, err := clnt.Put(ctx, key, source, opts)
	if err != nil {
		return n, err.Trace(source, key)
	}
	return n, nil
}

// getFile downloads key into target, creating parent folders as needed.
func getFile(ctx context.Context, clnt Client, key, target string) (int64, *probe.Error) {
	if dir := filepath.Dir(target); dir != "" {
		if e := os.MkdirAll(dir, 0o755); e != nil {
			return 0, probe.NewError(e).Trace(dir)
		}
	}
	opts := GetOptions{}
	if showProgress() {
		bar := newProgressBar(0)
		bar.SetCaption(key + ": ")
		defer bar.Finish()
		opts.Progress = bar
	}
	n, err := clnt.Get(ctx, key, target, opts)
	if err != nil {
		return n, err.Trace(key, target)
	}
	return n, nil
}
