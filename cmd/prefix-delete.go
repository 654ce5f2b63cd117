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
	"strings"

	"github.com/bucketctl/bucketctl/pkg/probe"
)

type prefixDeleteOptions struct {
	// DryRun lists what would be deleted without deleting anything.
	DryRun bool
	// Notify is called after every key is decided.
	Notify func(BatchItem)
}

// listPrefix drains a recursive listing of prefix. The first listing
// error aborts and no keys are returned.
func listPrefix(ctx context.Context, clnt Client, prefix string) ([]*ClientContent, *probe.Error) {
	// Cancelling releases the lister when we stop early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var contents []*ClientContent
	for content := range clnt.List(ctx, prefix, true) {
		if content.Err != nil {
			return nil, content.Err.Trace(prefix)
		}
		contents = append(contents, content)
	}
	return contents, nil
}

// folderObjects counts the objects stored below key taken as a folder,
// i.e. under key + "/". The folder marker itself is not counted.
func folderObjects(ctx context.Context, clnt Client, key string) (int, *probe.Error) {
	folder := key
	if !strings.HasSuffix(folder, "/") {
		folder += "/"
	}
	contents, err := listPrefix(ctx, clnt, folder)
	if err != nil {
		return 0, err.Trace(key)
	}
	var count int
	for _, content := range contents {
		if content.Key != folder {
			count++
		}
	}
	return count, nil
}

// deletePrefix removes every object whose key starts with prefix,
// directory markers included. All keys are listed before the first
// delete; a failed delete is recorded and the remaining keys are still
// attempted. An empty prefix means the whole bucket.
func deletePrefix(ctx context.Context, clnt Client, prefix string, opts prefixDeleteOptions) (*BatchResult, *probe.Error) {
	contents, err := listPrefix(ctx, clnt, prefix)
	if err != nil {
		return nil, err.Trace(prefix)
	}

	result := newBatchResult("delete", bucketOf(clnt), prefix)
	result.DryRun = opts.DryRun
	for _, content := range contents {
		item := BatchItem{Key: content.Key, Size: content.Size}
		if !opts.DryRun {
			if err := clnt.Remove(ctx, content.Key); err != nil {
				item.Err = err.Trace(content.Key)
				errorIf(item.Err, "Unable to remove `%s`.", content.Key)
			}
		}
		result.add(item)
		if opts.Notify != nil {
			opts.Notify(item)
		}
	}
	return result.finish(), nil
}
