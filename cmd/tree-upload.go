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
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bucketctl/bucketctl/pkg/probe"
)

// Reasons recorded against skipped files.
const (
	skipReasonSymlink       = "symbolic link"
	skipReasonSymlinkFolder = "symbolic link to a folder"
	skipReasonIrregular     = "not a regular file"
)

// transferMapping pairs a local file with the object key it is uploaded as.
type transferMapping struct {
	Source string
	Key    string
	Size   int64
}

// planEntry is one walked file; either a mapping to upload or an item
// already decided as skipped or failed.
type planEntry struct {
	transferMapping
	skipped bool
	reason  string
	err     *probe.Error
}

// batchProgress is fed every uploaded byte of a batch.
type batchProgress interface {
	io.Reader
	SetTotal(total int64)
	SetCaption(caption string)
}

type treeUploadOptions struct {
	// FollowSymlinks uploads symbolic links to regular files with the
	// content of their target. Links to folders are never followed.
	FollowSymlinks bool
	Progress       batchProgress
	// Notify is called after every item is decided.
	Notify func(BatchItem)
}

// objectKey joins a destination prefix and a slash separated relative
// path. A trailing slash on prefix makes no difference.
func objectKey(prefix, rel string) string {
	if prefix == "" {
		return rel
	}
	return strings.TrimSuffix(prefix, "/") + "/" + rel
}

// walkDir is swapped in tests to fail a walk on demand.
var walkDir = filepath.WalkDir

// enumerateTree walks sourceRoot in lexical order and plans one entry per
// non-directory. The first walk error aborts the enumeration.
func enumerateTree(sourceRoot, prefix string, followSymlinks bool) ([]planEntry, *probe.Error) {
	walkRoot, e := filepath.EvalSymlinks(sourceRoot)
	if e != nil {
		return nil, errUnreadableSource(sourceRoot, e)
	}

	var plan []planEntry
	e = walkDir(walkRoot, func(path string, d fs.DirEntry, e error) error {
		if e != nil {
			return e
		}
		if d.IsDir() {
			return nil
		}
		rel, e := filepath.Rel(walkRoot, path)
		if e != nil {
			return e
		}
		entry := planEntry{transferMapping: transferMapping{
			Source: filepath.Join(sourceRoot, rel),
			Key:    objectKey(prefix, filepath.ToSlash(rel)),
		}}

		switch mode := d.Type(); {
		case mode.IsRegular():
			info, e := d.Info()
			if e != nil {
				return e
			}
			entry.Size = info.Size()
		case mode&fs.ModeSymlink != 0:
			if !followSymlinks {
				entry.skipped, entry.reason = true, skipReasonSymlink
				break
			}
			st, e := os.Stat(path)
			switch {
			case errors.Is(e, fs.ErrNotExist):
				entry.err = probe.NewError(BrokenSymlink{Path: entry.Source})
			case e != nil:
				entry.err = probe.NewError(e)
			case st.IsDir():
				entry.skipped, entry.reason = true, skipReasonSymlinkFolder
			case st.Mode().IsRegular():
				entry.Size = st.Size()
			default:
				entry.skipped, entry.reason = true, skipReasonIrregular
			}
		default:
			entry.skipped, entry.reason = true, skipReasonIrregular
		}
		plan = append(plan, entry)
		return nil
	})
	if e != nil {
		return nil, errUnreadableSource(sourceRoot, e)
	}
	return plan, nil
}

// uploadTree uploads every regular file below sourceRoot to
// destinationPrefix + its slash separated relative path. The whole tree
// is enumerated before the first upload; a failed upload is recorded and
// the remaining files are still attempted.
func uploadTree(ctx context.Context, clnt Client, sourceRoot, destinationPrefix string, opts treeUploadOptions) (*BatchResult, *probe.Error) {
	st, e := os.Stat(sourceRoot)
	if e != nil || !st.IsDir() {
		return nil, errInvalidSource(sourceRoot)
	}

	plan, err := enumerateTree(sourceRoot, destinationPrefix, opts.FollowSymlinks)
	if err != nil {
		return nil, err.Trace(sourceRoot)
	}

	result := newBatchResult("upload", bucketOf(clnt), destinationPrefix)
	if opts.Progress != nil {
		var total int64
		for _, entry := range plan {
			if !entry.skipped && entry.err == nil {
				total += entry.Size
			}
		}
		opts.Progress.SetTotal(total)
	}

	for _, entry := range plan {
		item := BatchItem{
			Source:  entry.Source,
			Key:     entry.Key,
			Size:    entry.Size,
			Skipped: entry.skipped,
			Reason:  entry.reason,
			Err:     entry.err,
		}
		if !item.Skipped && item.Err == nil {
			putOpts := PutOptions{}
			if opts.Progress != nil {
				opts.Progress.SetCaption(entry.Source + ": ")
				putOpts.Progress = opts.Progress
			}
			n, err := clnt.Put(ctx, entry.Key, entry.Source, putOpts)
			if err != nil {
				item.Err = err.Trace(entry.Source, entry.Key)
			} else {
				item.Size = n
			}
		}
		if item.Err != nil {
			errorIf(item.Err, "Unable to upload `%s` to `%s`.", item.Source, item.Key)
		}
		result.add(item)
		if opts.Notify != nil {
			opts.Notify(item)
		}
	}
	return result.finish(), nil
}
