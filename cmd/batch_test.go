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
	"errors"
	"strings"

	"github.com/bucketctl/bucketctl/pkg/probe"
	json "github.com/minio/colorjson"
	checkv1 "gopkg.in/check.v1"
)

func testBatchResult() *BatchResult {
	r := newBatchResult("upload", "bucket", "dest")
	r.add(BatchItem{Source: "/src/a", Key: "dest/a", Size: 10})
	r.add(BatchItem{Source: "/src/b", Key: "dest/b", Size: 5, Skipped: true, Reason: skipReasonSymlink})
	r.add(BatchItem{Source: "/src/c", Key: "dest/c", Size: 7, Err: probe.NewError(errors.New("connection reset"))})
	r.add(BatchItem{Source: "/src/d", Key: "dest/d", Size: 20})
	return r.finish()
}

func (s *TestSuite) TestBatchResultCounts(c *checkv1.C) {
	r := testBatchResult()
	c.Assert(r.ID, checkv1.Not(checkv1.Equals), "")
	c.Assert(r.Succeeded(), checkv1.Equals, 2)
	c.Assert(r.SkippedCount(), checkv1.Equals, 1)
	c.Assert(r.Failed(), checkv1.Equals, 1)
	c.Assert(r.Bytes(), checkv1.Equals, int64(30))
	c.Assert(r.EndTime.Before(r.StartTime), checkv1.Equals, false)

	// Every batch gets its own identifier.
	c.Assert(newBatchResult("upload", "bucket", "").ID, checkv1.Not(checkv1.Equals), r.ID)
}

func (s *TestSuite) TestBatchMessage(c *checkv1.C) {
	msg := newBatchMessage(testBatchResult())
	c.Assert(msg.Status, checkv1.Equals, "error")
	c.Assert(msg.Items, checkv1.HasLen, 4)
	c.Assert(msg.Items[1].Status, checkv1.Equals, "skipped")
	c.Assert(msg.Items[2].Status, checkv1.Equals, "failed")
	c.Assert(msg.Items[2].Error, checkv1.Equals, "connection reset")

	text := msg.String()
	c.Assert(strings.Contains(text, "Uploaded 2 object(s)"), checkv1.Equals, true)
	c.Assert(strings.Contains(text, "Skipped 1 item(s)."), checkv1.Equals, true)
	c.Assert(strings.Contains(text, "Failed 1 item(s):"), checkv1.Equals, true)
	c.Assert(strings.Contains(text, "dest/c"), checkv1.Equals, true)
	c.Assert(strings.Contains(text, "Batch ID: "+msg.ID), checkv1.Equals, true)

	var decoded batchMessage
	c.Assert(json.Unmarshal([]byte(msg.JSON()), &decoded), checkv1.IsNil)
	c.Assert(decoded.Failed, checkv1.Equals, 1)
	c.Assert(decoded.Bytes, checkv1.Equals, int64(30))
}

func (s *TestSuite) TestBatchMessageDryRun(c *checkv1.C) {
	r := newBatchResult("delete", "bucket", "logs/")
	r.DryRun = true
	r.add(BatchItem{Key: "logs/a"})
	msg := newBatchMessage(r.finish())
	c.Assert(msg.Status, checkv1.Equals, "success")
	c.Assert(strings.Contains(msg.String(), "Would delete 1 object(s) with prefix `logs/`"), checkv1.Equals, true)
}
