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

	"github.com/bucketctl/bucketctl/pkg/probe"
	"github.com/minio/cli"
	checkv1 "gopkg.in/check.v1"
)

func (s *TestSuite) TestErrorToExitStatus(c *checkv1.C) {
	testCases := []struct {
		err    *probe.Error
		status int
	}{
		{nil, 0},
		{errInvalidArgument(), globalErrorExitStatus},
		{probe.NewError(errors.New("unexpected")), globalErrorExitStatus},
		{errConfig("%s is not set.", envBucket), globalConfigErrorExitStatus},
		{errInvalidSource("/nowhere"), globalInvalidSourceExitStatus},
		{errUnreadableSource("/nowhere", errors.New("permission denied")), globalInvalidSourceExitStatus},
		{probe.NewError(StoreError{Op: "upload", Bucket: "b", Key: "k", Err: errors.New("boom")}), globalStoreErrorExitStatus},
		{probe.NewError(ObjectMissing{Bucket: "b", Key: "k"}), globalStoreErrorExitStatus},
		{probe.NewError(BucketDoesNotExist{Bucket: "b"}), globalStoreErrorExitStatus},
		{probe.NewError(PathInsufficientPermission{Bucket: "b"}), globalStoreErrorExitStatus},
		{probe.NewError(BrokenSymlink{Path: "/x"}), globalErrorExitStatus},
	}
	for i, tc := range testCases {
		c.Assert(errorToExitStatus(tc.err), checkv1.Equals, tc.status, checkv1.Commentf("case %d", i))
	}
}

func (s *TestSuite) TestFatalIfExitStatus(c *checkv1.C) {
	var status int
	saved := osExit
	osExit = func(code int) { status = code }
	defer func() { osExit = saved }()

	fatalIf(nil, "never printed")
	c.Assert(status, checkv1.Equals, 0)

	fatalIf(errInvalidSource("/nowhere"), "Unable to upload.")
	c.Assert(status, checkv1.Equals, globalInvalidSourceExitStatus)

	fatalIf(errConfig("bad"), "Unable to load configuration.")
	c.Assert(status, checkv1.Equals, globalConfigErrorExitStatus)
}

func (s *TestSuite) TestStoreErrorUnwrap(c *checkv1.C) {
	cause := errors.New("connection reset")
	err := StoreError{Op: "list", Bucket: "b", Err: cause}
	c.Assert(errors.Is(err, cause), checkv1.Equals, true)
	c.Assert(err.Error(), checkv1.Equals, "Unable to list bucket `b`: connection reset")

	err.Key = "k"
	c.Assert(err.Error(), checkv1.Equals, "Unable to list `k` in bucket `b`: connection reset")
}

func (s *TestSuite) TestUserErrorCanceled(c *checkv1.C) {
	err := probe.NewError(context.Canceled)
	c.Assert(userError(err).Error(), checkv1.Equals, "Canceling upon user request")
}

func (s *TestSuite) TestValidateDeleteTarget(c *checkv1.C) {
	c.Assert(validateDeleteTarget("key", false, false), checkv1.IsNil)
	c.Assert(validateDeleteTarget("prefix/", true, false), checkv1.IsNil)
	c.Assert(validateDeleteTarget("", true, true), checkv1.IsNil)

	err := validateDeleteTarget("", false, false)
	c.Assert(err, checkv1.NotNil)
	_, ok := err.ToGoError().(invalidArgumentErr)
	c.Assert(ok, checkv1.Equals, true)

	err = validateDeleteTarget("", true, false)
	c.Assert(err, checkv1.NotNil)
	_, ok = err.ToGoError().(emptyPrefixErr)
	c.Assert(ok, checkv1.Equals, true)
}

func (s *TestSuite) TestBatchExitStatus(c *checkv1.C) {
	r := newBatchResult("upload", "b", "p")
	r.add(BatchItem{Key: "p/ok"})
	c.Assert(batchExitStatus(r), checkv1.IsNil)

	r.add(BatchItem{Key: "p/bad", Err: probe.NewError(errors.New("boom"))})
	e := batchExitStatus(r)
	c.Assert(e, checkv1.NotNil)
	exitErr, ok := e.(cli.ExitCoder)
	c.Assert(ok, checkv1.Equals, true)
	c.Assert(exitErr.ExitCode(), checkv1.Equals, globalPartialFailureExitStatus)
}
