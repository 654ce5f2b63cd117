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

/// Collection of standard errors

// GenericBucketError - generic bucket operations error
type GenericBucketError struct {
	Bucket string
}

// BucketDoesNotExist - bucket does not exist.
type BucketDoesNotExist GenericBucketError

func (e BucketDoesNotExist) Error() string {
	return "Bucket `" + e.Bucket + "` does not exist."
}

// BucketNameEmpty - bucket name empty (http://goo.gl/wJlzDz)
type BucketNameEmpty struct{}

func (e BucketNameEmpty) Error() string {
	return "Bucket name cannot be empty."
}

// BucketInvalid - bucket name invalid.
type BucketInvalid struct {
	Bucket string
}

func (e BucketInvalid) Error() string {
	return "Bucket name " + e.Bucket + " not valid."
}

// ObjectNameEmpty - object name empty.
type ObjectNameEmpty struct{}

func (e ObjectNameEmpty) Error() string {
	return "Object name cannot be empty."
}

// ObjectMissing - object key passed is not found.
type ObjectMissing struct {
	Bucket string
	Key    string
}

func (e ObjectMissing) Error() string {
	return "Object `" + e.Key + "` does not exist in bucket `" + e.Bucket + "`."
}

// PathInsufficientPermission (EPERM) - permission denied.
type PathInsufficientPermission struct {
	Bucket string
	Key    string
}

func (e PathInsufficientPermission) Error() string {
	if e.Key == "" {
		return "Insufficient permissions to access bucket `" + e.Bucket + "`."
	}
	return "Insufficient permissions to access `" + e.Key + "` in bucket `" + e.Bucket + "`."
}

// BrokenSymlink (ENOTENT) - file has broken symlink.
type BrokenSymlink struct {
	Path string
}

func (e BrokenSymlink) Error() string {
	return "Symbolic link `" + e.Path + "` points to a missing target."
}

// StoreError - any other failure reported by the object store or the
// transport in front of it.
type StoreError struct {
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e StoreError) Error() string {
	target := "bucket `" + e.Bucket + "`"
	if e.Key != "" {
		target = "`" + e.Key + "` in " + target
	}
	return "Unable to " + e.Op + " " + target + ": " + e.Err.Error()
}

func (e StoreError) Unwrap() error {
	return e.Err
}
