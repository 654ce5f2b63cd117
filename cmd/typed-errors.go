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
	"fmt"

	"github.com/bucketctl/bucketctl/pkg/probe"
)

type dummyErr struct{ error }

var errDummy = func() *probe.Error {
	msg := ""
	return probe.NewError(dummyErr{errors.New(msg)}).Untrace()
}

type invalidArgumentErr struct{ error }

var errInvalidArgument = func() *probe.Error {
	msg := "Invalid arguments provided, please refer " + "`" + globalAppName + " <command> -h` for relevant documentation."
	return probe.NewError(invalidArgumentErr{errors.New(msg)}).Untrace()
}

// invalidSourceErr is raised when an upload source does not exist, cannot be
// read, or is neither a regular file nor a folder.
type invalidSourceErr struct{ error }

func (e invalidSourceErr) Unwrap() error { return errors.Unwrap(e.error) }

var errInvalidSource = func(path string) *probe.Error {
	msg := "Invalid source `" + path + "`, it must be an existing file or folder."
	return probe.NewError(invalidSourceErr{errors.New(msg)}).Untrace()
}

var errUnreadableSource = func(path string, e error) *probe.Error {
	return probe.NewError(invalidSourceErr{fmt.Errorf("Unable to read source `%s`: %w", path, e)}).Untrace()
}

// configErr is raised for a missing, unreadable or invalid configuration.
type configErr struct{ error }

func (e configErr) Unwrap() error { return errors.Unwrap(e.error) }

var errConfig = func(format string, args ...interface{}) *probe.Error {
	return probe.NewError(configErr{fmt.Errorf(format, args...)}).Untrace()
}

type emptyPrefixErr struct{ error }

var errEmptyPrefixRequiresForce = func() *probe.Error {
	msg := "Removing every object in the bucket requires --force option. This operation is *IRREVERSIBLE*. Please review carefully before performing this *DANGEROUS* operation."
	return probe.NewError(emptyPrefixErr{errors.New(msg)}).Untrace()
}

type folderRequiresRecursiveErr struct{ error }

var errFolderRequiresRecursive = func(target string, count int) *probe.Error {
	msg := fmt.Sprintf("`%s` is a folder holding %d object(s). Removing it requires --recursive option.", target, count)
	return probe.NewError(folderRequiresRecursiveErr{errors.New(msg)}).Untrace()
}
