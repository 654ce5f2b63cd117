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
	"bytes"
	"encoding/json"
	"strings"

	"github.com/minio/pkg/v3/console"
)

// message is implemented by every line bucketctl prints. String() is the
// colorized console form, JSON() the scripting form.
type message interface {
	JSON() string
	String() string
}

// printLine writes one rendered message, swapped in tests.
var printLine = func(s string) { console.Println(s) }

// printMsg prints msg as text, or as JSON with --json. JSON goes out one
// document per line when stdout is not a terminal so that batch output
// can be consumed line by line.
func printMsg(msg message) {
	if !globalJSON {
		printLine(msg.String())
		return
	}
	msgStr := msg.JSON()
	if globalJSONLine && strings.ContainsRune(msgStr, '\n') {
		var dst bytes.Buffer
		if e := json.Compact(&dst, []byte(msgStr)); e == nil {
			msgStr = dst.String()
		}
	}
	printLine(msgStr)
}

// printItemMsg prints a per-object or informational message. --quiet
// drops it.
func printItemMsg(msg message) {
	if globalQuiet {
		return
	}
	printMsg(msg)
}

// printBatchSummary prints the summary of a finished batch. --quiet
// keeps it only when some item failed.
func printBatchSummary(result *BatchResult) {
	if globalQuiet && result.Failed() == 0 {
		return
	}
	printMsg(newBatchMessage(result))
}
