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
	"fmt"

	"github.com/bucketctl/bucketctl/pkg/probe"
	"github.com/fatih/color"
	"github.com/minio/cli"
	json "github.com/minio/colorjson"
	"github.com/minio/pkg/v3/console"
)

// Check connectivity and bucket access.
var checkCmd = cli.Command{
	Name:   "check",
	Usage:  "check the connection and list the bucket contents",
	Action: mainCheck,
	Before: setGlobalsFromContext,
	Flags:  globalFlags,
	CustomHelpTemplate: `NAME:
  {{.HelpName}} - {{.Usage}}

USAGE:
  {{.HelpName}} [FLAGS]
{{if .VisibleFlags}}
FLAGS:
  {{range .VisibleFlags}}{{.}}
  {{end}}{{end}}
EXAMPLES:
  1. Verify the configured endpoint, credentials and bucket.
     $ {{.HelpName}}
`,
}

// checkEntryMessage is one line of the bucket contents.
type checkEntryMessage struct {
	Status string `json:"status"`
	Type   string `json:"type"`
	Key    string `json:"key"`
}

func (c checkEntryMessage) String() string {
	if c.Type == "folder" {
		return console.Colorize("Dir", "Folder: "+c.Key)
	}
	return console.Colorize("File", "Object: "+c.Key)
}

func (c checkEntryMessage) JSON() string {
	c.Status = "success"
	msgBytes, e := json.MarshalIndent(c, "", " ")
	fatalIf(probe.NewError(e), "Unable to marshal into JSON.")
	return string(msgBytes)
}

// checkMessage summarizes a successful check.
type checkMessage struct {
	Status   string `json:"status"`
	Endpoint string `json:"endpoint"`
	Bucket   string `json:"bucket"`
	Objects  int    `json:"objects"`
}

func (c checkMessage) String() string {
	return console.Colorize("Check", fmt.Sprintf("Connection successful. Bucket `%s` at `%s` holds %d object(s).", c.Bucket, c.Endpoint, c.Objects))
}

func (c checkMessage) JSON() string {
	c.Status = "success"
	msgBytes, e := json.MarshalIndent(c, "", " ")
	fatalIf(probe.NewError(e), "Unable to marshal into JSON.")
	return string(msgBytes)
}

// mainCheck is the entry point for check command.
func mainCheck(cliCtx *cli.Context) error {
	ctx := globalContext
	defer globalCancel()

	if cliCtx.Args().Present() {
		cli.ShowCommandHelpAndExit(cliCtx, "check", globalErrorExitStatus) // last argument is exit code
	}
	console.SetColor("Check", color.New(color.FgGreen, color.Bold))
	console.SetColor("Dir", color.New(color.FgCyan, color.Bold))
	console.SetColor("File", color.New(color.Bold))

	clnt := mustGetClient(ctx)
	bucket := bucketOf(clnt)

	var count int
	var err *probe.Error
	for content := range clnt.List(ctx, "", true) {
		if content.Err != nil {
			err = content.Err.Trace(bucket)
			break
		}
		count++
		entry := checkEntryMessage{Type: "file", Key: content.Key}
		if content.IsDir {
			entry.Type = "folder"
		}
		printItemMsg(entry)
	}
	recordOperation("check", 0, err)
	flushMetrics()
	fatalIf(err, "Failed to access bucket `%s`.", bucket)

	printMsg(checkMessage{Endpoint: clnt.GetURL(), Bucket: bucket, Objects: count})
	return nil
}
