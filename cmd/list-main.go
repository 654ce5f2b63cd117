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
	"strings"
	"time"

	"github.com/bucketctl/bucketctl/pkg/probe"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/minio/cli"
	json "github.com/minio/colorjson"
	"github.com/minio/pkg/v3/console"
)

// List objects under a prefix.
var listCmd = cli.Command{
	Name:   "list",
	Usage:  "list objects under a prefix",
	Action: mainList,
	Before: setGlobalsFromContext,
	Flags:  globalFlags,
	CustomHelpTemplate: `NAME:
  {{.HelpName}} - {{.Usage}}

USAGE:
  {{.HelpName}} [FLAGS] [PREFIX]
{{if .VisibleFlags}}
FLAGS:
  {{range .VisibleFlags}}{{.}}
  {{end}}{{end}}
EXAMPLES:
  1. List every object of the bucket.
     $ {{.HelpName}}

  2. List the objects below 'backups/site/'.
     $ {{.HelpName}} backups/site/
`,
}

// printDate - human friendly formatted date.
const printDate = "2006-01-02 15:04:05 MST"

// contentMessage container for content message structure.
type contentMessage struct {
	Status   string    `json:"status"`
	Type     string    `json:"type"`
	Time     time.Time `json:"lastModified"`
	Size     int64     `json:"size"`
	Key      string    `json:"key"`
	ETag     string    `json:"etag,omitempty"`
	Filetype string    `json:"-"`
}

// String colorized string message.
func (c contentMessage) String() string {
	message := console.Colorize("Time", fmt.Sprintf("[%s]", c.Time.Format(printDate)))
	message += console.Colorize("Size", fmt.Sprintf("%7s", strings.Join(strings.Fields(humanize.IBytes(uint64(c.Size))), "")))
	fileDesc := console.Colorize("File", " "+c.Key)
	if c.Type == "folder" {
		fileDesc = console.Colorize("Dir", " "+c.Key)
	}
	return message + fileDesc
}

// JSON jsonified content message.
func (c contentMessage) JSON() string {
	c.Status = "success"
	jsonMessageBytes, e := json.MarshalIndent(c, "", " ")
	fatalIf(probe.NewError(e), "Unable to marshal into JSON.")
	return string(jsonMessageBytes)
}

func parseContent(c *ClientContent) contentMessage {
	content := contentMessage{
		Type: "file",
		Time: c.Time.Local(),
		Size: c.Size,
		Key:  c.Key,
		ETag: strings.TrimPrefix(strings.TrimSuffix(c.ETag, "\""), "\""),
	}
	if c.IsDir {
		content.Type = "folder"
	}
	return content
}

// emptyListMessage is printed when nothing matched a prefix.
type emptyListMessage struct {
	Status string `json:"status"`
	Bucket string `json:"bucket"`
	Prefix string `json:"prefix"`
	Count  int    `json:"count"`
}

func (m emptyListMessage) String() string {
	return console.Colorize("Empty", fmt.Sprintf("No objects found with prefix `%s` in bucket `%s`.", m.Prefix, m.Bucket))
}

func (m emptyListMessage) JSON() string {
	m.Status = "success"
	msgBytes, e := json.MarshalIndent(m, "", " ")
	fatalIf(probe.NewError(e), "Unable to marshal into JSON.")
	return string(msgBytes)
}

func setListColors() {
	console.SetColor("File", color.New(color.Bold))
	console.SetColor("Dir", color.New(color.FgCyan, color.Bold))
	console.SetColor("Size", color.New(color.FgYellow))
	console.SetColor("Time", color.New(color.FgGreen))
	console.SetColor("Empty", color.New(color.FgYellow))
}

// mainList is the entry point for list command.
func mainList(cliCtx *cli.Context) error {
	ctx := globalContext
	defer globalCancel()

	if len(cliCtx.Args()) > 1 {
		cli.ShowCommandHelpAndExit(cliCtx, "list", globalErrorExitStatus) // last argument is exit code
	}
	setListColors()

	prefix := cliCtx.Args().First()
	clnt := mustGetClient(ctx)

	count, err := listContents(ctx, clnt, prefix)
	recordOperation("list", 0, err)
	flushMetrics()
	fatalIf(err.Trace(prefix), "Unable to list prefix `%s` in bucket `%s`.", prefix, bucketOf(clnt))

	if count == 0 {
		printMsg(emptyListMessage{Bucket: bucketOf(clnt), Prefix: prefix})
	}
	return nil
}

// listContents prints every object under prefix and returns how many
// were printed.
func listContents(ctx context.Context, clnt Client, prefix string) (int, *probe.Error) {
	var count int
	for content := range clnt.List(ctx, prefix, true) {
		if content.Err != nil {
			return count, content.Err.Trace(prefix)
		}
		printMsg(parseContent(content))
		count++
	}
	return count, nil
}
