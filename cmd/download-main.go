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
	"path"

	"github.com/bucketctl/bucketctl/pkg/probe"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/minio/cli"
	json "github.com/minio/colorjson"
	"github.com/minio/pkg/v3/console"
)

var downloadFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "destination, d",
		Usage: "local file path, defaults to the last element of the key",
	},
}

// Download an object.
var downloadCmd = cli.Command{
	Name:   "download",
	Usage:  "download an object to a local file",
	Action: mainDownload,
	Before: setGlobalsFromContext,
	Flags:  append(downloadFlags, globalFlags...),
	CustomHelpTemplate: `NAME:
  {{.HelpName}} - {{.Usage}}

USAGE:
  {{.HelpName}} [FLAGS] KEY
{{if .VisibleFlags}}
FLAGS:
  {{range .VisibleFlags}}{{.}}
  {{end}}{{end}}
EXAMPLES:
  1. Download an object into the current folder.
     $ {{.HelpName}} reports/2024/q1.pdf

  2. Download an object to a given path, creating missing folders.
     $ {{.HelpName}} reports/2024/q1.pdf --destination ./archive/2024/q1.pdf
`,
}

// downloadMessage container for download messages
type downloadMessage struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Bucket string `json:"bucket"`
	Target string `json:"target"`
	Size   int64  `json:"size"`
}

func (d downloadMessage) String() string {
	return console.Colorize("Download", fmt.Sprintf("`%s/%s` -> `%s` (%s)", d.Bucket, d.Key, d.Target, humanize.IBytes(uint64(d.Size))))
}

func (d downloadMessage) JSON() string {
	d.Status = "success"
	msgBytes, e := json.MarshalIndent(d, "", " ")
	fatalIf(probe.NewError(e), "Unable to marshal into JSON.")
	return string(msgBytes)
}

func checkDownloadSyntax(ctx *cli.Context) {
	if len(ctx.Args()) != 1 || ctx.Args().First() == "" {
		cli.ShowCommandHelpAndExit(ctx, "download", globalErrorExitStatus) // last argument is exit code
	}
}

// mainDownload is the entry point for download command.
func mainDownload(cliCtx *cli.Context) error {
	ctx := globalContext
	defer globalCancel()

	checkDownloadSyntax(cliCtx)
	console.SetColor("Download", color.New(color.FgGreen))

	key := cliCtx.Args().First()
	target := cliCtx.String("destination")
	if target == "" {
		target = path.Base(key)
	}

	clnt := mustGetClient(ctx)
	bucket := bucketOf(clnt)

	n, err := getFile(ctx, clnt, key, target)
	recordOperation("download", n, err)
	flushMetrics()
	fatalIf(err.Trace(key), "Unable to download `%s` from bucket `%s`.", key, bucket)

	printItemMsg(downloadMessage{Key: key, Bucket: bucket, Target: target, Size: n})
	return nil
}
