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
	"os"
	"path/filepath"

	"github.com/bucketctl/bucketctl/pkg/probe"
	"github.com/fatih/color"
	"github.com/minio/cli"
	json "github.com/minio/colorjson"
	"github.com/minio/pkg/v3/console"
)

var uploadFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "destination, d",
		Usage: "object key for a file, or key prefix for a folder",
	},
	cli.BoolFlag{
		Name:  "follow-symlinks, L",
		Usage: "upload symbolic links to files with the content of their target",
	},
}

// Upload a file or a folder.
var uploadCmd = cli.Command{
	Name:   "upload",
	Usage:  "upload a file or a folder",
	Action: mainUpload,
	Before: setGlobalsFromContext,
	Flags:  append(uploadFlags, globalFlags...),
	CustomHelpTemplate: `NAME:
  {{.HelpName}} - {{.Usage}}

USAGE:
  {{.HelpName}} [FLAGS] SOURCE
{{if .VisibleFlags}}
FLAGS:
  {{range .VisibleFlags}}{{.}}
  {{end}}{{end}}
EXAMPLES:
  1. Upload a file as an object named after the file.
     $ {{.HelpName}} report.pdf

  2. Upload a file under a different key.
     $ {{.HelpName}} report.pdf --destination reports/2024/q1.pdf

  3. Upload a folder below the prefix 'backups/site'.
     $ {{.HelpName}} ./site --destination backups/site

  4. Upload a folder and follow symbolic links to files.
     $ {{.HelpName}} --follow-symlinks ./site
`,
}

// uploadMessage container for file upload messages
type uploadMessage struct {
	Status  string `json:"status"`
	Source  string `json:"source"`
	Key     string `json:"key"`
	Bucket  string `json:"bucket"`
	Size    int64  `json:"size"`
	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// String colorized upload message
func (u uploadMessage) String() string {
	if u.Skipped {
		return console.Colorize("Skipped", fmt.Sprintf("Skipped `%s` (%s).", u.Source, u.Reason))
	}
	return console.Colorize("Upload", fmt.Sprintf("`%s` -> `%s/%s`", u.Source, u.Bucket, u.Key))
}

// JSON jsonified upload message
func (u uploadMessage) JSON() string {
	u.Status = "success"
	uploadMessageBytes, e := json.MarshalIndent(u, "", " ")
	fatalIf(probe.NewError(e), "Unable to marshal into JSON.")
	return string(uploadMessageBytes)
}

// checkUploadSyntax - validate all the passed arguments
func checkUploadSyntax(ctx *cli.Context) {
	if len(ctx.Args()) != 1 {
		cli.ShowCommandHelpAndExit(ctx, "upload", globalErrorExitStatus) // last argument is exit code
	}
}

// mainUpload is the entry point for upload command.
func mainUpload(cliCtx *cli.Context) error {
	ctx := globalContext
	defer globalCancel()

	checkUploadSyntax(cliCtx)
	setUploadColors()

	source := cliCtx.Args().First()
	destination := cliCtx.String("destination")

	st, e := os.Stat(source)
	if e != nil || (!st.IsDir() && !st.Mode().IsRegular()) {
		fatalIf(errInvalidSource(source), "Unable to upload.")
	}

	clnt := mustGetClient(ctx)
	bucket := bucketOf(clnt)

	if !st.IsDir() {
		key := destination
		if key == "" {
			key = filepath.Base(source)
		}
		n, err := putFile(ctx, clnt, source, key)
		recordOperation("upload", n, err)
		flushMetrics()
		fatalIf(err.Trace(source), "Unable to upload `%s` to bucket `%s`.", source, bucket)
		printItemMsg(uploadMessage{Source: source, Key: key, Bucket: bucket, Size: n})
		return nil
	}

	opts := treeUploadOptions{FollowSymlinks: cliCtx.Bool("follow-symlinks")}
	var bar *progressBar
	if showProgress() {
		bar = newProgressBar(0)
		opts.Progress = bar
	} else if !globalQuiet {
		opts.Notify = func(item BatchItem) {
			if item.Err == nil {
				printItemMsg(uploadMessage{
					Source: item.Source, Key: item.Key, Bucket: bucket, Size: item.Size,
					Skipped: item.Skipped, Reason: item.Reason,
				})
			}
		}
	}

	result, err := uploadTree(ctx, clnt, source, destination, opts)
	if bar != nil {
		bar.Finish()
	}
	recordBatch(result)
	flushMetrics()
	fatalIf(err.Trace(source), "Unable to upload folder `%s` to bucket `%s`.", source, bucket)

	printBatchSummary(result)
	return batchExitStatus(result)
}

func setUploadColors() {
	console.SetColor("Upload", color.New(color.FgGreen))
	console.SetColor("Skipped", color.New(color.FgYellow))
	setBatchColors()
}
