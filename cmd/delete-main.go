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

// delete specific flags.
var deleteFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "recursive, r",
		Usage: "remove every object whose key starts with PREFIX",
	},
	cli.BoolFlag{
		Name:  "force",
		Usage: "allow a recursive remove with an empty prefix, i.e. the whole bucket",
	},
	cli.BoolFlag{
		Name:  "fake",
		Usage: "perform a fake remove operation",
	},
	cli.StringFlag{
		Name:   "destination",
		Usage:  "deprecated, any value selects single object removal",
		Hidden: true,
	},
}

// Remove an object or a prefix.
var deleteCmd = cli.Command{
	Name:    "delete",
	Aliases: []string{"rm"},
	Usage:   "remove an object or every object under a prefix",
	Action:  mainDelete,
	Before:  setGlobalsFromContext,
	Flags:   append(deleteFlags, globalFlags...),
	CustomHelpTemplate: `NAME:
  {{.HelpName}} - {{.Usage}}

USAGE:
  {{.HelpName}} [FLAGS] KEY
  {{.HelpName}} [FLAGS] --recursive PREFIX
{{if .VisibleFlags}}
FLAGS:
  {{range .VisibleFlags}}{{.}}
  {{end}}{{end}}
EXAMPLES:
  1. Remove a single object. Folders holding objects need --recursive.
     $ {{.HelpName}} reports/2024/q1.pdf

  2. Remove every object below 'backups/site/'.
     $ {{.HelpName}} --recursive backups/site/

  3. Show what would be removed below 'backups/' without removing anything.
     $ {{.HelpName}} --recursive --fake backups/

  4. Remove every object of the bucket.
     $ {{.HelpName}} --recursive --force ""
`,
}

// Structured message depending on the type of console.
type rmMessage struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Bucket string `json:"bucket"`
	Size   int64  `json:"size,omitempty"`
	DryRun bool   `json:"dryRun,omitempty"`
}

// Colorized message for console printing.
func (r rmMessage) String() string {
	if r.DryRun {
		return console.Colorize("Remove", fmt.Sprintf("Would remove `%s/%s`.", r.Bucket, r.Key))
	}
	return console.Colorize("Remove", fmt.Sprintf("Removed `%s/%s`.", r.Bucket, r.Key))
}

// JSON'ified message for scripting.
func (r rmMessage) JSON() string {
	r.Status = "success"
	msgBytes, e := json.MarshalIndent(r, "", " ")
	fatalIf(probe.NewError(e), "Unable to marshal into JSON.")
	return string(msgBytes)
}

// Validate command line arguments.
func checkDeleteSyntax(ctx *cli.Context) (target string, recursive bool) {
	recursive = ctx.Bool("recursive")
	if ctx.IsSet("destination") {
		// Older scripts selected single object removal with --destination.
		if recursive {
			fatalIf(errInvalidArgument().Trace(), "--destination cannot be combined with --recursive.")
		}
		if !globalQuiet && !globalJSON {
			console.Errorln("--destination is deprecated for delete, the object is removed on its own.")
		}
	}

	if len(ctx.Args()) > 1 || (len(ctx.Args()) == 0 && !recursive) {
		cli.ShowCommandHelpAndExit(ctx, "delete", globalErrorExitStatus) // last argument is exit code
	}
	target = ctx.Args().First()
	fatalIf(validateDeleteTarget(target, recursive, ctx.Bool("force")).Trace(target), "Unable to remove.")
	return target, recursive
}

// validateDeleteTarget refuses an empty key, and an empty prefix unless
// forced since it matches every object of the bucket.
func validateDeleteTarget(target string, recursive, force bool) *probe.Error {
	if target != "" {
		return nil
	}
	if !recursive {
		return errInvalidArgument()
	}
	if !force {
		return errEmptyPrefixRequiresForce()
	}
	return nil
}

// mainDelete is the entry point for delete command.
func mainDelete(cliCtx *cli.Context) error {
	ctx := globalContext
	defer globalCancel()

	target, recursive := checkDeleteSyntax(cliCtx)
	console.SetColor("Remove", color.New(color.FgGreen, color.Bold))
	setBatchColors()
	isFake := cliCtx.Bool("fake")

	clnt := mustGetClient(ctx)
	bucket := bucketOf(clnt)

	if !recursive {
		// A bare delete of a folder would succeed without removing anything
		// below it. --destination keeps the old single object behaviour.
		if !cliCtx.IsSet("destination") {
			count, err := folderObjects(ctx, clnt, target)
			fatalIf(err.Trace(target), "Unable to remove `%s` from bucket `%s`.", target, bucket)
			if count > 0 {
				fatalIf(errFolderRequiresRecursive(target, count), "Unable to remove `%s`.", target)
			}
		}

		var err *probe.Error
		if !isFake {
			err = clnt.Remove(ctx, target)
		}
		recordOperation("delete", 0, err)
		flushMetrics()
		fatalIf(err.Trace(target), "Unable to remove `%s` from bucket `%s`.", target, bucket)
		printItemMsg(rmMessage{Key: target, Bucket: bucket, DryRun: isFake})
		return nil
	}

	opts := prefixDeleteOptions{DryRun: isFake}
	if !globalQuiet {
		opts.Notify = func(item BatchItem) {
			if item.Err == nil {
				printItemMsg(rmMessage{Key: item.Key, Bucket: bucket, Size: item.Size, DryRun: isFake})
			}
		}
	}
	result, err := deletePrefix(ctx, clnt, target, opts)
	recordBatch(result)
	flushMetrics()
	fatalIf(err.Trace(target), "Unable to remove prefix `%s` from bucket `%s`.", target, bucket)

	if len(result.Items) == 0 {
		printMsg(emptyListMessage{Bucket: bucket, Prefix: target})
		return nil
	}
	printBatchSummary(result)
	return batchExitStatus(result)
}
