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
	"sort"
	"strings"

	"github.com/bucketctl/bucketctl/pkg/probe"
	"github.com/minio/cli"
)

// Help template for bucketctl
var appHelpTemplate = `NAME:
  {{.Name}} - {{.Usage}}

USAGE:
  {{.Name}} {{if .VisibleFlags}}[FLAGS] {{end}}COMMAND{{if .VisibleFlags}} [COMMAND FLAGS | -h]{{end}} [ARGUMENTS...]

COMMANDS:
  {{range .VisibleCommands}}{{join .Names ", "}}{{ "\t" }}{{.Usage}}
  {{end}}{{if .VisibleFlags}}
GLOBAL FLAGS:
  {{range .VisibleFlags}}{{.}}
  {{end}}{{end}}
ENVIRONMENT VARIABLES:
  MINIO_ENDPOINT     host[:port] or URL of the object store
  MINIO_ACCESS_KEY   access key
  MINIO_SECRET_KEY   secret key
  MINIO_BUCKET_NAME  bucket every command operates on
  MINIO_REGION       region used when the bucket is created
  MINIO_SECURE       use TLS, defaults to true
  MINIO_API_LOOKUP   bucket lookup style [auto, dns, path]

VERSION:
  ` + Version + `
`

// Main starts bucketctl application
func Main(args []string) error {
	probe.Init() // Set project's root source path.
	probe.SetAppInfo("Release-Tag", ReleaseTag)
	probe.SetAppInfo("Commit", shortCommitID())

	// Fetch terminal size, used to size progress bar captions.
	globalTermWidth = terminalWidth()

	app := registerApp(globalAppName)
	app.Before = registerBefore
	return app.Run(args)
}

// Function invoked when invalid command is passed.
func commandNotFound(_ *cli.Context, command string) {
	fatalIf(errDummy().Trace(), "%s", commandNotFoundMessage(command))
}

func commandNotFoundMessage(command string) string {
	msg := fmt.Sprintf("`%s` is not a %s command. See `%s --help`.", command, globalAppName, globalAppName)
	if closest := findClosestCommands(command); len(closest) > 0 {
		msg += "\n\nDid you mean one of these?\n"
		for _, cmd := range closest {
			msg += fmt.Sprintf("        `%s`\n", cmd)
		}
	}
	return msg
}

// findClosestCommands returns registered commands sharing a prefix with command.
func findClosestCommands(command string) []string {
	var closestCommands []string
	for _, cmd := range appCmds {
		for _, name := range cmd.Names() {
			if strings.HasPrefix(name, command) || strings.HasPrefix(command, name) {
				closestCommands = append(closestCommands, cmd.Name)
				break
			}
		}
	}
	sort.Strings(closestCommands)
	return closestCommands
}

func registerBefore(ctx *cli.Context) error {
	// Set global flags.
	return setGlobalsFromContext(ctx)
}

var appCmds = []cli.Command{
	uploadCmd,   // Upload a file or a folder.
	downloadCmd, // Download an object.
	listCmd,     // List objects under a prefix.
	deleteCmd,   // Remove an object or a prefix.
	checkCmd,    // Check connectivity and bucket access.
	versionCmd,  // Print version.
}

func registerApp(name string) *cli.App {
	cli.HelpFlag = cli.BoolFlag{
		Name:  "help, h",
		Usage: "show help",
	}

	app := cli.NewApp()
	app.Name = name
	app.Action = func(ctx *cli.Context) error {
		if ctx.Args().Present() {
			commandNotFound(ctx, ctx.Args().First())
			return exitStatus(globalErrorExitStatus)
		}
		cli.ShowAppHelp(ctx)
		return exitStatus(globalErrorExitStatus)
	}

	app.HideHelpCommand = true
	app.Usage = "Upload, download, list and delete files and folders in an object storage bucket."
	app.Commands = appCmds
	app.Author = "bucketctl authors"
	app.Version = Version
	app.Flags = globalFlags
	app.CustomAppHelpTemplate = appHelpTemplate
	app.CommandNotFound = commandNotFound // handler function declared above.

	return app
}
