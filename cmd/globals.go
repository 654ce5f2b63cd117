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

// Package cmd contains all the global variables and constants. ONLY TO BE ACCESSED VIA GET/SET FUNCTIONS.
package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/minio/cli"
	"github.com/minio/pkg/v3/console"
)

const (
	globalAppName = "bucketctl"

	// Default configuration folder under the user's home.
	globalConfigDir  = ".bucketctl"
	globalConfigFile = "config.yml"

	// Default dotenv file, relative to the working directory.
	globalEnvFile = ".env"

	// Suffix of partially downloaded files.
	globalPartSuffix = ".part." + globalAppName

	// Global error exit status.
	globalErrorExitStatus = 1

	// Configuration could not be resolved or is invalid.
	globalConfigErrorExitStatus = 2

	// Upload source is missing or is neither a file nor a folder.
	globalInvalidSourceExitStatus = 3

	// The object store refused or failed an operation.
	globalStoreErrorExitStatus = 4

	// A batch finished but some of its items failed.
	globalPartialFailureExitStatus = 5
)

var (
	globalQuiet    = false // Quiet flag set via command line
	globalJSON     = false // Json flag set via command line
	globalJSONLine = false // Print json as single line.
	globalDebug    = false // Debug flag set via command line
	globalNoColor  = false // No Color flag set via command line
	globalInsecure = false // Insecure flag set via command line

	globalConfigFilePath  string // --config-file, empty means default location
	globalEnvFilePath     string // --env-file, empty means ./.env
	globalMetricsFilePath string // --metrics-file, empty disables metrics

	globalLimitUpload   uint64
	globalLimitDownload uint64

	globalContext, globalCancel = context.WithCancel(context.Background())
)

// Terminal width
var globalTermWidth int

// Set global states. NOTE: It is deliberately kept monolithic to ensure we dont miss out any flags.
func setGlobalsFromContext(ctx *cli.Context) error {
	quiet := ctx.IsSet("quiet") || ctx.GlobalIsSet("quiet")
	debug := ctx.IsSet("debug") || ctx.GlobalIsSet("debug")
	json := ctx.IsSet("json") || ctx.GlobalIsSet("json")
	noColor := ctx.IsSet("no-color") || ctx.GlobalIsSet("no-color")
	insecure := ctx.IsSet("insecure") || ctx.GlobalIsSet("insecure")

	globalQuiet = globalQuiet || quiet
	globalDebug = globalDebug || debug
	globalJSONLine = !isTerminal() && json
	globalJSON = globalJSON || json
	globalNoColor = globalNoColor || noColor || globalJSONLine
	globalInsecure = globalInsecure || insecure

	// Disable colorified messages if requested.
	if globalNoColor || globalQuiet {
		console.SetColorOff()
	}

	globalConfigFilePath = stringFlag(ctx, "config-file")
	globalEnvFilePath = stringFlag(ctx, "env-file")
	globalMetricsFilePath = stringFlag(ctx, "metrics-file")

	if limitUploadStr := stringFlag(ctx, "limit-upload"); limitUploadStr != "" {
		var e error
		globalLimitUpload, e = humanize.ParseBytes(limitUploadStr)
		if e != nil {
			return e
		}
	}

	if limitDownloadStr := stringFlag(ctx, "limit-download"); limitDownloadStr != "" {
		var e error
		globalLimitDownload, e = humanize.ParseBytes(limitDownloadStr)
		if e != nil {
			return e
		}
	}

	return nil
}

// stringFlag prefers the command level value over the global one.
func stringFlag(ctx *cli.Context, name string) string {
	if v := ctx.String(name); v != "" {
		return v
	}
	return ctx.GlobalString(name)
}
