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

import "github.com/minio/cli"

// Collection of bucketctl flags currently supported
var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "config-file",
		Usage:  "path to the YAML configuration file (default: ~/" + globalConfigDir + "/" + globalConfigFile + ")",
		EnvVar: "BUCKETCTL_CONFIG_FILE",
	},
	cli.StringFlag{
		Name:  "env-file",
		Usage: "path to a dotenv file with MINIO_* variables (default: ./" + globalEnvFile + ")",
	},
	cli.BoolFlag{
		Name:  "quiet, q",
		Usage: "disable progress bar display",
	},
	cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable color theme",
	},
	cli.BoolFlag{
		Name:  "json",
		Usage: "enable JSON lines formatted output",
	},
	cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug output",
	},
	cli.BoolFlag{
		Name:  "insecure",
		Usage: "disable SSL certificate verification",
	},
	cli.StringFlag{
		Name:  "limit-upload",
		Usage: "limits uploads to a maximum rate in KiB/s, MiB/s, GiB/s. (default: unlimited)",
	},
	cli.StringFlag{
		Name:  "limit-download",
		Usage: "limits downloads to a maximum rate in KiB/s, MiB/s, GiB/s. (default: unlimited)",
	},
	cli.StringFlag{
		Name:  "metrics-file",
		Usage: "write operation counters to this file in Prometheus text format",
	},
}
