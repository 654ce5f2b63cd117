//go:build ignore

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

// gen-ldflags prints the linker flags stamping bucketctl's build
// constants, use it as
//
//	go build -ldflags "$(go run buildscripts/gen-ldflags.go)"
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const constantsPkg = "github.com/bucketctl/bucketctl/cmd"

func genLDFlags(version string) string {
	releaseTag := releaseTag(version)
	flags := []string{
		"-s", "-w",
		"-X " + constantsPkg + ".Version=" + version,
		"-X " + constantsPkg + ".ReleaseTag=" + releaseTag,
		"-X " + constantsPkg + ".CommitID=" + git("log", "--format=%H", "-n1"),
	}
	return strings.Join(flags, " ")
}

// releaseTag turns an RFC3339 version into PREFIX.%Y-%m-%dT%H-%M-%SZ.
func releaseTag(version string) string {
	prefix := "DEVELOPMENT"
	if p := os.Getenv("BUCKETCTL_RELEASE"); p != "" {
		prefix = p
	}
	t, e := time.Parse(time.RFC3339, version)
	if e != nil {
		fmt.Fprintln(os.Stderr, "Invalid version", version, e)
		os.Exit(1)
	}
	return prefix + "." + t.UTC().Format("2006-01-02T15-04-05Z")
}

func git(args ...string) string {
	out, e := exec.Command("git", args...).Output()
	if e != nil {
		fmt.Fprintln(os.Stderr, "Error running git", strings.Join(args, " "), e)
		os.Exit(1)
	}
	return strings.TrimSpace(string(out))
}

func main() {
	version := time.Now().UTC().Format(time.RFC3339)
	if len(os.Args) > 1 {
		version = os.Args[1]
	} else if commitTime := git("log", "--format=%cI", "-n1"); commitTime != "" {
		if t, e := time.Parse(time.RFC3339, commitTime); e == nil {
			version = t.UTC().Format(time.RFC3339)
		}
	}
	fmt.Println(genLDFlags(version))
}
