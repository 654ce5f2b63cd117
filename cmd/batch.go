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
	"strings"
	"time"

	"github.com/bucketctl/bucketctl/pkg/probe"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	json "github.com/minio/colorjson"
	"github.com/minio/pkg/v3/console"
	"github.com/rs/xid"
)

// BatchItem is the outcome of one file or object of a batch.
type BatchItem struct {
	Source  string
	Key     string
	Size    int64
	Skipped bool
	Reason  string
	Err     *probe.Error
}

// BatchResult collects the per item outcomes of a folder upload or a
// prefix delete, in processing order.
type BatchResult struct {
	ID        string
	Op        string
	Bucket    string
	Prefix    string
	DryRun    bool
	StartTime time.Time
	EndTime   time.Time
	Items     []BatchItem
}

func newBatchResult(op, bucket, prefix string) *BatchResult {
	return &BatchResult{
		ID:        xid.New().String(),
		Op:        op,
		Bucket:    bucket,
		Prefix:    prefix,
		StartTime: UTCNow(),
	}
}

func (r *BatchResult) add(item BatchItem) {
	r.Items = append(r.Items, item)
}

func (r *BatchResult) finish() *BatchResult {
	r.EndTime = UTCNow()
	return r
}

// Succeeded returns the number of items that were neither skipped nor failed.
func (r *BatchResult) Succeeded() (n int) {
	for _, item := range r.Items {
		if !item.Skipped && item.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of failed items.
func (r *BatchResult) Failed() (n int) {
	for _, item := range r.Items {
		if item.Err != nil {
			n++
		}
	}
	return n
}

// SkippedCount returns the number of skipped items.
func (r *BatchResult) SkippedCount() (n int) {
	for _, item := range r.Items {
		if item.Skipped {
			n++
		}
	}
	return n
}

// Bytes returns the total size of the succeeded items.
func (r *BatchResult) Bytes() (n int64) {
	for _, item := range r.Items {
		if !item.Skipped && item.Err == nil {
			n += item.Size
		}
	}
	return n
}

type batchItemMessage struct {
	Status string `json:"status"`
	Source string `json:"source,omitempty"`
	Key    string `json:"key"`
	Size   int64  `json:"size"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

// batchMessage is the summary printed at the end of a batch.
type batchMessage struct {
	Status    string             `json:"status"`
	ID        string             `json:"id"`
	Operation string             `json:"operation"`
	Bucket    string             `json:"bucket"`
	Prefix    string             `json:"prefix"`
	DryRun    bool               `json:"dryRun,omitempty"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Skipped   int                `json:"skipped"`
	Bytes     int64              `json:"bytes"`
	Duration  string             `json:"duration"`
	Items     []batchItemMessage `json:"items"`
}

func newBatchMessage(r *BatchResult) batchMessage {
	msg := batchMessage{
		Status:    "success",
		ID:        r.ID,
		Operation: r.Op,
		Bucket:    r.Bucket,
		Prefix:    r.Prefix,
		DryRun:    r.DryRun,
		Succeeded: r.Succeeded(),
		Failed:    r.Failed(),
		Skipped:   r.SkippedCount(),
		Bytes:     r.Bytes(),
		Duration:  r.EndTime.Sub(r.StartTime).Round(time.Millisecond).String(),
		Items:     make([]batchItemMessage, 0, len(r.Items)),
	}
	if msg.Failed > 0 {
		msg.Status = "error"
	}
	for _, item := range r.Items {
		im := batchItemMessage{
			Status: "success",
			Source: item.Source,
			Key:    item.Key,
			Size:   item.Size,
			Reason: item.Reason,
		}
		switch {
		case item.Err != nil:
			im.Status = "failed"
			im.Error = item.Err.ToGoError().Error()
		case item.Skipped:
			im.Status = "skipped"
		}
		msg.Items = append(msg.Items, im)
	}
	return msg
}

// String colorized batch summary, followed by a table of failed items.
func (b batchMessage) String() string {
	var sb strings.Builder
	verb := map[string]string{"upload": "Uploaded", "delete": "Deleted"}[b.Operation]
	if b.DryRun {
		verb = "Would delete"
	}
	summary := fmt.Sprintf("%s %d object(s), %s to bucket `%s` in %s.", verb, b.Succeeded,
		humanize.IBytes(uint64(b.Bytes)), b.Bucket, b.Duration)
	if b.Operation == "delete" {
		summary = fmt.Sprintf("%s %d object(s) with prefix `%s` from bucket `%s` in %s.", verb, b.Succeeded,
			b.Prefix, b.Bucket, b.Duration)
	}
	sb.WriteString(console.Colorize("Batch", summary))
	if b.Skipped > 0 {
		sb.WriteString("\n" + console.Colorize("BatchSkipped", fmt.Sprintf("Skipped %d item(s).", b.Skipped)))
	}
	if b.Failed > 0 {
		sb.WriteString("\n" + console.Colorize("BatchFailed", fmt.Sprintf("Failed %d item(s):", b.Failed)))
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Source", "Key", "Error"})
		for _, item := range b.Items {
			if item.Status == "failed" {
				t.AppendRow(table.Row{item.Source, item.Key, item.Error})
			}
		}
		t.SetStyle(table.StyleLight)
		sb.WriteString("\n" + t.Render())
	}
	sb.WriteString("\n" + console.Colorize("BatchID", "Batch ID: "+b.ID))
	return sb.String()
}

// JSON'ified message for scripting.
func (b batchMessage) JSON() string {
	msgBytes, e := json.MarshalIndent(b, "", " ")
	fatalIf(probe.NewError(e), "Unable to marshal into JSON.")
	return string(msgBytes)
}

// batchExitStatus returns a non-nil exit error when some items failed.
func batchExitStatus(r *BatchResult) error {
	if r.Failed() > 0 {
		return exitStatus(globalPartialFailureExitStatus)
	}
	return nil
}

func setBatchColors() {
	console.SetColor("Batch", color.New(color.FgGreen, color.Bold))
	console.SetColor("BatchSkipped", color.New(color.FgYellow))
	console.SetColor("BatchFailed", color.New(color.FgRed, color.Bold))
	console.SetColor("BatchID", color.New(color.FgCyan))
}
