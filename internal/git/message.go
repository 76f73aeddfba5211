// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"strings"
)

const (
	maxSubjectLength = 72
	maxListedFiles   = 20
)

// GenerateMessage creates a conventional "docs:" commit message from a
// run summary and the pages written.
func GenerateMessage(summary string, files []string) string {
	msg := buildSubject(summary)
	if body := buildBody(files); body != "" {
		msg += "\n\n" + body
	}
	return msg + "\n\n" + generatedTrailer
}

// buildSubject creates the first line: "docs: summary", at most 72
// characters.
func buildSubject(summary string) string {
	summary = strings.TrimRight(strings.TrimSpace(summary), ".")
	if summary == "" {
		summary = "regenerate API reference"
	}
	summary = strings.ToLower(summary[:1]) + summary[1:]

	subject := "docs: " + summary
	if len(subject) > maxSubjectLength {
		subject = subject[:maxSubjectLength-3] + "..."
	}
	return subject
}

// buildBody lists the pages written, up to maxListedFiles.
func buildBody(files []string) string {
	if len(files) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("Updated pages:\n")
	for i, f := range files {
		if i == maxListedFiles {
			fmt.Fprintf(&buf, "- ... and %d more\n", len(files)-maxListedFiles)
			break
		}
		fmt.Fprintf(&buf, "- %s\n", f)
	}
	return strings.TrimRight(buf.String(), "\n")
}
