// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// sniffLen is the number of leading bytes inspected for an HTML signature.
const sniffLen = 512

var htmlPrefixes = [][]byte{
	[]byte("<html"),
	[]byte("<!doctype html"),
}

// LooksLikeHTML reports whether head starts with an HTML document. Leading
// whitespace and a UTF-8 byte order mark are ignored; matching is
// case-insensitive. Download hosts answer with such a page (quota or virus
// scan warnings) instead of the requested file.
func LooksLikeHTML(head []byte) bool {
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	head = bytes.TrimLeft(head, " \t\r\n")
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	lower := bytes.ToLower(head)
	for _, prefix := range htmlPrefixes {
		if bytes.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// SniffFile reads the start of the file at path and reports whether it is
// an HTML page.
func SniffFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return LooksLikeHTML(buf[:n]), nil
}
