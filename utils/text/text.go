/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package text holds small string helpers shared by request handling code.
package text

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// prohibitedDirChars may not appear in a restricted directory name.
const prohibitedDirChars = "/\\. ,;"

var (
	nonPrintables = regexp.MustCompile(`[^a-zA-Z0-9_:/-]`)
	// scheme:// where "scheme:" is optional.
	schemePrefix = regexp.MustCompile(`^(([^:/?#]+:)?//)?`)
)

// ParseBase64 decodes a base64 request parameter. Whitespace is ignored and
// padding is optional. An empty value decodes to nil. The error names param
// and quotes the bad value.
func ParseBase64(encoded, param string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, encoded)

	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(s); err == nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%s must be Base64 encoded. (Bad value: %s)", param, encoded)
}

// IsValidDirectoryName reports whether name can be used for a server
// directory: it must not be blank and must clean to a usable path.
func IsValidDirectoryName(name string) bool {
	return validDirectoryName(name, false)
}

// IsValidRestrictedDirectoryName is IsValidDirectoryName that additionally
// rejects names containing any of / \ . space , ;
func IsValidRestrictedDirectoryName(name string) bool {
	return validDirectoryName(name, true)
}

func validDirectoryName(name string, restricted bool) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if restricted && strings.ContainsAny(name, prohibitedDirChars) {
		return false
	}
	return !strings.ContainsRune(name, 0) && filepath.Clean(name) != ""
}

// ByteArrayToOctalString appends each byte of b to sb as an escaped,
// zero-padded octal code (\\ooo), the form accepted for bytea input.
func ByteArrayToOctalString(b []byte, sb *strings.Builder) {
	if b == nil || sb == nil {
		return
	}
	sb.Grow(len(b) * 5)
	for _, c := range b {
		fmt.Fprintf(sb, `\\%03o`, c)
	}
}

// MaskNonPrintables replaces every character outside [a-zA-Z0-9_:/-] with '.'.
func MaskNonPrintables(s string) string {
	if s == "" {
		return s
	}
	return nonPrintables.ReplaceAllString(s, ".")
}

// AbsoluteDataPath returns path with a leading '/'.
func AbsoluteDataPath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// RightTrimWhiteSpace removes trailing spaces. Tabs and other whitespace
// are kept.
func RightTrimWhiteSpace(s string) string {
	return strings.TrimRight(s, " ")
}

// GetHost returns the host portion of uri, or "" when there is none.
// The scheme is optional: "hdfs://nn:8020/p", "//nn/p" and "nn:8020" all
// yield "nn".
func GetHost(uri string) string {
	if strings.TrimSpace(uri) == "" {
		return ""
	}
	start := 0
	if loc := schemePrefix.FindStringIndex(uri); loc != nil {
		start = loc[1]
	}
	rest := uri[start:]
	if end := strings.IndexAny(rest, ":/?#"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}
