// Package multipart decodes fully-buffered multipart/form-data bodies into a
// field map and a file map. It is deliberately not a full MIME parser: parts
// are found by splitting on the boundary marker and disposition attributes are
// pulled out with simple matching, which is all the upstream clients produce.
package multipart

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrMalformedBody indicates the body could not be decoded as multipart
// content, for example a part without a terminating boundary.
var ErrMalformedBody = errors.New("malformed multipart body")

// File is one uploaded binary part. Filename is a generated unique name that
// keeps the extension of the client-supplied name; the original name is not
// retained.
type File struct {
	Filename string
	Data     []byte
}

// Form is the decoded request body.
type Form struct {
	Fields map[string]string
	Files  map[string]File
}

var (
	nameAttr     = regexp.MustCompile(`name="([^"]+)"`)
	filenameAttr = regexp.MustCompile(`filename="([^"]+)"`)
)

// Parse splits body on the boundary token and decodes each part. Parts with a
// filename attribute become files with their raw bytes kept as-is; parts with
// only a name become UTF-8 text fields with trailing whitespace trimmed.
// Parts with no name attribute are dropped. An empty body yields an empty
// form. A body whose parts are not closed by a trailing boundary fails with
// ErrMalformedBody.
//
// The body must reach this function byte-for-byte as it was received: the
// transport layer may not apply any text decoding of its own. Field payloads
// are interpreted as UTF-8 here and nowhere else.
func Parse(body []byte, boundary string) (*Form, error) {
	form := &Form{
		Fields: make(map[string]string),
		Files:  make(map[string]File),
	}
	if len(body) == 0 {
		return form, nil
	}

	marker := "--" + boundary
	raw := string(body) // byte-preserving: Go strings are raw bytes, no decoding happens here

	segments := strings.Split(raw, marker)
	if len(segments) < 2 {
		return nil, ErrMalformedBody
	}
	// The final segment must be the terminal "--" marker left over from
	// "--boundary--"; anything else means an unterminated part.
	last := strings.TrimSpace(segments[len(segments)-1])
	if last != "--" && last != "" {
		return nil, ErrMalformedBody
	}

	for _, segment := range segments {
		trimmed := strings.TrimSpace(segment)
		if trimmed == "" || trimmed == "--" {
			continue
		}

		header, content, found := strings.Cut(segment, "\r\n\r\n")
		if !found {
			return nil, ErrMalformedBody
		}

		nameMatch := nameAttr.FindStringSubmatch(header)
		if nameMatch == nil {
			continue
		}
		name := nameMatch[1]

		value := strings.TrimRight(content, " \t\r\n")

		if filenameMatch := filenameAttr.FindStringSubmatch(header); filenameMatch != nil {
			generated := uuid.NewString() + filepath.Ext(filenameMatch[1])
			form.Files[name] = File{Filename: generated, Data: []byte(value)}
			continue
		}

		form.Fields[name] = decodeUTF8([]byte(value))
	}

	return form, nil
}

// decodeUTF8 reinterprets the raw part bytes as UTF-8 text. The transport is
// assumed to have preserved the original bytes one-to-one; this is the single
// place where bytes become text.
func decodeUTF8(b []byte) string {
	return string(b)
}
