package vfs

import (
	"bytes"
	"strings"
)

// LineEnding represents the line ending style.
type LineEnding string

const (
	// LineEndingLF is Unix-style line ending (\n).
	LineEndingLF LineEnding = "lf"

	// LineEndingCRLF is Windows-style line ending (\r\n).
	LineEndingCRLF LineEnding = "crlf"

	// LineEndingCR is old Mac-style line ending (\r).
	LineEndingCR LineEnding = "cr"
)

// String returns the terminator bytes for the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// DetectLineEnding returns the dominant line ending in content.
// Content without terminators is reported as LF.
func DetectLineEnding(content []byte) LineEnding {
	var lf, crlf, cr int

	for i := 0; i < len(content); i++ {
		if content[i] == '\r' {
			if i+1 < len(content) && content[i+1] == '\n' {
				crlf++
				i++ // Skip the \n
			} else {
				cr++
			}
		} else if content[i] == '\n' {
			lf++
		}
	}

	if crlf > lf && crlf >= cr {
		return LineEndingCRLF
	}
	if cr > lf && cr > crlf {
		return LineEndingCR
	}
	return LineEndingLF
}

// StripBOM removes a UTF-8 BOM from content if present and reports
// whether one was found.
func StripBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, bomUTF8) {
		return content[len(bomUTF8):], true
	}
	return content, false
}

// IsBinary reports whether content looks like binary data: it contains a
// null byte within the first 8000 bytes.
func IsBinary(content []byte) bool {
	return bytes.IndexByte(content[:min(len(content), 8000)], 0) >= 0
}

// Format records how a text file was stored on disk, so it can be written
// back the same way.
type Format struct {
	Ending LineEnding
	BOM    bool
}

// Decode converts file content to LF-terminated text and reports the
// format it was stored in.
func Decode(content []byte) (string, Format) {
	content, bom := StripBOM(content)
	f := Format{Ending: DetectLineEnding(content), BOM: bom}

	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text, f
}

// Encode converts LF-terminated text back to file content in format f.
func Encode(text string, f Format) []byte {
	if f.Ending != "" && f.Ending != LineEndingLF {
		text = strings.ReplaceAll(text, "\n", f.Ending.String())
	}
	if f.BOM {
		return append(append([]byte{}, bomUTF8...), text...)
	}
	return []byte(text)
}
