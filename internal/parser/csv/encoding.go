package csv

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Encoding names reported by Decode.
const (
	EncUTF8        = "utf-8"
	EncUTF8BOM     = "utf-8-bom"
	EncUTF16LE     = "utf-16le"
	EncUTF16BE     = "utf-16be"
	EncWindows1252 = "windows-1252"
	EncLatin1      = "latin-1"
)

// Decode converts data to UTF-8 and strips any byte order mark. With want
// empty or "auto" the encoding is detected: BOMs first, then valid UTF-8,
// else Windows-1252 (the usual export encoding of desktop spreadsheets). It
// returns the decoded bytes and the name of the encoding used.
func Decode(data []byte, want string) ([]byte, string, error) {
	switch strings.ToLower(want) {
	case "utf-8", "utf8":
		return bytes.TrimPrefix(data, bomUTF8), EncUTF8, nil
	case "windows-1252", "cp1252":
		return decodeWith(charmap.Windows1252, data, EncWindows1252)
	case "latin-1", "latin1", "iso-8859-1":
		return decodeWith(charmap.ISO8859_1, data, EncLatin1)
	}

	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], EncUTF8BOM, nil
	case bytes.HasPrefix(data, bomUTF16LE):
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), data, EncUTF16LE)
	case bytes.HasPrefix(data, bomUTF16BE):
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), data, EncUTF16BE)
	case utf8.Valid(data):
		return data, EncUTF8, nil
	default:
		return decodeWith(charmap.Windows1252, data, EncWindows1252)
	}
}

func decodeWith(enc encoding.Encoding, data []byte, name string) ([]byte, string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", name, err)
	}
	return out, name, nil
}
