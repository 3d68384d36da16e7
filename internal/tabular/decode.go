package tabular

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText converts fetched catalog bytes to a UTF-8 string with automatic
// encoding detection. Supplier exports are frequently GBK or Windows-1252;
// UTF-8 is tried first, then GBK, then Windows-1252 (which accepts any byte
// sequence). UTF-8/UTF-16 byte order marks are honored and stripped.
func DecodeText(raw []byte) string {
	// UTF-8 BOM
	if bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		return string(raw[3:])
	}

	// UTF-16 BOM (LE or BE)
	if len(raw) >= 2 && ((raw[0] == 0xFF && raw[1] == 0xFE) || (raw[0] == 0xFE && raw[1] == 0xFF)) {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if decoded, _, err := transform.Bytes(decoder, raw); err == nil {
			return string(decoded)
		}
	}

	if utf8.Valid(raw) {
		return string(raw)
	}

	// Not valid UTF-8, try GBK decoding
	decoder := simplifiedchinese.GBK.NewDecoder()
	if decoded, _, err := transform.Bytes(decoder, raw); err == nil && utf8.Valid(decoded) {
		return string(decoded)
	}

	// Windows-1252 maps every byte, so this cannot fail
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
