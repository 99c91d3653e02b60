package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	CharsetUTF8 = "UTF-8"
	// CharsetFallback is used when neither a BOM nor the heuristics decide.
	CharsetFallback = "windows-1252"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decoders maps chardet charset names to x/text decoders. Spreadsheet exports
// of the admin template arrive in whatever code page the uploader's Excel used.
var decoders = map[string]xenc.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-2":   charmap.ISO8859_2,
	"windows-1250": charmap.Windows1250,
	"ISO-8859-5":   charmap.ISO8859_5,
	"windows-1251": charmap.Windows1251,
	"KOI8-R":       charmap.KOI8R,
	"ISO-8859-9":   charmap.ISO8859_9,
	"windows-1254": charmap.Windows1254,
	"Shift_JIS":    japanese.ShiftJIS,
	"EUC-JP":       japanese.EUCJP,
	"EUC-KR":       korean.EUCKR,
	"GB-18030":     simplifiedchinese.GB18030,
	"Big5":         traditionalchinese.Big5,
	"UTF-16LE":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"UTF-16BE":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// Decoded is an upload converted to UTF-8 along with the charset it was
// read as.
type Decoded struct {
	io.Reader
	Charset string
}

// NewUTF8Reader sniffs the first 4 KiB of r and returns a reader producing
// UTF-8. A BOM wins; valid UTF-8 passes through untouched; otherwise chardet
// picks a charset from the decoders table and unknown results fall back to
// CharsetFallback.
func NewUTF8Reader(r io.Reader) (*Decoded, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return &Decoded{Reader: br, Charset: CharsetUTF8}, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return &Decoded{Reader: transform.NewReader(br, dec), Charset: "UTF-16LE"}, nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		return &Decoded{Reader: transform.NewReader(br, dec), Charset: "UTF-16BE"}, nil
	}

	if validUTF8Prefix(buf) {
		return &Decoded{Reader: br, Charset: CharsetUTF8}, nil
	}

	charset := CharsetFallback

	if result, err := chardet.NewTextDetector().DetectBest(buf); err == nil {
		if result.Charset == CharsetUTF8 {
			return &Decoded{Reader: br, Charset: CharsetUTF8}, nil
		}

		if _, ok := decoders[result.Charset]; ok {
			charset = result.Charset
		}
	}

	return &Decoded{
		Reader:  transform.NewReader(br, decoders[charset].NewDecoder()),
		Charset: charset,
	}, nil
}

// validUTF8Prefix reports whether buf is UTF-8, ignoring a multi-byte rune
// cut off by the peek window.
func validUTF8Prefix(buf []byte) bool {
	if utf8.Valid(buf) {
		return true
	}

	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		if utf8.RuneStart(buf[len(buf)-i]) {
			return utf8.Valid(buf[:len(buf)-i])
		}
	}

	return false
}
