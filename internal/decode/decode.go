// Package decode turns raw uploaded statement bytes into text. Bank
// exporters emit either UTF-8 or the legacy Windows-1251 code page and
// never say which, so both candidates are decoded and scored.
package decode

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Result is decoded text plus the name of the encoding that produced it.
type Result struct {
	Text     string
	Encoding string
}

// signatures are the 1C exchange-format markers used to judge whether a
// candidate decoding produced readable text.
var signatures = []string{
	"1CClientBankExchange",
	"СекцияРасчСчет",
	"СекцияДокумент",
	"КонецДокумента",
}

type candidate struct {
	encoding string
	decode   func([]byte) string
}

// candidates are tried in order; the UTF-8 candidate doubles as the
// fallback when no candidate scores cleanly.
var candidates = []candidate{
	{encoding: "utf-8", decode: decodeUTF8},
	{encoding: "windows-1251", decode: decodeWindows1251},
}

// Resolve decodes data, choosing the candidate encoding whose output
// contains a format signature and shows no corruption. It never fails:
// when no candidate qualifies the UTF-8 reading is returned as-is and
// the parser downstream reports the format problem. filenameHint, when
// it contains Cyrillic letters, sharpens the corruption check.
func Resolve(data []byte, filenameHint string) Result {
	results := make([]Result, len(candidates))
	for i, c := range candidates {
		results[i] = Result{Text: c.decode(data), Encoding: c.encoding}
	}
	for _, r := range results {
		if HasSignature(r.Text) && !LooksCorrupted(r.Text, filenameHint) {
			return r
		}
	}
	return results[0]
}

// HasSignature reports whether text contains at least one 1C
// exchange-format marker.
func HasSignature(text string) bool {
	for _, sig := range signatures {
		if strings.Contains(text, sig) {
			return true
		}
	}
	return false
}

// LooksCorrupted reports whether text shows signs of having been
// decoded with the wrong encoding: replacement runes, stray control
// characters, or a conspicuous absence of Cyrillic when the filename
// hint carries Cyrillic letters.
func LooksCorrupted(text, filenameHint string) bool {
	for _, r := range text {
		if r == utf8.RuneError {
			return true
		}
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	if len(text) > 100 && hasCyrillic(filenameHint) && !hasCyrillic(text) {
		return true
	}
	return false
}

func hasCyrillic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}

func decodeUTF8(data []byte) string {
	// Invalid sequences become replacement runes so the corruption
	// check can see them.
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

func decodeWindows1251(data []byte) string {
	text, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		// The charmap decoder is total over single bytes; keep the
		// raw reading if it ever changes.
		return string(data)
	}
	return string(text)
}
