package decode

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestResolve_UTF8Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/statement_utf8.txt")
	require.NoError(t, err)

	r := Resolve(data, "statement_utf8.txt")
	assert.Equal(t, "utf-8", r.Encoding)
	assert.Contains(t, r.Text, "СекцияРасчСчет")
	assert.Contains(t, r.Text, `АО "Банк Пример"`)
}

func TestResolve_Windows1251Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/statement_cp1251.txt")
	require.NoError(t, err)

	r := Resolve(data, "выписка_июнь.txt")
	assert.Equal(t, "windows-1251", r.Encoding)
	assert.Contains(t, r.Text, "СекцияДокумент")
	assert.Contains(t, r.Text, `АО "Банк Пример"`)
}

func TestResolve_Windows1251WithoutHint(t *testing.T) {
	data, err := os.ReadFile("../../testdata/statement_cp1251.txt")
	require.NoError(t, err)

	// The UTF-8 reading is rejected on replacement runes alone.
	r := Resolve(data, "statement.txt")
	assert.Equal(t, "windows-1251", r.Encoding)
	assert.Contains(t, r.Text, "КонецДокумента")
}

func TestResolve_NoMarkersFallsBackToUTF8(t *testing.T) {
	r := Resolve([]byte("just a plain note, no statement here"), "note.txt")
	assert.Equal(t, "utf-8", r.Encoding)
	assert.Equal(t, "just a plain note, no statement here", r.Text)
}

func TestResolve_NeverFails(t *testing.T) {
	r := Resolve([]byte{0xFF, 0xFE, 0x00, 0x01}, "")
	assert.Equal(t, "utf-8", r.Encoding)
	assert.NotEmpty(t, r.Text)
}

func TestHasSignature(t *testing.T) {
	assert.True(t, HasSignature("header\n1CClientBankExchange\n"))
	assert.True(t, HasSignature("СекцияДокумент=Платежное поручение"))
	assert.False(t, HasSignature("an ordinary text file"))
}

func TestLooksCorrupted_ControlCharacters(t *testing.T) {
	assert.True(t, LooksCorrupted("text with \x01 inside", ""))
	assert.False(t, LooksCorrupted("tabs\tand\r\nnewlines are fine", ""))
}

func TestLooksCorrupted_ReplacementRune(t *testing.T) {
	assert.True(t, LooksCorrupted("broken � text", ""))
}

func TestLooksCorrupted_CyrillicHint(t *testing.T) {
	long := make([]byte, 0, 150)
	for i := 0; i < 150; i++ {
		long = append(long, 'a')
	}
	assert.True(t, LooksCorrupted(string(long), "выписка.txt"))
	assert.False(t, LooksCorrupted(string(long), "statement.txt"))
	assert.False(t, LooksCorrupted("короткий текст с кириллицей", "выписка.txt"))
}

func TestWindows1251_RoundTripsCoveredBytes(t *testing.T) {
	// Every Cyrillic letter survives encode -> decode unchanged.
	reference := "АБВГДЕЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯабвгдежзийклмнопрстуфхцчшщъыьэюяЁё№"

	raw, err := charmap.Windows1251.NewEncoder().Bytes([]byte(reference))
	require.NoError(t, err)
	require.Len(t, raw, len([]rune(reference)))

	assert.Equal(t, reference, decodeWindows1251(raw))
}
