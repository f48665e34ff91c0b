package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const (
	cardLen  = 80
	blockLen = 2880
)

// Card is one FITS header keyword for a generated fixture. Value may be a
// string, bool, int, or float64.
type Card struct {
	Name  string
	Value any
}

// FITSBytes renders a minimal valid FITS file: a primary header holding the
// mandatory keywords, the given cards, and END, padded to a full 2880-byte
// block. NAXIS is zero so no data block follows.
func FITSBytes(cards ...Card) []byte {
	var sb strings.Builder
	writeCard(&sb, Card{Name: "SIMPLE", Value: true})
	writeCard(&sb, Card{Name: "BITPIX", Value: 8})
	writeCard(&sb, Card{Name: "NAXIS", Value: 0})
	for _, card := range cards {
		writeCard(&sb, card)
	}
	sb.WriteString(padRight("END", cardLen))

	header := sb.String()
	if pad := blockLen - len(header)%blockLen; pad < blockLen {
		header += strings.Repeat(" ", pad)
	}
	return []byte(header)
}

// WriteFITS writes a fixture FITS file at path, creating parent directories.
func WriteFITS(t testing.TB, path string, cards ...Card) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, FITSBytes(cards...), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
}

// writeCard renders one 80-byte header card in fixed format: keyword in
// bytes 1-8, "= " in 9-10, and the value right-justified through byte 30
// (strings open-quoted at byte 11).
func writeCard(sb *strings.Builder, card Card) {
	var value string
	switch v := card.Value.(type) {
	case bool:
		flag := "F"
		if v {
			flag = "T"
		}
		value = fmt.Sprintf("%20s", flag)
	case int:
		value = fmt.Sprintf("%20d", v)
	case float64:
		rendered := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.ContainsAny(rendered, ".eE") {
			rendered += ".0"
		}
		value = fmt.Sprintf("%20s", rendered)
	case string:
		quoted := strings.ReplaceAll(v, "'", "''")
		if len(quoted) < 8 {
			quoted = padRight(quoted, 8)
		}
		value = "'" + quoted + "'"
	default:
		panic(fmt.Sprintf("unsupported card value %T", card.Value))
	}

	line := fmt.Sprintf("%-8s= %s", card.Name, value)
	sb.WriteString(padRight(line, cardLen))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
