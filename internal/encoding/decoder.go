package encoding

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeCommandOutput trims subprocess output and makes sure it is valid
// UTF-8. Output that is not UTF-8 is assumed to be Latin-1, which is what
// older mail servers and locales tend to emit.
func DecodeCommandOutput(input []byte) (string, error) {
	trimmedInput := bytes.TrimSpace(input)

	var decoded string

	if utf8.Valid(trimmedInput) {
		decoded = string(trimmedInput)
	} else {
		reader := charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(trimmedInput))
		output, err := io.ReadAll(reader)
		if err != nil {
			return "", err
		}
		decoded = string(output)
	}

	return strings.ToValidUTF8(decoded, ""), nil
}
