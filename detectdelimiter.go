package mapqtl

import (
	"bufio"
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// sniffSize is how much of a stream PeekDelimiter inspects.
const sniffSize = 64 * 1024

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// PeekDelimiter is DetermineDelimiter for streams that cannot be rewound. It
// only looks at buffered bytes, so br can still be read from the start
// afterwards.
func PeekDelimiter(br *bufio.Reader) rune {
	// Peek returns what it has along with ErrBufferFull or io.EOF on short
	// reads, which is fine for sniffing.
	head, _ := br.Peek(sniffSize)
	if len(head) == 0 {
		return ','
	}

	return DetermineDelimiter(bytes.NewReader(head))
}
