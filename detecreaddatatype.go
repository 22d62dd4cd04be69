package mapqtl

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	log "github.com/sirupsen/logrus"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZlib
	DataTypeBZip2
	// Unix compress (.Z). Recognized so it can be refused by name.
	DataTypeLZW
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "plain"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZlib:
		return "zlib"
	case DataTypeLZW:
		return "compress (.Z)"
	case DataTypeBZip2:
		return "bzip2"
	}

	return "invalid"
}

type byteCodeSig struct {
	dt  DataType
	sig []byte
}

// Checked in order. zlib has no magic number, only a two byte header whose
// first byte is 0x78 for the default window size.
var byteCodeSigs = []byteCodeSig{
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeLZW, []byte{0x1f, 0x9d}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
	{DataTypeZlib, []byte{0x78, 0x01}},
	{DataTypeZlib, []byte{0x78, 0x9c}},
	{DataTypeZlib, []byte{0x78, 0xda}},
}

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types. Nothing is consumed from br. Byte code
// signatures from https://stackoverflow.com/a/19127748/199475
func DetectDataType(br *bufio.Reader) (DataType, error) {
	buff, err := br.Peek(6)
	if err != nil && !errors.Is(err, io.EOF) {
		return DataTypeInvalid, err
	}

	// Match known signatures
Outer:
	for _, s := range byteCodeSigs {
		if len(buff) < len(s.sig) {
			continue
		}
		for position := range s.sig {
			if buff[position] != s.sig[position] {
				continue Outer
			}
		}
		return s.dt, nil
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompress sniffs rc and, if it is compressed or a zip archive, returns
// a reader over the decompressed content. For zip archives that is the first
// regular file in the archive. Closing the result closes rc.
func MaybeDecompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)

	dt, err := DetectDataType(br)
	if err != nil {
		return nil, pfx.Err(err)
	}

	log.Debugf("Detected %s input\n", dt)

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &stackedReadCloser{Reader: gz, closers: []io.Closer{gz, rc}}, nil
	case DataTypeZip:
		zr := zipstream.NewReader(br)
		if err := firstZipEntry(zr); err != nil {
			return nil, pfx.Err(err)
		}
		return &stackedReadCloser{Reader: zr, closers: []io.Closer{rc}}, nil
	case DataTypeBZip2:
		return &stackedReadCloser{Reader: bzip2.NewReader(br), closers: []io.Closer{rc}}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &stackedReadCloser{Reader: reader, closers: []io.Closer{rc}}, nil
	case DataTypeLZW:
		return nil, pfx.Err(fmt.Errorf("Unix compress (.Z) input is not supported; recompress it with gzip"))
	case DataTypeZlib:
		zl, err := zlib.NewReader(br)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &stackedReadCloser{Reader: zl, closers: []io.Closer{zl, rc}}, nil
	}

	// No data type detected. For now, we assume this is uncompressed.
	return &stackedReadCloser{Reader: br, closers: []io.Closer{rc}}, nil
}

// firstZipEntry advances zr to the first entry that is not a directory.
func firstZipEntry(zr *zipstream.Reader) error {
	for {
		hdr, err := zr.Next()
		if err == io.EOF {
			return fmt.Errorf("zip archive contains no files")
		} else if err != nil {
			return err
		}

		if strings.HasSuffix(hdr.Name, "/") {
			continue
		}

		log.Infof("Reading %s from zip archive\n", hdr.Name)
		return nil
	}
}

// stackedReadCloser reads from the outermost decoder and closes every layer
// underneath it, innermost last.
type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReadCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
