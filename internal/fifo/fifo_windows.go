//go:build windows

package fifo

import (
	"errors"
	"os"
)

var errUnsupported = errors.New("fifo: named pipes triggers are not supported on windows")

func (f *Reader) makeSureFifoExists(string) error {
	return errUnsupported
}

func openForReading(string) (*os.File, error) {
	return nil, errUnsupported
}

func openForWriting(string) (*os.File, error) {
	return nil, errUnsupported
}
