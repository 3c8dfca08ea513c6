package console

import "io"

// Console is where commands print their user facing output. Logs go to the
// logger instead.
type Console struct {
	Stdout io.Writer
	Stderr io.Writer
}
