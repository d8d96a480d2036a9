package main

import (
	"fmt"
	"os"
)

// captureWriter keeps the most recent frame for the debug strip and
// optionally appends every frame to a file.
type captureWriter struct {
	file *os.File
	last []byte
}

func newCapture(path string) (*captureWriter, error) {
	c := &captureWriter{}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open capture file: %w", err)
		}
		c.file = f
	}
	return c, nil
}

func (c *captureWriter) Write(p []byte) (int, error) {
	c.last = append(c.last[:0], p...)
	if c.file != nil {
		return c.file.Write(p)
	}
	return len(p), nil
}

func (c *captureWriter) Last() []byte {
	return c.last
}

func (c *captureWriter) Close() error {
	if c.file != nil {
		return c.file.Close()
	}
	return nil
}
