package models

import "io"

// Upload describes a file selected for image upload. Size and ContentType
// are checked before any bytes leave the process.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}
