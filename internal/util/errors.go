package util

import "errors"

var (
	ErrNoExtractableText = errors.New("no extractable text found in sample file")
	ErrUnsupportedFormat = errors.New("unsupported sample file format")
)
