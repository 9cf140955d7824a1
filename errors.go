package qoi

import "github.com/pkg/errors"

// ErrInvalidArgument is returned when the caller's dimensions, channel
// count, buffer length, or encoded header are malformed. No partial
// output is produced.
var ErrInvalidArgument = errors.New("qoi: invalid argument")

// ErrTruncated is returned when the decoder needs to read past the end
// of the encoded block to finish a chunk. No partial output is produced.
var ErrTruncated = errors.New("qoi: truncated stream")

func invalidArgumentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func truncatedf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrTruncated, format, args...)
}
