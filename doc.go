// Package qoi implements a lossless codec for 3- or 4-channel 8-bit
// raster images. Encode turns a row-major pixel buffer into a
// self-delimiting byte stream; Decode reverses it bit-for-bit.
//
// The codec is a pure function over its arguments: no package-level
// state, no I/O, and no logging. See errors.go for the two error kinds
// it can return.
package qoi
