// Package binutil provides little-endian primitive reads and writes over a
// byte-oriented sink. It mirrors the way the teacher package reads RIFF
// fields directly with encoding/binary, generalised to an io.Reader/io.Writer
// pair instead of a fixed byte slice, since BMP files are read from an
// arbitrary caller-supplied stream rather than a fully buffered []byte.
package binutil

import (
	"encoding/binary"
	"io"
)

// ReadU16 reads a little-endian uint16 from r.
func ReadU16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// ReadS16 reads a little-endian int16 from r.
func ReadS16(r io.Reader) (int16, error) {
	v, err := ReadU16(r)
	return int16(v), err
}

// ReadU32 reads a little-endian uint32 from r.
func ReadU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadS32 reads a little-endian int32 from r.
func ReadS32(r io.Reader) (int32, error) {
	v, err := ReadU32(r)
	return int32(v), err
}

// WriteU16 writes v to w in little-endian order.
func WriteU16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteS16 writes v to w in little-endian order.
func WriteS16(w io.Writer, v int16) error {
	return WriteU16(w, uint16(v))
}

// WriteU32 writes v to w in little-endian order.
func WriteU32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteS32 writes v to w in little-endian order.
func WriteS32(w io.Writer, v int32) error {
	return WriteU32(w, uint32(v))
}

// LE16 decodes a little-endian uint16 from the first two bytes of b.
func LE16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

// LE32 decodes a little-endian uint32 from the first four bytes of b.
func LE32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// PutLE16 encodes v into the first two bytes of b.
func PutLE16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

// PutLE32 encodes v into the first four bytes of b.
func PutLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
