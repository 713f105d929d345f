// Package bmp decodes and encodes the Windows/OS2 BMP bitmap container:
// every historical info-header shape, packed-RGB/indexed/RLE4/RLE8/RLE24/
// 1-bpp-Huffman pixel encodings, explicit and implicit colour masks, and
// the INT/FLOAT/S2_13 numeric result formats described by the BITMAPCORE/
// BITMAPINFO/BITMAPV4/BITMAPV5 family of structures.
//
// A Reader is created over a byte sink with NewReader and driven through
// its header-classification, dimension-query, and pixel-load stages; a
// Writer is created with NewWriter and driven through size/palette/format
// settings before SaveImage or SaveLine. Both report the outcome of every
// fallible operation except Reader.ICCProfile, which returns an error, as
// a Result rather than a bare error, mirroring the
// sticky error-latch discipline the format's readers have always used:
// a corrupt file still yields whatever pixels could be recovered.
package bmp
