package bmp

import (
	"github.com/deepteams/bmp/internal/decode"
	"github.com/deepteams/bmp/internal/diag"
	"github.com/deepteams/bmp/internal/numformat"
)

// Magic words tag a handle as a Reader or a Writer. NewReader and
// NewWriter store them in the handle; the public methods do not check
// them.
const (
	readerMagic uint32 = 0x424D5230 // "BMR0"
	writerMagic uint32 = 0x424D5731 // "BMW1"
)

// NumberFormat is the caller-selected numeric result format (spec §3).
type NumberFormat = numformat.Format

const (
	FormatInt   = numformat.Int
	FormatFloat = numformat.Float
	FormatS2_13 = numformat.S2_13
)

// Conv64Mode is the 64-bpp conversion mode (spec §3).
type Conv64Mode = decode.Conv64

const (
	Conv64SRGB   = decode.ConvSRGB
	Conv64Linear = decode.ConvLinear
	Conv64None   = decode.ConvNone
)

// UndefinedPolicy is the undefined-pixel policy for RLE images (spec §3).
type UndefinedPolicy = decode.Undefined

const (
	UndefinedLeave    = decode.Leave
	UndefinedToAlpha  = decode.ToAlpha
)

// readState is the reader-side state machine of spec §3.
type readState int

const (
	rsInit readState = iota
	rsHeaderOK
	rsDimensionsQueried
	rsLoadStarted
	rsLoadDone
	rsArray
	rsFatal
)

// writeState is the writer-side state machine of spec §3.
type writeState int

const (
	wsInit writeState = iota
	wsDimensionsSet
	wsSaveStarted
	wsSaveDone
	wsFatal
)

// settings are the geometry-affecting knobs shared by both handles that
// spec §5 allows to regress DIMENSIONS_QUERIED back to HEADER_OK.
type settings struct {
	format        NumberFormat
	conv64        Conv64Mode
	undefined     UndefinedPolicy
	resultIndexed bool
	whiteFirst    bool // Huffman polarity: true = each row's first run is white
}

func defaultSettings() settings {
	return settings{format: FormatInt, conv64: Conv64SRGB, undefined: UndefinedLeave, whiteFirst: true}
}

func newLog() *diag.Log { return &diag.Log{} }
