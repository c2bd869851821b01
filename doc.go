// Package vrt implements the VITA Radio Transport (VRT, ANSI/VITA 49.0/49.0b/49.2)
// wire format: packet header/trailer/payload bit layout, the Context Indicator
// Field (CIF) addressing scheme used by context and command packets, and the
// packet factory that selects a concrete packet flavor from its type and class ID.
//
// A [Packet] wraps a single contiguous octet buffer (owned or borrowed, see
// [Buffer]) and exposes typed accessors for every header, prologue and
// trailer field defined by the specification. All derived fields are
// computed on demand from the buffer; there is no separate parse step beyond
// [NewPacketView] and [Packet.Validate].
//
// Packed numeric payload encoding (signed/unsigned/VRT-float/IEEE formats at
// arbitrary bit widths) lives in the sibling package "payload". VRT-over-VRL
// framing and VRA archive files live in the sibling packages "vrl" and "vra".
package vrt
