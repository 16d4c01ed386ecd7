// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import "errors"

// Errors returned by this package. Callers should compare against these
// with errors.Is; wrapped context (via fmt.Errorf("...: %w", ...)) may be
// added at call sites without changing the sentinel.
var (
	// ErrInvalidEncoding is returned when a byte string fails to parse as a
	// public key, private key, encapsulated key, or tag: wrong length, an
	// off-curve or identity point, or an out-of-range scalar.
	ErrInvalidEncoding = errors.New("hpke: invalid encoding")

	// ErrInvalidKeyExchange is returned when a Diffie-Hellman computation
	// yields the all-zero string or the group identity element.
	ErrInvalidKeyExchange = errors.New("hpke: invalid key exchange")

	// ErrInvalidTag is returned when AEAD authentication fails on Open.
	ErrInvalidTag = errors.New("hpke: invalid tag")

	// ErrEncryption is returned when the underlying AEAD reports a non-tag
	// failure during Seal.
	ErrEncryption = errors.New("hpke: encryption failed")

	// ErrSeqOverflow is returned when a context's sequence counter has
	// already wrapped; the context is permanently unusable.
	ErrSeqOverflow = errors.New("hpke: sequence number overflow")

	// ErrInvalidKdfLength is returned when a caller requests more output
	// from LabeledExpand or Export than 255 times the KDF's digest size.
	ErrInvalidKdfLength = errors.New("hpke: invalid KDF output length")
)
