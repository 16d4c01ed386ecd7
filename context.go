// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"
	"math"
)

// context is the shared AEAD encryption context state (spec §4.5): a
// monotonic sequence counter XORed into a base nonce to derive
// per-message nonces, and an overflow latch that makes the context
// permanently unusable once the counter would wrap. Grounded on
// tag/internal/hpke.context, but with the spec's uint64 counter in place
// of the teacher's uint128 (the overflow point is pinned at 2^64-1).
type context struct {
	aead           cipher.AEAD
	suite          *Suite
	baseNonce      []byte
	exporterSecret []byte

	seq        uint64
	overflowed bool
}

func newContext(suite *Suite, key, baseNonce, exporterSecret []byte) (*context, error) {
	a, err := suite.aead.New(key)
	if err != nil {
		return nil, err
	}
	return &context{
		aead:           a,
		suite:          suite,
		baseNonce:      baseNonce,
		exporterSecret: exporterSecret,
	}, nil
}

// nextNonce computes nonce_i = base_nonce XOR I2OSP(seq, Nn): the
// sequence counter is written big-endian into the trailing 8 bytes of a
// zero buffer the size of a nonce before XORing (spec §4.5; AEAD nonces
// defined here are always >= 12 bytes, so there's no truncation).
func (c *context) nextNonce() []byte {
	nn := len(c.baseNonce)
	seqBuf := make([]byte, nn)
	binary.BigEndian.PutUint64(seqBuf[nn-8:], c.seq)
	nonce := make([]byte, nn)
	for i := range nonce {
		nonce[i] = c.baseNonce[i] ^ seqBuf[i]
	}
	return nonce
}

// advance increments the sequence counter, or latches overflowed if the
// counter has reached its maximum (spec §4.5, invariant 6).
func (c *context) advance() {
	if c.seq == math.MaxUint64 {
		c.overflowed = true
		return
	}
	c.seq++
}

// Export implements draft-02 §6.1's Context.Export: LabeledExpand over
// the exporter secret. The result depends only on the context's initial
// parameters, never on seq, so it is stable across any number of
// Seal/Open calls (spec §8, invariant 3).
func (c *context) Export(exporterContext []byte, length int) ([]byte, error) {
	if length < 0 || length > 255*c.suite.kdf.Nh() {
		return nil, fmt.Errorf("hpke: invalid export length %d: %w", length, ErrInvalidKdfLength)
	}
	return c.suite.kdf.LabeledExpand(c.suite.suiteID(), c.exporterSecret, "sec", exporterContext, uint16(length))
}

// SenderContext seals plaintexts for one recipient. It is not safe for
// concurrent use: Seal mutates the sequence counter (spec §5).
type SenderContext struct {
	*context
}

// ReceiverContext opens ciphertexts from one sender. It is not safe for
// concurrent use: Open mutates the sequence counter (spec §5).
type ReceiverContext struct {
	*context
}

// Seal encrypts ptInOut in place (it is overwritten with the ciphertext
// of the same length) and returns the authentication tag detached from
// it, using the next per-message nonce. It advances the sequence counter
// on success. It returns ErrSeqOverflow, leaving ptInOut unchanged, if the
// counter has already wrapped; on an underlying AEAD error it returns
// ErrEncryption and ptInOut is left in an undefined state (spec §4.5/§7).
func (s *SenderContext) Seal(ptInOut, aad []byte) (tag []byte, err error) {
	if s.overflowed {
		return nil, ErrSeqOverflow
	}
	nonce := s.nextNonce()
	sealed := s.aead.Seal(nil, nonce, ptInOut, aad)
	if len(sealed) != len(ptInOut)+s.aead.Overhead() {
		return nil, ErrEncryption
	}
	copy(ptInOut, sealed[:len(ptInOut)])
	tag = sealed[len(ptInOut):]
	s.advance()
	return tag, nil
}

// Open decrypts ctInOut in place (it is overwritten with the plaintext of
// the same length) against the detached tag, using the next per-message
// nonce. It advances the sequence counter on success. It returns
// ErrSeqOverflow, leaving ctInOut unchanged, if the counter has already
// wrapped; on tag mismatch it returns ErrInvalidTag and ctInOut is left in
// an undefined state (spec §4.5/§7).
func (r *ReceiverContext) Open(ctInOut, aad, tag []byte) error {
	if r.overflowed {
		return ErrSeqOverflow
	}
	nonce := r.nextNonce()
	sealed := make([]byte, 0, len(ctInOut)+len(tag))
	sealed = append(sealed, ctInOut...)
	sealed = append(sealed, tag...)
	opened, err := r.aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidTag)
	}
	copy(ctInOut, opened)
	r.advance()
	return nil
}
