// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hpke implements the core of Hybrid Public Key Encryption as
// defined by draft-irtf-cfrg-hpke-02: a Key Encapsulation Mechanism over an
// elliptic-curve Diffie-Hellman group, an HKDF-based key schedule, and an
// AEAD encryption context.
//
// A Suite ties together one KEM, one KDF, and one AEAD. Callers obtain one
// with NewSuite and drive it through SetupSender/SetupReceiver to get a
// SenderContext or ReceiverContext, which expose Seal/Open and Export.
//
// This package does not implement post-quantum KEMs, chunked/streaming
// AEAD, wire framing of ciphertexts, or persistent session storage.
package hpke

import "encoding/binary"

// KEM identifiers, draft-irtf-cfrg-hpke-02 §8.1.
const (
	KEM_P256_HKDF_SHA256   uint16 = 0x0010
	KEM_X25519_HKDF_SHA256 uint16 = 0x0020
)

// KDF identifiers, draft-irtf-cfrg-hpke-02 §8.2.
const (
	KDF_HKDF_SHA256 uint16 = 0x0001
	KDF_HKDF_SHA384 uint16 = 0x0002
	KDF_HKDF_SHA512 uint16 = 0x0003
)

// AEAD identifiers, draft-irtf-cfrg-hpke-02 §8.3.
const (
	AEAD_AES128GCM        uint16 = 0x0001
	AEAD_AES256GCM        uint16 = 0x0002
	AEAD_CHACHA20POLY1305 uint16 = 0x0003
)

// labelPrefix is the exact ASCII string that LabeledExtract/LabeledExpand
// prepend to every input, per draft-02 §4. It must never vary: every
// labeled HKDF output, and so every derived key, depends on it.
const labelPrefix = "HPKE-v1"

// kemSuiteID returns "KEM" || I2OSP(kemID, 2), the domain-separation
// string used by KEM-scoped labeled HKDF calls (eae_prk, shared_secret,
// dkp_prk, sk, candidate).
func kemSuiteID(kemID uint16) []byte {
	return binary.BigEndian.AppendUint16([]byte("KEM"), kemID)
}

// fullSuiteID returns "HPKE" || I2OSP(kemID,2) || I2OSP(kdfID,2) ||
// I2OSP(aeadID,2), the domain-separation string used by the key schedule
// (psk_id_hash, info_hash, psk_hash, secret, key, nonce, exp, sec).
func fullSuiteID(kemID, kdfID, aeadID uint16) []byte {
	id := make([]byte, 0, 4+2+2+2)
	id = append(id, []byte("HPKE")...)
	id = binary.BigEndian.AppendUint16(id, kemID)
	id = binary.BigEndian.AppendUint16(id, kdfID)
	id = binary.BigEndian.AppendUint16(id, aeadID)
	return id
}

// Suite is a fully resolved HPKE ciphersuite: one KEM, one KDF, one AEAD.
type Suite struct {
	kem  kemScheme
	kdf  KDF
	aead AEAD
}

// NewSuite resolves a ciphersuite from its three wire identifiers. It
// returns an error if any identifier names an unsupported or unknown
// algorithm.
func NewSuite(kemID, kdfID, aeadID uint16) (*Suite, error) {
	kem, err := lookupKEM(kemID)
	if err != nil {
		return nil, err
	}
	kdf, err := lookupKDF(kdfID)
	if err != nil {
		return nil, err
	}
	aead, err := lookupAEAD(aeadID)
	if err != nil {
		return nil, err
	}
	return &Suite{kem: kem, kdf: kdf, aead: aead}, nil
}

// KEMID, KDFID, and AEADID report the wire identifiers this Suite was
// constructed from.
func (s *Suite) KEMID() uint16  { return s.kem.id() }
func (s *Suite) KDFID() uint16  { return s.kdf.ID() }
func (s *Suite) AEADID() uint16 { return s.aead.ID() }

func (s *Suite) suiteID() []byte {
	return fullSuiteID(s.kem.id(), s.kdf.ID(), s.aead.ID())
}
