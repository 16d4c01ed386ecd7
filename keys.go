// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import "fmt"

// GenerateKeypair implements draft-02 §5.1's GenerateKeyPair for this
// Suite's KEM: it draws Nsk bytes of randomness and derives a keypair
// from it via DeriveKeypair.
func (s *Suite) GenerateKeypair() (sk, pk []byte, err error) {
	return s.kem.GenKeypair()
}

// DeriveKeypair implements draft-02 §7.1.3's DeriveKeyPair for this
// Suite's KEM: it deterministically expands ikm into a keypair. ikm
// should carry as much entropy as a private key (Nsk bytes).
func (s *Suite) DeriveKeypair(ikm []byte) (sk, pk []byte, err error) {
	return s.kem.kex.DeriveKeypair(ikm)
}

// SkToPK maps a private key to its public key (draft-02 §4.1).
func (s *Suite) SkToPK(sk []byte) (pk []byte, err error) {
	return s.kem.kex.SkToPK(sk)
}

// ParsePublicKey validates the wire encoding of a public key: exact
// length, and (for P-256) a valid non-identity curve point.
func (s *Suite) ParsePublicKey(pk []byte) error {
	return s.kem.kex.ParsePublicKey(pk)
}

// ParsePrivateKey validates the wire encoding of a private key: exact
// length, and (for P-256) a non-zero scalar within the group order.
func (s *Suite) ParsePrivateKey(sk []byte) error {
	return s.kem.kex.ParsePrivateKey(sk)
}

// ParseTag validates that tag is exactly this Suite's AEAD tag length
// (Nt), returning ErrInvalidEncoding otherwise.
func (s *Suite) ParseTag(tag []byte) error {
	if len(tag) != s.aead.TagSize() {
		return fmt.Errorf("hpke: tag must be %d bytes: %w", s.aead.TagSize(), ErrInvalidEncoding)
	}
	return nil
}

// Npk, Nsk, and Ndh report this Suite's KEM serialization sizes
// (draft-02 §7.1: public key, private key, and KEX result byte lengths).
func (s *Suite) Npk() int { return s.kem.kex.Npk() }
func (s *Suite) Nsk() int { return s.kem.kex.Nsk() }
func (s *Suite) Ndh() int { return s.kem.kex.Ndh() }

// Nk, Nn, and Nt report this Suite's AEAD sizes (draft-02 §7.3: key,
// nonce, and tag byte lengths). Nh reports the KDF's digest size.
func (s *Suite) Nk() int { return s.aead.KeySize() }
func (s *Suite) Nn() int { return s.aead.NonceSize() }
func (s *Suite) Nt() int { return s.aead.TagSize() }
func (s *Suite) Nh() int { return s.kdf.Nh() }
