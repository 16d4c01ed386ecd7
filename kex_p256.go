// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import (
	"crypto/ecdh"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"
)

// p256KEX implements KeyExchange for DHKEM(P-256, HKDF-SHA256), draft-02
// §7.1. Group arithmetic is delegated to the standard library's
// crypto/ecdh, exactly as tag/internal/hpke.DHKEMSender/DHKEMRecipient
// do for this same ciphersuite.
type p256KEX struct{}

const (
	p256PublicKeySize  = 65 // SEC1 uncompressed: 0x04 || X || Y
	p256PrivateKeySize = 32
)

func (p256KEX) Npk() int { return p256PublicKeySize }
func (p256KEX) Nsk() int { return p256PrivateKeySize }
func (p256KEX) Ndh() int { return 32 }

func (p256KEX) ParsePublicKey(pk []byte) error {
	if _, err := ecdh.P256().NewPublicKey(pk); err != nil {
		return fmt.Errorf("hpke: %v: %w", err, ErrInvalidEncoding)
	}
	return nil
}

func (p256KEX) ParsePrivateKey(sk []byte) error {
	if _, err := ecdh.P256().NewPrivateKey(sk); err != nil {
		return fmt.Errorf("hpke: %v: %w", err, ErrInvalidEncoding)
	}
	return nil
}

func (p256KEX) SkToPK(sk []byte) ([]byte, error) {
	priv, err := ecdh.P256().NewPrivateKey(sk)
	if err != nil {
		return nil, fmt.Errorf("hpke: %v: %w", err, ErrInvalidEncoding)
	}
	return priv.PublicKey().Bytes(), nil
}

func (p256KEX) KEX(sk, pk []byte) ([]byte, error) {
	priv, err := ecdh.P256().NewPrivateKey(sk)
	if err != nil {
		return nil, fmt.Errorf("hpke: %v: %w", err, ErrInvalidEncoding)
	}
	pub, err := ecdh.P256().NewPublicKey(pk)
	if err != nil {
		return nil, fmt.Errorf("hpke: %v: %w", err, ErrInvalidEncoding)
	}
	// crypto/ecdh.PrivateKey.ECDH returns the X coordinate of the shared
	// point and fails iff the result would be the point at infinity: a
	// non-identity private key times a non-identity public key in a
	// prime-order group is never the identity, but ECDH returns an error
	// for the degenerate case anyway, which we surface as InvalidKeyExchange.
	dh, err := priv.ECDH(pub)
	if err != nil {
		return nil, fmt.Errorf("hpke: %v: %w", err, ErrInvalidKeyExchange)
	}
	return dh, nil
}

func (kex p256KEX) GenerateKeypair() (sk, pk []byte, err error) {
	ikm := make([]byte, p256PrivateKeySize)
	if _, err := rand.Read(ikm); err != nil {
		return nil, nil, err
	}
	return kex.DeriveKeypair(ikm)
}

// p256Order is the order of the P-256 base point, used by DeriveKeypair to
// reject out-of-range candidate scalars (draft-02 §7.1.3).
var p256Order = elliptic.P256().Params().N

// DeriveKeypair implements draft-02 §7.1.3's DeriveKeyPair for P-256:
// expand labeled candidates until one falls in [1, order), per
// original_source/src/kex/ecdh_nistp.rs.
func (kex p256KEX) DeriveKeypair(ikm []byte) (sk, pk []byte, err error) {
	kdf := HKDFSHA256()
	suiteID := kemSuiteID(KEM_P256_HKDF_SHA256)
	dkpPRK, err := kdf.LabeledExtract(suiteID, nil, "dkp_prk", ikm)
	if err != nil {
		return nil, nil, err
	}
	for counter := 0; counter <= 255; counter++ {
		candidate, err := kdf.LabeledExpand(suiteID, dkpPRK, "candidate", []byte{byte(counter)}, uint16(p256PrivateKeySize))
		if err != nil {
			return nil, nil, err
		}
		if !scalarInRange(candidate) {
			continue
		}
		pk, err := kex.SkToPK(candidate)
		if err != nil {
			continue
		}
		return candidate, pk, nil
	}
	// Unreachable in practice: the probability of 256 consecutive
	// out-of-range candidates is 2^-8192.
	return nil, nil, fmt.Errorf("hpke: P-256 DeriveKeypair: no valid candidate in 256 attempts")
}

// scalarInRange reports whether candidate, interpreted as a big-endian
// unsigned integer, is in [1, order).
func scalarInRange(candidate []byte) bool {
	n := new(big.Int).SetBytes(candidate)
	return n.Sign() > 0 && n.Cmp(p256Order) < 0
}
