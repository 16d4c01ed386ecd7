// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// x25519KEX implements KeyExchange for DHKEM(X25519, HKDF-SHA256),
// draft-02 §7.1. Scalar multiplication is delegated to
// golang.org/x/crypto/curve25519, the same primitive age's own X25519
// recipient/identity types use (internal/age/x25519.go).
type x25519KEX struct{}

const x25519Size = 32

func (x25519KEX) Npk() int { return x25519Size }
func (x25519KEX) Nsk() int { return x25519Size }
func (x25519KEX) Ndh() int { return x25519Size }

func (x25519KEX) ParsePublicKey(pk []byte) error {
	if len(pk) != x25519Size {
		return fmt.Errorf("hpke: X25519 public key must be %d bytes: %w", x25519Size, ErrInvalidEncoding)
	}
	// The all-zero point and other low-order points are rejected at KEX
	// time (the all-zero-output check), not at parse time: X25519 public
	// keys are not required to be canonical group elements to be parsed.
	return nil
}

func (x25519KEX) ParsePrivateKey(sk []byte) error {
	if len(sk) != x25519Size {
		return fmt.Errorf("hpke: X25519 private key must be %d bytes: %w", x25519Size, ErrInvalidEncoding)
	}
	return nil
}

func (x25519KEX) SkToPK(sk []byte) ([]byte, error) {
	if err := (x25519KEX{}).ParsePrivateKey(sk); err != nil {
		return nil, err
	}
	pk, err := curve25519.X25519(sk, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("hpke: %v: %w", err, ErrInvalidKeyExchange)
	}
	return pk, nil
}

func (x25519KEX) KEX(sk, pk []byte) ([]byte, error) {
	if err := (x25519KEX{}).ParsePrivateKey(sk); err != nil {
		return nil, err
	}
	if err := (x25519KEX{}).ParsePublicKey(pk); err != nil {
		return nil, err
	}
	dh, err := curve25519.X25519(sk, pk)
	if err != nil {
		return nil, fmt.Errorf("hpke: %v: %w", err, ErrInvalidKeyExchange)
	}
	// "Senders and recipients MUST check whether the shared secret is the
	// all-zero value and abort if so" (draft-02 §7.1.1). curve25519.X25519
	// already reports an all-zero result (from low-order and small-subgroup
	// inputs) as an error, handled above; this check repeats it in constant
	// time over the full Ndh bytes per design note §9.
	var zero [x25519Size]byte
	if subtle.ConstantTimeCompare(dh, zero[:]) == 1 {
		return nil, ErrInvalidKeyExchange
	}
	return dh, nil
}

func (kex x25519KEX) GenerateKeypair() (sk, pk []byte, err error) {
	ikm := make([]byte, x25519Size)
	if _, err := rand.Read(ikm); err != nil {
		return nil, nil, err
	}
	return kex.DeriveKeypair(ikm)
}

// DeriveKeypair implements draft-02 §7.1.3's DeriveKeyPair for X25519:
//
//	dkp_prk = LabeledExtract("", "dkp_prk", ikm)
//	sk      = LabeledExpand(dkp_prk, "sk", "", Nsk)
func (kex x25519KEX) DeriveKeypair(ikm []byte) (sk, pk []byte, err error) {
	kdf := HKDFSHA256()
	suiteID := kemSuiteID(KEM_X25519_HKDF_SHA256)
	dkpPRK, err := kdf.LabeledExtract(suiteID, nil, "dkp_prk", ikm)
	if err != nil {
		return nil, nil, err
	}
	sk, err = kdf.LabeledExpand(suiteID, dkpPRK, "sk", nil, uint16(x25519Size))
	if err != nil {
		return nil, nil, err
	}
	pk, err = kex.SkToPK(sk)
	if err != nil {
		return nil, nil, err
	}
	return sk, pk, nil
}
