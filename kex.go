// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import "fmt"

// KeyExchange is the Diffie-Hellman group a DHKEM is built over (draft-02
// §4.1). Implementations never construct a PrivateKey that serializes to
// zero, and SkToPK/KEX never return the identity element.
type KeyExchange interface {
	// GenerateKeypair draws Nsk bytes of entropy and derives a keypair
	// from it via DeriveKeypair, as draft-02 §5.1's GenerateKeyPair.
	GenerateKeypair() (sk, pk []byte, err error)

	// DeriveKeypair deterministically expands ikm into a keypair,
	// draft-02 §7.1.3.
	DeriveKeypair(ikm []byte) (sk, pk []byte, err error)

	// SkToPK maps a private key to its public key by scalar-multiplying
	// the group generator.
	SkToPK(sk []byte) (pk []byte, err error)

	// KEX performs the group Diffie-Hellman operation and returns the
	// serialized result. It returns ErrInvalidKeyExchange if the result is
	// the all-zero string (X25519) or the group identity (P-256).
	KEX(sk, pk []byte) (dh []byte, err error)

	// ParsePublicKey validates that pk has the expected length. P-256 also
	// rejects off-curve and identity points; X25519 checks the length
	// only, and low-order points are rejected later by KEX.
	ParsePublicKey(pk []byte) error

	// ParsePrivateKey validates that sk has the expected length. P-256
	// also rejects a zero or out-of-range scalar; X25519 checks the
	// length only.
	ParsePrivateKey(sk []byte) error

	Npk() int // public key encoding size
	Nsk() int // private key encoding size
	Ndh() int // KEX result size
}

func lookupKeyExchange(kemID uint16) (KeyExchange, error) {
	switch kemID {
	case KEM_X25519_HKDF_SHA256:
		return x25519KEX{}, nil
	case KEM_P256_HKDF_SHA256:
		return p256KEX{}, nil
	default:
		return nil, fmt.Errorf("hpke: unsupported KEM id %#04x", kemID)
	}
}
