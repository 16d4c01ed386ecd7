// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import (
	"bytes"
	"errors"
	"testing"
)

// lowOrderPoint has order 8 on Curve25519: any clamped scalar (a multiple
// of the cofactor 8) annihilates it, so KEX must reject it as the
// all-zero shared secret regardless of which private key is used.
var lowOrderPoint = []byte{
	0x5f, 0x9c, 0x95, 0xbc, 0xa3, 0x50, 0x8c, 0x24, 0xb1, 0xd0,
	0xb1, 0x55, 0x9c, 0x83, 0xef, 0x5b, 0x04, 0x44, 0x5c, 0xc4, 0x58, 0x1c,
	0x8e, 0x86, 0xd8, 0x22, 0x4e, 0xdd, 0xd0, 0x9f, 0x11, 0xd7,
}

func TestX25519ZeroDHRejected(t *testing.T) {
	kex := x25519KEX{}
	sk, _, err := kex.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	_, err = kex.KEX(sk, lowOrderPoint)
	if !errors.Is(err, ErrInvalidKeyExchange) {
		t.Fatalf("KEX with low-order point = %v, want ErrInvalidKeyExchange", err)
	}
}

func TestX25519KeypairRoundTrip(t *testing.T) {
	kex := x25519KEX{}
	sk, pk, err := kex.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	derivedPK, err := kex.SkToPK(sk)
	if err != nil {
		t.Fatalf("SkToPK: %v", err)
	}
	if !bytes.Equal(pk, derivedPK) {
		t.Fatal("GenerateKeypair's public key does not match SkToPK(sk)")
	}

	peerSK, peerPK, err := kex.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	dh1, err := kex.KEX(sk, peerPK)
	if err != nil {
		t.Fatalf("KEX: %v", err)
	}
	dh2, err := kex.KEX(peerSK, pk)
	if err != nil {
		t.Fatalf("KEX: %v", err)
	}
	if !bytes.Equal(dh1, dh2) {
		t.Fatal("X25519 DH is not commutative across the two derived keypairs")
	}
}

func TestX25519DeriveKeypairDeterministic(t *testing.T) {
	ikm := []byte("a sufficiently long seed for X25519 key derivation")
	kex := x25519KEX{}
	sk1, pk1, err := kex.DeriveKeypair(ikm)
	if err != nil {
		t.Fatalf("DeriveKeypair: %v", err)
	}
	sk2, pk2, err := kex.DeriveKeypair(ikm)
	if err != nil {
		t.Fatalf("DeriveKeypair: %v", err)
	}
	if !bytes.Equal(sk1, sk2) || !bytes.Equal(pk1, pk2) {
		t.Fatal("DeriveKeypair is not deterministic for the same ikm")
	}
}

func TestX25519ParseRejectsWrongLength(t *testing.T) {
	kex := x25519KEX{}
	if err := kex.ParsePublicKey(make([]byte, 31)); err == nil {
		t.Fatal("expected error for short public key")
	}
	if err := kex.ParsePrivateKey(make([]byte, 33)); err == nil {
		t.Fatal("expected error for long private key")
	}
}
