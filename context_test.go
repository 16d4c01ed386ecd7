// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func mustSuite(t *testing.T, kemID, kdfID, aeadID uint16) *Suite {
	t.Helper()
	s, err := NewSuite(kemID, kdfID, aeadID)
	if err != nil {
		t.Fatalf("NewSuite: %v", err)
	}
	return s
}

// roundTripCiphersuites covers both KEMs and all three AEADs, matching
// spec.md §8's "for all valid ciphersuite choices" qualifier.
func roundTripCiphersuites() []struct{ kem, kdf, aead uint16 } {
	return []struct{ kem, kdf, aead uint16 }{
		{KEM_X25519_HKDF_SHA256, KDF_HKDF_SHA256, AEAD_CHACHA20POLY1305},
		{KEM_X25519_HKDF_SHA256, KDF_HKDF_SHA256, AEAD_AES128GCM},
		{KEM_X25519_HKDF_SHA256, KDF_HKDF_SHA384, AEAD_AES256GCM},
		{KEM_P256_HKDF_SHA256, KDF_HKDF_SHA256, AEAD_CHACHA20POLY1305},
		{KEM_P256_HKDF_SHA256, KDF_HKDF_SHA512, AEAD_AES256GCM},
	}
}

// TestRoundTripCorrectness is spec.md §8 invariant 1 and the "Round-trip
// happy path" seed scenario.
func TestRoundTripCorrectness(t *testing.T) {
	info := []byte("why would you think in a million years that that would actually work")
	msg := []byte("Love it or leave it, you better gain way")
	aad := []byte("You better hit the road")

	for _, cs := range roundTripCiphersuites() {
		suite := mustSuite(t, cs.kem, cs.kdf, cs.aead)
		skRecip, pkRecip, err := suite.GenerateKeypair()
		if err != nil {
			t.Fatalf("GenerateKeypair: %v", err)
		}
		enc, sender, err := suite.SetupSender(BaseSenderMode(), pkRecip, info)
		if err != nil {
			t.Fatalf("SetupSender: %v", err)
		}
		receiver, err := suite.SetupReceiver(BaseReceiverMode(), skRecip, enc, info)
		if err != nil {
			t.Fatalf("SetupReceiver: %v", err)
		}

		pt := append([]byte{}, msg...)
		tag, err := sender.Seal(pt, aad)
		if err != nil {
			t.Fatalf("Seal: %v", err)
		}
		if bytes.Equal(pt, msg) {
			t.Fatal("ciphertext equals plaintext")
		}

		if err := receiver.Open(pt, aad, tag); err != nil {
			t.Fatalf("Open: %v", err)
		}
		if !bytes.Equal(pt, msg) {
			t.Fatalf("Open recovered %q, want %q", pt, msg)
		}
	}
}

// TestOrderSensitivity is spec.md §8 invariant 2: reordering two
// ciphertexts from the same sender makes both opens fail.
func TestOrderSensitivity(t *testing.T) {
	suite := mustSuite(t, KEM_X25519_HKDF_SHA256, KDF_HKDF_SHA256, AEAD_CHACHA20POLY1305)
	skRecip, pkRecip, _ := suite.GenerateKeypair()
	info := []byte("order sensitivity")
	enc, sender, err := suite.SetupSender(BaseSenderMode(), pkRecip, info)
	if err != nil {
		t.Fatalf("SetupSender: %v", err)
	}
	receiver, err := suite.SetupReceiver(BaseReceiverMode(), skRecip, enc, info)
	if err != nil {
		t.Fatalf("SetupReceiver: %v", err)
	}

	pt1 := []byte("first message")
	tag1, err := sender.Seal(pt1, nil)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	pt2 := []byte("second message")
	tag2, err := sender.Seal(pt2, nil)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	// Deliver out of order: open the second ciphertext first.
	if err := receiver.Open(append([]byte{}, pt2...), nil, tag2); err == nil {
		t.Fatal("expected InvalidTag opening out-of-order ciphertext 2, got nil")
	} else if !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("opening ciphertext 2 out of order: got %v, want ErrInvalidTag", err)
	}
	if err := receiver.Open(append([]byte{}, pt1...), nil, tag1); err == nil {
		t.Fatal("expected InvalidTag opening out-of-order ciphertext 1, got nil")
	} else if !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("opening ciphertext 1 out of order: got %v, want ErrInvalidTag", err)
	}
}

// TestExporterIdempotence is spec.md §8's "Exporter idempotence" seed
// scenario and invariant 3: export is stable across intervening seals.
func TestExporterIdempotence(t *testing.T) {
	suite := mustSuite(t, KEM_X25519_HKDF_SHA256, KDF_HKDF_SHA256, AEAD_CHACHA20POLY1305)
	_, pkRecip, _ := suite.GenerateKeypair()
	_, sender, err := suite.SetupSender(BaseSenderMode(), pkRecip, []byte("info"))
	if err != nil {
		t.Fatalf("SetupSender: %v", err)
	}

	exportCtx := []byte("test_export_idempotence")
	s1, err := sender.Export(exportCtx, 32)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if _, err := sender.Seal([]byte("back hand"), nil); err != nil {
		t.Fatalf("Seal: %v", err)
	}
	s2, err := sender.Export(exportCtx, 32)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.Equal(s1, s2) {
		t.Fatal("exporter output changed after an intervening Seal")
	}
}

// TestExporterMatchesBetweenSenderAndReceiver is spec.md §8 invariant 3.
func TestExporterMatchesBetweenSenderAndReceiver(t *testing.T) {
	suite := mustSuite(t, KEM_X25519_HKDF_SHA256, KDF_HKDF_SHA256, AEAD_CHACHA20POLY1305)
	skRecip, pkRecip, _ := suite.GenerateKeypair()
	info := []byte("exporter match")
	enc, sender, err := suite.SetupSender(BaseSenderMode(), pkRecip, info)
	if err != nil {
		t.Fatalf("SetupSender: %v", err)
	}
	receiver, err := suite.SetupReceiver(BaseReceiverMode(), skRecip, enc, info)
	if err != nil {
		t.Fatalf("SetupReceiver: %v", err)
	}

	senderExp, err := sender.Export([]byte("ctx"), 32)
	if err != nil {
		t.Fatalf("sender Export: %v", err)
	}
	if _, err := sender.Seal([]byte("hello"), nil); err != nil {
		t.Fatalf("Seal: %v", err)
	}
	receiverExp, err := receiver.Export([]byte("ctx"), 32)
	if err != nil {
		t.Fatalf("receiver Export: %v", err)
	}
	if !bytes.Equal(senderExp, receiverExp) {
		t.Fatal("sender and receiver exporter secrets disagree")
	}
}

// TestSeqOverflow is spec.md §8 invariant 6 and the "Overflow" seed
// scenario: seeding seq = 2^64-1 allows exactly one more Seal/Open, then
// both return ErrSeqOverflow.
func TestSeqOverflow(t *testing.T) {
	suite := mustSuite(t, KEM_X25519_HKDF_SHA256, KDF_HKDF_SHA256, AEAD_CHACHA20POLY1305)
	skRecip, pkRecip, _ := suite.GenerateKeypair()
	info := []byte("overflow")
	enc, sender, err := suite.SetupSender(BaseSenderMode(), pkRecip, info)
	if err != nil {
		t.Fatalf("SetupSender: %v", err)
	}
	receiver, err := suite.SetupReceiver(BaseReceiverMode(), skRecip, enc, info)
	if err != nil {
		t.Fatalf("SetupReceiver: %v", err)
	}
	sender.seq = math.MaxUint64
	receiver.seq = math.MaxUint64

	pt := []byte("draxx them sklounst")
	aad := []byte("with my prayers")
	tag, err := sender.Seal(pt, aad)
	if err != nil {
		t.Fatalf("last valid Seal: %v", err)
	}
	if !sender.overflowed {
		t.Fatal("sender did not latch overflowed after seq reached MaxUint64")
	}
	if err := receiver.Open(pt, aad, tag); err != nil {
		t.Fatalf("last valid Open: %v", err)
	}
	if !receiver.overflowed {
		t.Fatal("receiver did not latch overflowed after seq reached MaxUint64")
	}

	if _, err := sender.Seal([]byte("one more"), nil); !errors.Is(err, ErrSeqOverflow) {
		t.Fatalf("Seal after overflow = %v, want ErrSeqOverflow", err)
	}
	if err := receiver.Open([]byte("one more"), nil, tag); !errors.Is(err, ErrSeqOverflow) {
		t.Fatalf("Open after overflow = %v, want ErrSeqOverflow", err)
	}
}
