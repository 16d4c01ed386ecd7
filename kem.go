// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import "fmt"

// kemScheme is the KEM module (spec §4.3): Encap/Decap and their
// authenticated variants, built over a KeyExchange group. Grounded on
// tag/internal/hpke.dhKEM, extended with the Auth variant from
// original_source/src/setup.rs.
type kemScheme struct {
	kex     KeyExchange
	kdf     KDF // always HKDF-SHA256 for both DHKEMs defined here, draft-02 §7.1
	kemID   uint16
	nSecret int
}

func lookupKEM(kemID uint16) (kemScheme, error) {
	kex, err := lookupKeyExchange(kemID)
	if err != nil {
		return kemScheme{}, err
	}
	return kemScheme{kex: kex, kdf: HKDFSHA256(), kemID: kemID, nSecret: 32}, nil
}

func (k kemScheme) id() uint16 { return k.kemID }

// GenKeypair draws Nsk bytes of randomness and derives a keypair from it,
// draft-02 §5.1.
func (k kemScheme) GenKeypair() (sk, pk []byte, err error) {
	return k.kex.GenerateKeypair()
}

// extractAndExpand computes the KEM's ExtractAndExpand primitive
// (draft-02 §4.1): a labeled-extract over the DH output, then a
// labeled-expand over the KEM context into Nsecret bytes.
func (k kemScheme) extractAndExpand(dh, kemContext []byte) ([]byte, error) {
	suiteID := kemSuiteID(k.kemID)
	eaePRK, err := k.kdf.LabeledExtract(suiteID, nil, "eae_prk", dh)
	if err != nil {
		return nil, err
	}
	return k.kdf.LabeledExpand(suiteID, eaePRK, "shared_secret", kemContext, uint16(k.nSecret))
}

// Encap implements draft-02 §6.1's Encap: ephemeral DH against the
// recipient's public key.
func (k kemScheme) Encap(pkRecip []byte) (sharedSecret, enc []byte, err error) {
	skE, pkE, err := k.kex.GenerateKeypair()
	if err != nil {
		return nil, nil, err
	}
	dh, err := k.kex.KEX(skE, pkRecip)
	if err != nil {
		return nil, nil, err
	}
	kemContext := append(append([]byte{}, pkE...), pkRecip...)
	sharedSecret, err = k.extractAndExpand(dh, kemContext)
	if err != nil {
		return nil, nil, err
	}
	return sharedSecret, pkE, nil
}

// Decap implements draft-02 §6.1's Decap, the inverse of Encap.
func (k kemScheme) Decap(skRecip, enc []byte) (sharedSecret []byte, err error) {
	if err := k.kex.ParsePublicKey(enc); err != nil {
		return nil, err
	}
	dh, err := k.kex.KEX(skRecip, enc)
	if err != nil {
		return nil, err
	}
	pkRecip, err := k.kex.SkToPK(skRecip)
	if err != nil {
		return nil, err
	}
	kemContext := append(append([]byte{}, enc...), pkRecip...)
	return k.extractAndExpand(dh, kemContext)
}

// AuthEncap implements draft-02 §6.1's AuthEncap: as Encap, plus a second
// DH between the sender's identity key and the recipient's public key,
// binding both into the KEM context (original_source/src/setup.rs).
func (k kemScheme) AuthEncap(pkRecip, skSender, pkSender []byte) (sharedSecret, enc []byte, err error) {
	skE, pkE, err := k.kex.GenerateKeypair()
	if err != nil {
		return nil, nil, err
	}
	dh1, err := k.kex.KEX(skE, pkRecip)
	if err != nil {
		return nil, nil, err
	}
	dh2, err := k.kex.KEX(skSender, pkRecip)
	if err != nil {
		return nil, nil, err
	}
	dh := append(append([]byte{}, dh1...), dh2...)
	kemContext := append(append(append([]byte{}, pkE...), pkRecip...), pkSender...)
	sharedSecret, err = k.extractAndExpand(dh, kemContext)
	if err != nil {
		return nil, nil, err
	}
	return sharedSecret, pkE, nil
}

// AuthDecap implements draft-02 §6.1's AuthDecap, the inverse of
// AuthEncap.
func (k kemScheme) AuthDecap(skRecip, enc, pkSender []byte) (sharedSecret []byte, err error) {
	if err := k.kex.ParsePublicKey(enc); err != nil {
		return nil, err
	}
	dh1, err := k.kex.KEX(skRecip, enc)
	if err != nil {
		return nil, err
	}
	dh2, err := k.kex.KEX(skRecip, pkSender)
	if err != nil {
		return nil, err
	}
	dh := append(append([]byte{}, dh1...), dh2...)
	pkRecip, err := k.kex.SkToPK(skRecip)
	if err != nil {
		return nil, err
	}
	kemContext := append(append(append([]byte{}, enc...), pkRecip...), pkSender...)
	return k.extractAndExpand(dh, kemContext)
}

func (k kemScheme) String() string {
	return fmt.Sprintf("KEM(%#04x)", k.kemID)
}
