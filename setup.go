// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

// SetupSender implements draft-02 §6.1's SetupBaseS / SetupAuthS /
// SetupPSKS / SetupAuthPSKS, dispatching on mode: it runs Encap (or
// AuthEncap, when mode carries a sender identity keypair) against the
// recipient's public key, then derives the encryption context via
// KeySchedule. It returns the encapsulated key to send to the recipient
// alongside the sender's context.
func (s *Suite) SetupSender(mode SenderMode, pkRecip, info []byte) (enc []byte, ctx *SenderContext, err error) {
	if err := s.kem.kex.ParsePublicKey(pkRecip); err != nil {
		return nil, nil, err
	}

	var sharedSecret []byte
	if skSender, pkSender, ok := mode.senderIdentityKeypair(); ok {
		sharedSecret, enc, err = s.kem.AuthEncap(pkRecip, skSender, pkSender)
	} else {
		sharedSecret, enc, err = s.kem.Encap(pkRecip)
	}
	if err != nil {
		return nil, nil, err
	}

	key, baseNonce, exporterSecret, err := s.KeySchedule(mode, sharedSecret, info)
	if err != nil {
		return nil, nil, err
	}
	c, err := newContext(s, key, baseNonce, exporterSecret)
	if err != nil {
		return nil, nil, err
	}
	return enc, &SenderContext{c}, nil
}

// SetupReceiver implements draft-02 §6.1's SetupBaseR / SetupAuthR /
// SetupPSKR / SetupAuthPSKR: it runs Decap (or AuthDecap, when mode
// carries the sender's identity public key) against the recipient's
// private key and the encapsulated key, then derives the decryption
// context via KeySchedule.
func (s *Suite) SetupReceiver(mode ReceiverMode, skRecip, enc, info []byte) (ctx *ReceiverContext, err error) {
	var sharedSecret []byte
	if pkSender, ok := mode.senderIdentityPublicKey(); ok {
		sharedSecret, err = s.kem.AuthDecap(skRecip, enc, pkSender)
	} else {
		sharedSecret, err = s.kem.Decap(skRecip, enc)
	}
	if err != nil {
		return nil, err
	}

	key, baseNonce, exporterSecret, err := s.KeySchedule(mode, sharedSecret, info)
	if err != nil {
		return nil, err
	}
	c, err := newContext(s, key, baseNonce, exporterSecret)
	if err != nil {
		return nil, err
	}
	return &ReceiverContext{c}, nil
}
