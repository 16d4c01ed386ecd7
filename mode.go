// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import "fmt"

// modeID values, draft-02 §5.0.
const (
	modeBase    byte = 0x00
	modePsk     byte = 0x01
	modeAuth    byte = 0x02
	modeAuthPsk byte = 0x03
)

// PSKBundle is a pre-shared key and its identifier, carried by Psk and
// AuthPsk modes. Either both fields are non-empty, or both are empty.
type PSKBundle struct {
	PSK   []byte
	PSKID []byte
}

func (b PSKBundle) validate() error {
	if (len(b.PSK) == 0) != (len(b.PSKID) == 0) {
		return fmt.Errorf("hpke: PSK and PSKID must both be empty or both be set")
	}
	return nil
}

// SenderMode selects the sender-side operation mode: which of a
// pre-shared key and a sender identity keypair, if any, authenticate this
// session (draft-02 §5).
type SenderMode struct {
	id  byte
	psk PSKBundle

	// senderIdentitySK/PK are set only in Auth and AuthPsk modes.
	senderIdentitySK []byte
	senderIdentityPK []byte
}

// BaseSenderMode carries no PSK and no sender identity.
func BaseSenderMode() SenderMode {
	return SenderMode{id: modeBase}
}

// PSKSenderMode authenticates with a pre-shared key bundle.
func PSKSenderMode(psk PSKBundle) (SenderMode, error) {
	if err := psk.validate(); err != nil {
		return SenderMode{}, err
	}
	return SenderMode{id: modePsk, psk: psk}, nil
}

// AuthSenderMode authenticates with the sender's own identity keypair.
func AuthSenderMode(senderSK, senderPK []byte) SenderMode {
	return SenderMode{id: modeAuth, senderIdentitySK: senderSK, senderIdentityPK: senderPK}
}

// AuthPSKSenderMode authenticates with both a PSK bundle and the sender's
// identity keypair.
func AuthPSKSenderMode(senderSK, senderPK []byte, psk PSKBundle) (SenderMode, error) {
	if err := psk.validate(); err != nil {
		return SenderMode{}, err
	}
	return SenderMode{id: modeAuthPsk, psk: psk, senderIdentitySK: senderSK, senderIdentityPK: senderPK}, nil
}

func (m SenderMode) modeID() byte      { return m.id }
func (m SenderMode) pskBytes() []byte  { return m.psk.PSK }
func (m SenderMode) pskID() []byte     { return m.psk.PSKID }
func (m SenderMode) hasIdentity() bool { return m.id == modeAuth || m.id == modeAuthPsk }

// senderIdentityKeypair returns the sender's identity keypair, available
// only in Auth and AuthPsk modes.
func (m SenderMode) senderIdentityKeypair() (sk, pk []byte, ok bool) {
	if !m.hasIdentity() {
		return nil, nil, false
	}
	return m.senderIdentitySK, m.senderIdentityPK, true
}

// ReceiverMode selects the receiver-side operation mode: which of a
// pre-shared key and the sender's identity public key, if any, this
// session expects (draft-02 §5).
type ReceiverMode struct {
	id  byte
	psk PSKBundle

	// senderIdentityPK is set only in Auth and AuthPsk modes.
	senderIdentityPK []byte
}

// BaseReceiverMode carries no PSK and expects no sender identity.
func BaseReceiverMode() ReceiverMode {
	return ReceiverMode{id: modeBase}
}

// PSKReceiverMode authenticates with a pre-shared key bundle.
func PSKReceiverMode(psk PSKBundle) (ReceiverMode, error) {
	if err := psk.validate(); err != nil {
		return ReceiverMode{}, err
	}
	return ReceiverMode{id: modePsk, psk: psk}, nil
}

// AuthReceiverMode expects the sender to authenticate with senderPK.
func AuthReceiverMode(senderPK []byte) ReceiverMode {
	return ReceiverMode{id: modeAuth, senderIdentityPK: senderPK}
}

// AuthPSKReceiverMode expects both a PSK bundle and the sender's identity
// public key.
func AuthPSKReceiverMode(senderPK []byte, psk PSKBundle) (ReceiverMode, error) {
	if err := psk.validate(); err != nil {
		return ReceiverMode{}, err
	}
	return ReceiverMode{id: modeAuthPsk, psk: psk, senderIdentityPK: senderPK}, nil
}

func (m ReceiverMode) modeID() byte      { return m.id }
func (m ReceiverMode) pskBytes() []byte  { return m.psk.PSK }
func (m ReceiverMode) pskID() []byte     { return m.psk.PSKID }
func (m ReceiverMode) hasIdentity() bool { return m.id == modeAuth || m.id == modeAuthPsk }

// senderIdentityPublicKey returns the sender's identity public key,
// available only in Auth and AuthPsk modes.
func (m ReceiverMode) senderIdentityPublicKey() (pk []byte, ok bool) {
	if !m.hasIdentity() {
		return nil, false
	}
	return m.senderIdentityPK, true
}
