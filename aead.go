// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// AEAD is the primitive adapter for an authenticated cipher, exposing the
// fixed key/nonce/tag sizes that are part of a ciphersuite's identity
// (draft-02 §7.3).
type AEAD interface {
	// New returns a cipher.AEAD keyed with key, which must be exactly
	// KeySize() bytes.
	New(key []byte) (cipher.AEAD, error)

	KeySize() int
	NonceSize() int
	TagSize() int
	ID() uint16
}

type gcmAEAD struct {
	keySize int
	id      uint16
}

// AES128GCM is AES-128-GCM, draft-02 §7.3 (Nk=16, Nn=12, Nt=16).
func AES128GCM() AEAD { return &gcmAEAD{keySize: 16, id: AEAD_AES128GCM} }

// AES256GCM is AES-256-GCM, draft-02 §7.3 (Nk=32, Nn=12, Nt=16).
func AES256GCM() AEAD { return &gcmAEAD{keySize: 32, id: AEAD_AES256GCM} }

func (a *gcmAEAD) ID() uint16     { return a.id }
func (a *gcmAEAD) KeySize() int   { return a.keySize }
func (a *gcmAEAD) NonceSize() int { return 12 }
func (a *gcmAEAD) TagSize() int   { return 16 }

func (a *gcmAEAD) New(key []byte) (cipher.AEAD, error) {
	if len(key) != a.keySize {
		return nil, fmt.Errorf("hpke: invalid AES-GCM key size %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

type chachaAEAD struct{}

// ChaCha20Poly1305 is ChaCha20-Poly1305, draft-02 §7.3 (Nk=32, Nn=12, Nt=16).
func ChaCha20Poly1305() AEAD { return &chachaAEAD{} }

func (*chachaAEAD) ID() uint16     { return AEAD_CHACHA20POLY1305 }
func (*chachaAEAD) KeySize() int   { return chacha20poly1305.KeySize }
func (*chachaAEAD) NonceSize() int { return chacha20poly1305.NonceSize }
func (*chachaAEAD) TagSize() int   { return chacha20poly1305.Overhead }

func (*chachaAEAD) New(key []byte) (cipher.AEAD, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("hpke: invalid ChaCha20-Poly1305 key size %d", len(key))
	}
	return chacha20poly1305.New(key)
}

func lookupAEAD(id uint16) (AEAD, error) {
	switch id {
	case AEAD_AES128GCM:
		return AES128GCM(), nil
	case AEAD_AES256GCM:
		return AES256GCM(), nil
	case AEAD_CHACHA20POLY1305:
		return ChaCha20Poly1305(), nil
	default:
		return nil, fmt.Errorf("hpke: unsupported AEAD id %#04x", id)
	}
}
