// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KDF is the primitive adapter for an HKDF hash function, exposing the
// labeled-extract and labeled-expand operations that provide HPKE's
// domain separation (draft-02 §4).
type KDF interface {
	// LabeledExtract computes HKDF-Extract(salt, labelPrefix || suiteID ||
	// label || ikm).
	LabeledExtract(suiteID, salt []byte, label string, ikm []byte) ([]byte, error)

	// LabeledExpand computes HKDF-Expand(prk, I2OSP(length,2) ||
	// labelPrefix || suiteID || label || info, length). It fails with
	// ErrInvalidKdfLength when length exceeds 255 times the hash's output
	// size.
	LabeledExpand(suiteID, prk []byte, label string, info []byte, length uint16) ([]byte, error)

	// ID is this KDF's draft-02 §8.2 wire identifier.
	ID() uint16

	// Nh is the KDF's digest output size in bytes.
	Nh() int
}

type hkdfKDF struct {
	hash func() hash.Hash
	id   uint16
	nh   int
}

// HKDFSHA256 is DHKEM's and HPKE's HKDF-SHA256, draft-02 §7.2.
func HKDFSHA256() KDF { return &hkdfKDF{hash: sha256.New, id: KDF_HKDF_SHA256, nh: 32} }

// HKDFSHA384 is HKDF-SHA384, draft-02 §7.2.
func HKDFSHA384() KDF { return &hkdfKDF{hash: sha512.New384, id: KDF_HKDF_SHA384, nh: 48} }

// HKDFSHA512 is HKDF-SHA512, draft-02 §7.2.
func HKDFSHA512() KDF { return &hkdfKDF{hash: sha512.New, id: KDF_HKDF_SHA512, nh: 64} }

func (k *hkdfKDF) ID() uint16 { return k.id }
func (k *hkdfKDF) Nh() int    { return k.nh }

func (k *hkdfKDF) LabeledExtract(suiteID, salt []byte, label string, ikm []byte) ([]byte, error) {
	labeledIKM := make([]byte, 0, len(labelPrefix)+len(suiteID)+len(label)+len(ikm))
	labeledIKM = append(labeledIKM, labelPrefix...)
	labeledIKM = append(labeledIKM, suiteID...)
	labeledIKM = append(labeledIKM, label...)
	labeledIKM = append(labeledIKM, ikm...)
	return hkdf.Extract(k.hash, labeledIKM, salt), nil
}

func (k *hkdfKDF) LabeledExpand(suiteID, prk []byte, label string, info []byte, length uint16) ([]byte, error) {
	if int(length) > 255*k.nh {
		return nil, fmt.Errorf("hpke: expand length %d exceeds 255*Nh: %w", length, ErrInvalidKdfLength)
	}
	labeledInfo := make([]byte, 0, 2+len(labelPrefix)+len(suiteID)+len(label)+len(info))
	labeledInfo = binary.BigEndian.AppendUint16(labeledInfo, length)
	labeledInfo = append(labeledInfo, labelPrefix...)
	labeledInfo = append(labeledInfo, suiteID...)
	labeledInfo = append(labeledInfo, label...)
	labeledInfo = append(labeledInfo, info...)

	out := make([]byte, length)
	r := hkdf.Expand(k.hash, prk, labeledInfo)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func lookupKDF(id uint16) (KDF, error) {
	switch id {
	case KDF_HKDF_SHA256:
		return HKDFSHA256(), nil
	case KDF_HKDF_SHA384:
		return HKDFSHA384(), nil
	case KDF_HKDF_SHA512:
		return HKDFSHA512(), nil
	default:
		return nil, fmt.Errorf("hpke: unsupported KDF id %#04x", id)
	}
}
