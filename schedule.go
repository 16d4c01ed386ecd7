// Copyright 2024 The Go HPKE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpke

// opMode is satisfied by both SenderMode and ReceiverMode: the key
// schedule only needs the mode id and PSK bundle, never the identity key
// material (spec §4.4, design note §9 "polymorphism over OpMode").
type opMode interface {
	modeID() byte
	pskBytes() []byte
	pskID() []byte
}

// KeySchedule implements draft-02 §6.1's KeySchedule: it binds mode,
// PSK, shared secret, and info into a key, base nonce, and exporter
// secret. Grounded on tag/internal/hpke.newContext and
// original_source/src/setup.rs's derive_enc_ctx.
func (s *Suite) KeySchedule(mode opMode, sharedSecret, info []byte) (key, baseNonce, exporterSecret []byte, err error) {
	suiteID := s.suiteID()
	kdf := s.kdf

	pskIDHash, err := kdf.LabeledExtract(suiteID, nil, "psk_id_hash", mode.pskID())
	if err != nil {
		return nil, nil, nil, err
	}
	infoHash, err := kdf.LabeledExtract(suiteID, nil, "info_hash", info)
	if err != nil {
		return nil, nil, nil, err
	}

	// sched_ctx = mode_id || psk_id_hash || info_hash, built in a buffer
	// sized for the worst case (spec §4.4/§5: no heap growth beyond one
	// allocation bounded by 1 + 2*MAX_DIGEST_SIZE).
	schedCtx := make([]byte, 0, 1+2*64)
	schedCtx = append(schedCtx, mode.modeID())
	schedCtx = append(schedCtx, pskIDHash...)
	schedCtx = append(schedCtx, infoHash...)

	pskHash, err := kdf.LabeledExtract(suiteID, nil, "psk_hash", mode.pskBytes())
	if err != nil {
		return nil, nil, nil, err
	}
	secret, err := kdf.LabeledExtract(suiteID, pskHash, "secret", sharedSecret)
	if err != nil {
		return nil, nil, nil, err
	}

	key, err = kdf.LabeledExpand(suiteID, secret, "key", schedCtx, uint16(s.aead.KeySize()))
	if err != nil {
		return nil, nil, nil, err
	}
	baseNonce, err = kdf.LabeledExpand(suiteID, secret, "nonce", schedCtx, uint16(s.aead.NonceSize()))
	if err != nil {
		return nil, nil, nil, err
	}
	exporterSecret, err = kdf.LabeledExpand(suiteID, secret, "exp", schedCtx, uint16(kdf.Nh()))
	if err != nil {
		return nil, nil, nil, err
	}
	return key, baseNonce, exporterSecret, nil
}
