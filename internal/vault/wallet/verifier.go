package wallet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

var (
	ErrNoPartialSigs   = errors.New("signed psbt carries no partial signatures")
	ErrMissingUTXO     = errors.New("input is missing its previous output")
	ErrForeignKey      = errors.New("signature key is not part of the witness script")
	ErrSignatureFailed = errors.New("partial signature does not verify")
	ErrInputMismatch   = errors.New("signed input differs from the proposal")
)

// VerifySignature checks every partial signature in signed against the
// BIP-143 sighash of the proposal's transaction. Scripts and amounts come from
// the proposal; a signed input that carries different ones is rejected. Blobs
// that verified before are accepted from cache.
func (w *Wallet) VerifySignature(ctx context.Context, proposal, signed []byte) (err error) {
	started := time.Now()
	defer func() {
		w.metrics.Observe("verify_signature", err, started)
	}()
	if err = ctx.Err(); err != nil {
		return err
	}

	key := chainhash.HashH(append(append([]byte(nil), proposal...), signed...))
	if w.verified.Contains(key) {
		return nil
	}

	base, err := decodePacket(proposal)
	if err != nil {
		return err
	}
	in, err := decodePacket(signed)
	if err != nil {
		return err
	}
	tx := in.packet.UnsignedTx
	if tx.TxHash() != base.packet.UnsignedTx.TxHash() || len(in.packet.Inputs) != len(tx.TxIn) {
		return ErrTxMismatch
	}

	prevOuts := make(map[wire.OutPoint]*wire.TxOut, len(tx.TxIn))
	for i, txIn := range tx.TxIn {
		bin := base.packet.Inputs[i]
		if !sameInput(bin, in.packet.Inputs[i]) {
			return fmt.Errorf("input %d: %w", i, ErrInputMismatch)
		}
		out, err := previousOutput(bin.WitnessUtxo, bin.NonWitnessUtxo, txIn.PreviousOutPoint)
		if err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
		prevOuts[txIn.PreviousOutPoint] = out
	}
	sigHashes := txscript.NewTxSigHashes(tx, txscript.NewMultiPrevOutFetcher(prevOuts))

	checked := 0
	for i, pin := range in.packet.Inputs {
		if len(pin.PartialSigs) == 0 {
			continue
		}
		script := base.packet.Inputs[i].WitnessScript
		if len(script) == 0 {
			return fmt.Errorf("input %d: %w", i, ErrNotMultisig)
		}
		keys, err := scriptKeys(script)
		if err != nil {
			return fmt.Errorf("input %d: %w: %v", i, ErrNotMultisig, err)
		}
		amount := prevOuts[tx.TxIn[i].PreviousOutPoint].Value
		for _, ps := range pin.PartialSigs {
			if !hasKey(keys, ps.PubKey) {
				return fmt.Errorf("input %d: %w", i, ErrForeignKey)
			}
			if err := verifyPartialSig(tx, sigHashes, i, amount, script, ps.PubKey, ps.Signature); err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			checked++
		}
	}
	if checked == 0 {
		return ErrNoPartialSigs
	}

	w.verified.Add(key, struct{}{})
	return nil
}

func previousOutput(witness *wire.TxOut, full *wire.MsgTx, op wire.OutPoint) (*wire.TxOut, error) {
	if witness != nil {
		return witness, nil
	}
	if full != nil && full.TxHash() == op.Hash && int(op.Index) < len(full.TxOut) {
		return full.TxOut[op.Index], nil
	}
	return nil, ErrMissingUTXO
}

// sameInput reports whether signed keeps the witness script and previous
// output of base. Fields the signer dropped are fine.
func sameInput(base, signed psbt.PInput) bool {
	if len(signed.WitnessScript) > 0 && !bytes.Equal(signed.WitnessScript, base.WitnessScript) {
		return false
	}
	if w := signed.WitnessUtxo; w != nil {
		b := base.WitnessUtxo
		if b == nil || w.Value != b.Value || !bytes.Equal(w.PkScript, b.PkScript) {
			return false
		}
	}
	if n := signed.NonWitnessUtxo; n != nil {
		if base.NonWitnessUtxo == nil || n.TxHash() != base.NonWitnessUtxo.TxHash() {
			return false
		}
	}
	return true
}

func verifyPartialSig(tx *wire.MsgTx, sigHashes *txscript.TxSigHashes, idx int, amount int64, script, pubKey, sig []byte) error {
	if len(sig) < 2 {
		return ErrSignatureFailed
	}
	pub, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return fmt.Errorf("parse pubkey: %w", err)
	}
	hashType := txscript.SigHashType(sig[len(sig)-1])
	parsed, err := ecdsa.ParseDERSignature(sig[:len(sig)-1])
	if err != nil {
		return fmt.Errorf("parse signature: %w", err)
	}
	digest, err := txscript.CalcWitnessSigHash(script, sigHashes, hashType, tx, idx, amount)
	if err != nil {
		return fmt.Errorf("sighash: %w", err)
	}
	if !parsed.Verify(digest, pub) {
		return ErrSignatureFailed
	}
	return nil
}
