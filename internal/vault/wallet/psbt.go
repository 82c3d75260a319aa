package wallet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/txscript"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

var (
	ErrNoDescriptors  = errors.New("vault has no descriptors")
	ErrTxMismatch     = errors.New("psbt spends a different transaction")
	ErrNotMultisig    = errors.New("input is not a multisig witness script")
	ErrPSBTIncomplete = errors.New("psbt is not fully signed")
)

var psbtMagic = []byte("psbt\xff")

// PSBTUpdate is the merged packet, encoded like the input, and whether every
// input reached its signature threshold.
type PSBTUpdate struct {
	PSBT   []byte
	Ready  bool
	Signed int
}

type encodedPacket struct {
	packet *psbt.Packet
	raw    bool
}

func decodePacket(b []byte) (encodedPacket, error) {
	raw := bytes.HasPrefix(b, psbtMagic)
	p, err := psbt.NewFromRawBytes(bytes.NewReader(b), !raw)
	if err != nil {
		return encodedPacket{}, fmt.Errorf("decode psbt: %w", err)
	}
	return encodedPacket{packet: p, raw: raw}, nil
}

func (e encodedPacket) encode(p *psbt.Packet) ([]byte, error) {
	if e.raw {
		var buf bytes.Buffer
		if err := p.Serialize(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	s, err := p.B64Encode()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func clonePacket(p *psbt.Packet) (*psbt.Packet, error) {
	var buf bytes.Buffer
	if err := p.Serialize(&buf); err != nil {
		return nil, err
	}
	return psbt.NewFromRawBytes(&buf, false)
}

// BuildOrUpdatePSBT merges the partial signatures found in sigs into base.
// Every input of base must spend a script derived from d, and each signed
// blob must spend the same unsigned transaction with the same inputs. Only
// signatures by keys of the input's script are merged. When the merged packet
// finalizes, the finalized packet is returned with Ready set.
func (w *Wallet) BuildOrUpdatePSBT(ctx context.Context, d model.Descriptors, base []byte, sigs [][]byte) (update PSBTUpdate, err error) {
	started := time.Now()
	defer func() {
		w.metrics.Observe("build_psbt", err, started)
	}()
	if err = ctx.Err(); err != nil {
		return PSBTUpdate{}, err
	}
	if d.IsEmpty() {
		return PSBTUpdate{}, ErrNoDescriptors
	}

	enc, err := decodePacket(base)
	if err != nil {
		return PSBTUpdate{}, err
	}
	packet := enc.packet
	txHash := packet.UnsignedTx.TxHash()

	scripts, err := w.vaultScripts(d)
	if err != nil {
		return PSBTUpdate{}, err
	}
	required := make([]int, len(packet.Inputs))
	keys := make([][][]byte, len(packet.Inputs))
	for i, in := range packet.Inputs {
		if len(in.WitnessScript) == 0 {
			return PSBTUpdate{}, fmt.Errorf("input %d: %w", i, ErrNotMultisig)
		}
		if err := scripts.match(in); err != nil {
			return PSBTUpdate{}, fmt.Errorf("input %d: %w", i, err)
		}
		_, numSigs, err := txscript.CalcMultiSigStats(in.WitnessScript)
		if err != nil {
			return PSBTUpdate{}, fmt.Errorf("input %d: %w: %v", i, ErrNotMultisig, err)
		}
		required[i] = numSigs
		if keys[i], err = scriptKeys(in.WitnessScript); err != nil {
			return PSBTUpdate{}, fmt.Errorf("input %d: %w: %v", i, ErrNotMultisig, err)
		}
	}

	for n, blob := range sigs {
		signed, err := decodePacket(blob)
		if err != nil {
			return PSBTUpdate{}, fmt.Errorf("signature %d: %w", n, err)
		}
		if signed.packet.UnsignedTx.TxHash() != txHash || len(signed.packet.Inputs) != len(packet.Inputs) {
			return PSBTUpdate{}, fmt.Errorf("signature %d: %w", n, ErrTxMismatch)
		}
		for i := range packet.Inputs {
			if !sameInput(packet.Inputs[i], signed.packet.Inputs[i]) {
				return PSBTUpdate{}, fmt.Errorf("signature %d input %d: %w", n, i, ErrInputMismatch)
			}
		}
		for i := range packet.Inputs {
			mergePartialSigs(&packet.Inputs[i], signed.packet.Inputs[i].PartialSigs, keys[i], required[i])
		}
	}

	update.Signed = signedInputs(packet, required)

	final, err := clonePacket(packet)
	if err != nil {
		return PSBTUpdate{}, err
	}
	out := packet
	if update.Signed == len(packet.Inputs) {
		if ferr := psbt.MaybeFinalizeAll(final); ferr == nil && final.IsComplete() {
			out = final
			update.Ready = true
		} else if ferr != nil {
			w.logger.Debug("psbt not finalizable yet", zap.Error(ferr))
		}
	}

	update.PSBT, err = enc.encode(out)
	if err != nil {
		return PSBTUpdate{}, fmt.Errorf("encode psbt: %w", err)
	}
	return update, nil
}

func mergePartialSigs(in *psbt.PInput, sigs []*psbt.PartialSig, keys [][]byte, required int) {
	for _, sig := range sigs {
		if len(in.PartialSigs) >= required {
			return
		}
		if !hasKey(keys, sig.PubKey) || hasPartialSig(in, sig.PubKey) {
			continue
		}
		in.PartialSigs = append(in.PartialSigs, &psbt.PartialSig{
			PubKey:    append([]byte(nil), sig.PubKey...),
			Signature: append([]byte(nil), sig.Signature...),
		})
	}
}

func hasPartialSig(in *psbt.PInput, pub []byte) bool {
	for _, s := range in.PartialSigs {
		if bytes.Equal(s.PubKey, pub) {
			return true
		}
	}
	return false
}

// signedInputs counts inputs holding at least their required signatures.
func signedInputs(p *psbt.Packet, required []int) int {
	n := 0
	for i, in := range p.Inputs {
		if len(in.FinalScriptWitness) > 0 || len(in.PartialSigs) >= required[i] {
			n++
		}
	}
	return n
}

// Broadcast extracts the final transaction from a complete packet and hands
// it to the node. It returns the transaction id.
func (w *Wallet) Broadcast(ctx context.Context, b []byte) (txid string, err error) {
	started := time.Now()
	defer func() {
		w.metrics.Observe("broadcast", err, started)
	}()
	if err = ctx.Err(); err != nil {
		return "", err
	}

	enc, err := decodePacket(b)
	if err != nil {
		return "", err
	}
	packet := enc.packet
	if !packet.IsComplete() {
		if err = psbt.MaybeFinalizeAll(packet); err != nil {
			return "", fmt.Errorf("%w: %v", ErrPSBTIncomplete, err)
		}
	}
	tx, err := psbt.Extract(packet)
	if err != nil {
		return "", fmt.Errorf("extract tx: %w", err)
	}
	hash, err := w.node.SendRawTransaction(tx, false)
	if err != nil {
		return "", fmt.Errorf("send raw transaction: %w", err)
	}
	w.logger.Info("transaction broadcast", zap.Stringer("txid", hash))
	return hash.String(), nil
}
