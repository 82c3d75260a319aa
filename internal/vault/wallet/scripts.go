package wallet

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/txscript"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/pkg/safe"
)

var (
	ErrForeignScript     = errors.New("input script is not derived from the vault descriptors")
	ErrMalformedDescript = errors.New("malformed vault descriptor")
)

type multisigDescriptor struct {
	threshold uint32
	keys      []keyExpr
	branch    uint32
}

// parseDescriptor reads back a descriptor produced by BuildDescriptor:
// wsh(sortedmulti(k,KEY/branch/*,...))#checksum with one branch for all keys.
func (w *Wallet) parseDescriptor(desc string) (multisigDescriptor, error) {
	body, err := VerifyChecksum(desc)
	if err != nil {
		return multisigDescriptor{}, err
	}
	inner, ok := strings.CutPrefix(body, "wsh(sortedmulti(")
	if !ok {
		return multisigDescriptor{}, fmt.Errorf("%w: %s", ErrMalformedDescript, body)
	}
	inner, ok = strings.CutSuffix(inner, "))")
	if !ok {
		return multisigDescriptor{}, fmt.Errorf("%w: %s", ErrMalformedDescript, body)
	}
	parts := strings.Split(inner, ",")
	if len(parts) < 2 {
		return multisigDescriptor{}, fmt.Errorf("%w: no keys", ErrMalformedDescript)
	}
	threshold, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return multisigDescriptor{}, fmt.Errorf("%w: threshold: %v", ErrMalformedDescript, err)
	}

	d := multisigDescriptor{threshold: uint32(threshold)}
	for n, part := range parts[1:] {
		expr, ok := strings.CutSuffix(part, "/*")
		if !ok {
			return multisigDescriptor{}, fmt.Errorf("%w: key %d not ranged", ErrMalformedDescript, n)
		}
		cut := strings.LastIndexByte(expr, '/')
		if cut < 0 {
			return multisigDescriptor{}, fmt.Errorf("%w: key %d has no branch", ErrMalformedDescript, n)
		}
		branch, err := strconv.ParseUint(expr[cut+1:], 10, 32)
		if err != nil {
			return multisigDescriptor{}, fmt.Errorf("%w: key %d branch: %v", ErrMalformedDescript, n, err)
		}
		if n > 0 && uint32(branch) != d.branch {
			return multisigDescriptor{}, fmt.Errorf("%w: mixed branches", ErrMalformedDescript)
		}
		d.branch = uint32(branch)
		k, err := w.parseKeyExpr(expr[:cut])
		if err != nil {
			return multisigDescriptor{}, err
		}
		d.keys = append(d.keys, k)
	}
	if d.threshold == 0 || int(d.threshold) > len(d.keys) {
		return multisigDescriptor{}, fmt.Errorf("%w: %d of %d", ErrBadThreshold, d.threshold, len(d.keys))
	}
	return d, nil
}

// vaultScripts matches PSBT inputs against the witness scripts a vault's
// descriptors derive. Scripts found while scanning are kept for later inputs.
type vaultScripts struct {
	w         *Wallet
	threshold uint32
	keys      []keyExpr
	branches  []uint32
	derived   map[string]struct{}
	next      uint32
	limit     uint32
}

func (w *Wallet) vaultScripts(d model.Descriptors) (*vaultScripts, error) {
	output, err := w.parseDescriptor(d.Output.String())
	if err != nil {
		return nil, fmt.Errorf("output descriptor: %w", err)
	}
	v := &vaultScripts{
		w:         w,
		threshold: output.threshold,
		keys:      output.keys,
		branches:  []uint32{output.branch},
		derived:   make(map[string]struct{}),
	}
	if !d.Change.IsEmpty() {
		change, err := w.parseDescriptor(d.Change.String())
		if err != nil {
			return nil, fmt.Errorf("change descriptor: %w", err)
		}
		if change.threshold != output.threshold || len(change.keys) != len(output.keys) {
			return nil, fmt.Errorf("%w: change does not match output", ErrMalformedDescript)
		}
		if change.branch != output.branch {
			v.branches = append(v.branches, change.branch)
		}
	}
	v.limit, err = safe.Uint32(w.scanRange)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// match reports ErrForeignScript unless in's witness script is one the vault
// derives. BIP-32 derivation paths on the input are tried before scanning
// indexes up to the wallet's scan range.
func (v *vaultScripts) match(in psbt.PInput) error {
	script := in.WitnessScript
	numKeys, numSigs, err := txscript.CalcMultiSigStats(script)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotMultisig, err)
	}
	if numKeys != len(v.keys) || numSigs != int(v.threshold) {
		return ErrForeignScript
	}
	if _, ok := v.derived[string(script)]; ok {
		return nil
	}

	for _, d := range in.Bip32Derivation {
		if len(d.Bip32Path) < 2 {
			continue
		}
		branch, index := d.Bip32Path[len(d.Bip32Path)-2], d.Bip32Path[len(d.Bip32Path)-1]
		if !slices.Contains(v.branches, branch) || index >= hdkeychain.HardenedKeyStart {
			continue
		}
		s, err := v.w.witnessScript(v.keys, v.threshold, branch, index)
		if err != nil {
			return err
		}
		v.derived[string(s)] = struct{}{}
		if bytes.Equal(s, script) {
			return nil
		}
	}

	for ; v.next < v.limit; v.next++ {
		found := false
		for _, branch := range v.branches {
			s, err := v.w.witnessScript(v.keys, v.threshold, branch, v.next)
			if err != nil {
				return err
			}
			v.derived[string(s)] = struct{}{}
			found = found || bytes.Equal(s, script)
		}
		if found {
			v.next++
			return nil
		}
	}
	return ErrForeignScript
}

// scriptKeys returns the public keys pushed by a multisig script.
func scriptKeys(script []byte) ([][]byte, error) {
	var keys [][]byte
	tok := txscript.MakeScriptTokenizer(0, script)
	for tok.Next() {
		if data := tok.Data(); len(data) == 33 || len(data) == 65 {
			keys = append(keys, data)
		}
	}
	if err := tok.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func hasKey(keys [][]byte, pub []byte) bool {
	return slices.ContainsFunc(keys, func(k []byte) bool {
		return bytes.Equal(k, pub)
	})
}
