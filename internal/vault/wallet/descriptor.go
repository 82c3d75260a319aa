package wallet

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/txscript"
	"github.com/lightningnetwork/lnd/fn/v2"
)

const (
	receiveBranch = 0
	changeBranch  = 1
)

var (
	ErrNoKeys           = errors.New("no cosigner keys")
	ErrBadThreshold     = errors.New("threshold out of range")
	ErrPrivateKey       = errors.New("private key given where xpub expected")
	ErrWrongNetwork     = errors.New("xpub is for another network")
	ErrDuplicateKey     = errors.New("duplicate cosigner key")
	ErrUnsupportedPath  = errors.New("unsupported key derivation path")
	ErrMalformedKeyExpr = errors.New("malformed key expression")
)

// DescriptorPair is the receive and change descriptor of a vault, both with
// checksums, plus the first receive address as a sanity value.
type DescriptorPair struct {
	Output       string
	Change       string
	FirstAddress string
}

type keyExpr struct {
	origin string
	xpub   string
	key    *hdkeychain.ExtendedKey
}

func (k keyExpr) branch(branch uint32) string {
	return fmt.Sprintf("%s%s/%d/*", k.origin, k.xpub, branch)
}

// parseKeyExpr accepts "[fingerprint/path]xpub" with an optional trailing
// "/*". Any other derivation suffix is rejected.
func (w *Wallet) parseKeyExpr(expr string) (keyExpr, error) {
	rest := strings.TrimSpace(expr)
	var k keyExpr
	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return keyExpr{}, fmt.Errorf("%w: unterminated origin in %q", ErrMalformedKeyExpr, expr)
		}
		k.origin = rest[:end+1]
		rest = rest[end+1:]
	}
	rest = strings.TrimSuffix(rest, "/*")
	if strings.Contains(rest, "/") {
		return keyExpr{}, fmt.Errorf("%w: %q", ErrUnsupportedPath, expr)
	}

	key, err := hdkeychain.NewKeyFromString(rest)
	if err != nil {
		return keyExpr{}, fmt.Errorf("parse xpub: %w", err)
	}
	if key.IsPrivate() {
		return keyExpr{}, ErrPrivateKey
	}
	if !key.IsForNet(w.params) {
		return keyExpr{}, fmt.Errorf("%w: want %s", ErrWrongNetwork, w.params.Name)
	}
	k.xpub = rest
	k.key = key
	return k, nil
}

// BuildDescriptor turns cosigner xpubs into a threshold wsh(sortedmulti)
// descriptor pair.
func (w *Wallet) BuildDescriptor(ctx context.Context, xpubs []string, threshold uint32) (pair DescriptorPair, err error) {
	started := time.Now()
	defer func() {
		w.metrics.Observe("build_descriptor", err, started)
	}()
	if err = ctx.Err(); err != nil {
		return DescriptorPair{}, err
	}

	if len(xpubs) == 0 {
		return DescriptorPair{}, ErrNoKeys
	}
	if threshold == 0 || int(threshold) > len(xpubs) || len(xpubs) > maxMultisigKeys {
		return DescriptorPair{}, fmt.Errorf("%w: %d of %d", ErrBadThreshold, threshold, len(xpubs))
	}

	keys := make([]keyExpr, 0, len(xpubs))
	seen := fn.NewSet[string]()
	for _, x := range xpubs {
		k, err := w.parseKeyExpr(x)
		if err != nil {
			return DescriptorPair{}, err
		}
		if seen.Contains(k.xpub) {
			return DescriptorPair{}, fmt.Errorf("%w: %s", ErrDuplicateKey, k.xpub)
		}
		seen.Add(k.xpub)
		keys = append(keys, k)
	}

	output, err := sortedMultiDescriptor(threshold, keys, receiveBranch)
	if err != nil {
		return DescriptorPair{}, err
	}
	change, err := sortedMultiDescriptor(threshold, keys, changeBranch)
	if err != nil {
		return DescriptorPair{}, err
	}
	addr, err := w.address(keys, threshold, receiveBranch, 0)
	if err != nil {
		return DescriptorPair{}, err
	}
	return DescriptorPair{Output: output, Change: change, FirstAddress: addr.EncodeAddress()}, nil
}

func sortedMultiDescriptor(threshold uint32, keys []keyExpr, branch uint32) (string, error) {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k.branch(branch))
	}
	return AddChecksum(fmt.Sprintf("wsh(sortedmulti(%d,%s))", threshold, strings.Join(parts, ",")))
}

// address derives the p2wsh address at branch/index.
func (w *Wallet) address(keys []keyExpr, threshold, branch, index uint32) (*btcutil.AddressWitnessScriptHash, error) {
	script, err := w.witnessScript(keys, threshold, branch, index)
	if err != nil {
		return nil, err
	}
	hash := sha256.Sum256(script)
	return btcutil.NewAddressWitnessScriptHash(hash[:], w.params)
}

func (w *Wallet) witnessScript(keys []keyExpr, threshold, branch, index uint32) ([]byte, error) {
	pubs := make([][]byte, 0, len(keys))
	for _, k := range keys {
		child, err := k.key.Derive(branch)
		if err != nil {
			return nil, fmt.Errorf("derive %s/%d: %w", k.xpub, branch, err)
		}
		child, err = child.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("derive %s/%d/%d: %w", k.xpub, branch, index, err)
		}
		pub, err := child.ECPubKey()
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, pub.SerializeCompressed())
	}
	sort.Slice(pubs, func(i, j int) bool {
		return bytes.Compare(pubs[i], pubs[j]) < 0
	})

	addrs := make([]*btcutil.AddressPubKey, 0, len(pubs))
	for _, p := range pubs {
		a, err := btcutil.NewAddressPubKey(p, w.params)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return txscript.MultiSigScript(addrs, int(threshold))
}
