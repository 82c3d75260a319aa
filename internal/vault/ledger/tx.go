package ledger

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

// Tx is a view over the ledger inside one bbolt transaction. Write methods
// fail in a read-only transaction.
type Tx interface {
	Vault(id model.VaultID) (model.Vault, error)
	PutVault(v model.Vault) error
	DeleteVault(id model.VaultID) error
	VaultsBySigner(account model.AccountID) ([]model.VaultID, error)
	VaultsByBDKState(state model.BDKState) ([]model.Vault, error)

	Proposal(id model.ProposalID) (model.Proposal, error)
	PutProposal(p model.Proposal) error
	DeleteProposal(id model.ProposalID) error
	ProposalsByVault(id model.VaultID) ([]model.Proposal, error)
	ProposalsByOffchainStatus(statuses ...model.OffchainStatus) ([]model.Proposal, error)

	ProofByHeight(id model.VaultID, height uint64) (model.ProofOfReserve, error)
	PutProof(p model.ProofOfReserve) error
	ProofsByVault(id model.VaultID) ([]model.ProofOfReserve, error)

	XPub(account model.AccountID) (model.XPub, error)
	XPubOwner(hash [model.IDSize]byte) (model.AccountID, error)
	PutXPub(x model.XPub) error
	DeleteXPub(account model.AccountID) error

	// NextSequence returns a ledger wide monotonically increasing number.
	NextSequence() (uint64, error)
}

type boltTx struct {
	tx *bolt.Tx
}

func (t *boltTx) bucket(name []byte) *bolt.Bucket {
	return t.tx.Bucket(name)
}

func (t *boltTx) Vault(id model.VaultID) (model.Vault, error) {
	var v model.Vault
	err := t.get(bucketVaults, id[:], &v)
	return v, err
}

func (t *boltTx) PutVault(v model.Vault) error {
	prev, err := t.Vault(v.ID)
	switch {
	case err == nil:
		if err := t.unindexSigners(prev); err != nil {
			return err
		}
	case !errors.Is(err, ErrNotFound):
		return err
	}

	if err := t.put(bucketVaults, v.ID[:], v); err != nil {
		return err
	}
	idx := t.bucket(bucketVaultsBySigner)
	for _, account := range v.Members() {
		if err := idx.Put(compositeKey(account[:], v.ID[:]), []byte{}); err != nil {
			return fmt.Errorf("index signer %s: %w", account, err)
		}
	}
	return nil
}

func (t *boltTx) DeleteVault(id model.VaultID) error {
	v, err := t.Vault(id)
	if err != nil {
		return err
	}
	if err := t.unindexSigners(v); err != nil {
		return err
	}
	return t.bucket(bucketVaults).Delete(id[:])
}

func (t *boltTx) unindexSigners(v model.Vault) error {
	idx := t.bucket(bucketVaultsBySigner)
	for _, account := range v.Members() {
		if err := idx.Delete(compositeKey(account[:], v.ID[:])); err != nil {
			return fmt.Errorf("unindex signer %s: %w", account, err)
		}
	}
	return nil
}

func (t *boltTx) VaultsBySigner(account model.AccountID) ([]model.VaultID, error) {
	var ids []model.VaultID
	c := t.bucket(bucketVaultsBySigner).Cursor()
	for k, _ := c.Seek(account[:]); k != nil && bytes.HasPrefix(k, account[:]); k, _ = c.Next() {
		var id model.VaultID
		copy(id[:], k[model.IDSize:])
		ids = append(ids, id)
	}
	return ids, nil
}

func (t *boltTx) VaultsByBDKState(state model.BDKState) ([]model.Vault, error) {
	var out []model.Vault
	err := t.bucket(bucketVaults).ForEach(func(k, raw []byte) error {
		var v model.Vault
		if err := decode(raw, &v); err != nil {
			return fmt.Errorf("vault %x: %w", k, err)
		}
		if v.BDKStatus.State == state {
			out = append(out, v)
		}
		return nil
	})
	return out, err
}

func (t *boltTx) Proposal(id model.ProposalID) (model.Proposal, error) {
	var p model.Proposal
	err := t.get(bucketProposals, id[:], &p)
	return p, err
}

func (t *boltTx) PutProposal(p model.Proposal) error {
	if err := t.put(bucketProposals, p.ID[:], p); err != nil {
		return err
	}
	return t.bucket(bucketProposalsByVault).Put(compositeKey(p.VaultID[:], p.ID[:]), []byte{})
}

func (t *boltTx) DeleteProposal(id model.ProposalID) error {
	p, err := t.Proposal(id)
	if err != nil {
		return err
	}
	if err := t.bucket(bucketProposalsByVault).Delete(compositeKey(p.VaultID[:], p.ID[:])); err != nil {
		return fmt.Errorf("unindex proposal: %w", err)
	}
	return t.bucket(bucketProposals).Delete(id[:])
}

func (t *boltTx) ProposalsByVault(id model.VaultID) ([]model.Proposal, error) {
	var out []model.Proposal
	c := t.bucket(bucketProposalsByVault).Cursor()
	for k, _ := c.Seek(id[:]); k != nil && bytes.HasPrefix(k, id[:]); k, _ = c.Next() {
		var pid model.ProposalID
		copy(pid[:], k[model.IDSize:])
		p, err := t.Proposal(pid)
		if err != nil {
			return nil, fmt.Errorf("proposal %s: %w", pid, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (t *boltTx) ProposalsByOffchainStatus(statuses ...model.OffchainStatus) ([]model.Proposal, error) {
	want := make(map[model.OffchainStatus]struct{}, len(statuses))
	for _, s := range statuses {
		want[s] = struct{}{}
	}

	var out []model.Proposal
	err := t.bucket(bucketProposals).ForEach(func(k, raw []byte) error {
		var p model.Proposal
		if err := decode(raw, &p); err != nil {
			return fmt.Errorf("proposal %x: %w", k, err)
		}
		if _, ok := want[p.OffchainStatus]; ok {
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

func (t *boltTx) ProofByHeight(id model.VaultID, height uint64) (model.ProofOfReserve, error) {
	var p model.ProofOfReserve
	err := t.get(bucketProofs, proofKey(id, height), &p)
	return p, err
}

func (t *boltTx) PutProof(p model.ProofOfReserve) error {
	return t.put(bucketProofs, proofKey(p.VaultID, p.Height), p)
}

func (t *boltTx) ProofsByVault(id model.VaultID) ([]model.ProofOfReserve, error) {
	var out []model.ProofOfReserve
	c := t.bucket(bucketProofs).Cursor()
	for k, raw := c.Seek(id[:]); k != nil && bytes.HasPrefix(k, id[:]); k, raw = c.Next() {
		var p model.ProofOfReserve
		if err := decode(raw, &p); err != nil {
			return nil, fmt.Errorf("proof %x: %w", k, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (t *boltTx) XPub(account model.AccountID) (model.XPub, error) {
	var x model.XPub
	err := t.get(bucketXPubs, account[:], &x)
	return x, err
}

func (t *boltTx) XPubOwner(hash [model.IDSize]byte) (model.AccountID, error) {
	var account model.AccountID
	raw := t.bucket(bucketXPubOwners).Get(hash[:])
	if raw == nil {
		return account, ErrNotFound
	}
	copy(account[:], raw)
	return account, nil
}

func (t *boltTx) PutXPub(x model.XPub) error {
	if err := t.put(bucketXPubs, x.Account[:], x); err != nil {
		return err
	}
	return t.bucket(bucketXPubOwners).Put(x.Hash[:], x.Account[:])
}

func (t *boltTx) DeleteXPub(account model.AccountID) error {
	x, err := t.XPub(account)
	if err != nil {
		return err
	}
	if err := t.bucket(bucketXPubOwners).Delete(x.Hash[:]); err != nil {
		return fmt.Errorf("delete xpub owner: %w", err)
	}
	return t.bucket(bucketXPubs).Delete(account[:])
}

func (t *boltTx) NextSequence() (uint64, error) {
	return t.bucket(bucketSequence).NextSequence()
}

func (t *boltTx) get(bucket, key []byte, out any) error {
	raw := t.bucket(bucket).Get(key)
	if raw == nil {
		return ErrNotFound
	}
	return decode(raw, out)
}

func (t *boltTx) put(bucket, key []byte, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", string(bucket), err)
	}
	if err := t.bucket(bucket).Put(key, raw); err != nil {
		return fmt.Errorf("put %s: %w", string(bucket), err)
	}
	return nil
}

// decode never keeps a reference to raw; bbolt values are only valid for
// the life of the transaction.
func decode(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return nil
}

func compositeKey(prefix, suffix []byte) []byte {
	key := make([]byte, 0, len(prefix)+len(suffix))
	key = append(key, prefix...)
	return append(key, suffix...)
}

func proofKey(id model.VaultID, height uint64) []byte {
	key := make([]byte, model.IDSize+8)
	copy(key, id[:])
	binary.BigEndian.PutUint64(key[model.IDSize:], height)
	return key
}
