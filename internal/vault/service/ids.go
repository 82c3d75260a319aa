package service

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

func hash256(parts ...[]byte) [model.IDSize]byte {
	h, _ := blake2b.New256(nil)
	var size [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(size[:], uint64(len(p)))
		h.Write(size[:])
		h.Write(p)
	}
	var out [model.IDSize]byte
	copy(out[:], h.Sum(nil))
	return out
}

func u64(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

// vaultIDFor mixes in a ledger sequence so identical requests yield distinct
// vaults.
func vaultIDFor(owner model.AccountID, cosigners []model.AccountID, threshold uint32, description []byte, seq uint64) model.VaultID {
	parts := [][]byte{[]byte("vault"), owner[:], u64(uint64(threshold)), description, u64(seq)}
	for _, c := range cosigners {
		parts = append(parts, c[:])
	}
	return model.VaultID(hash256(parts...))
}

// proposalIDFor is deterministic so the same psbt proposed twice by the same
// cosigner maps onto the same record.
func proposalIDFor(vault model.VaultID, proposer model.AccountID, psbt []byte) model.ProposalID {
	return model.ProposalID(hash256([]byte("proposal"), vault[:], proposer[:], psbt))
}

func proofIDFor(vault model.VaultID, height uint64) model.ProofID {
	return model.ProofID(hash256([]byte("proof"), vault[:], u64(height)))
}

func xpubHash(xpub []byte) [model.IDSize]byte {
	return blake2b.Sum256(xpub)
}
