package transport

import (
	"net/http"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

// requestProof returns the proof at the current chain height, producing it
// if it does not exist yet.
func (h *Handler) requestProof(w http.ResponseWriter, r *http.Request) {
	who, err := caller(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := vaultParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	proof, err := h.reporter.RequestProof(r.Context(), id, who)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, proof)
}

func (h *Handler) listProofs(w http.ResponseWriter, r *http.Request) {
	id, err := vaultParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	proofs, err := h.svc.Proofs(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if proofs == nil {
		proofs = []model.ProofOfReserve{}
	}
	h.writeJSON(w, http.StatusOK, proofs)
}

func (h *Handler) getProof(w http.ResponseWriter, r *http.Request) {
	id, err := vaultParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	height, err := heightParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	proof, err := h.svc.Proof(r.Context(), id, height)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, proof)
}
