package transport

import (
	"context"
	"net/http"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/service"
)

// PSBTs travel as text, base64 or hex of the raw packet, and are stored as
// sent.
type proposeSpendRequest struct {
	PSBT        string `json:"psbt"`
	Description string `json:"description"`
}

type submitSignatureRequest struct {
	PSBT string `json:"psbt"`
}

func (h *Handler) proposeSpend(w http.ResponseWriter, r *http.Request) {
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
	var req proposeSpendRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.ProposeSpend(r.Context(), service.ProposeSpendRequest{
		VaultID:     id,
		Requester:   who,
		PSBT:        []byte(req.PSBT),
		Description: []byte(req.Description),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) listProposals(w http.ResponseWriter, r *http.Request) {
	id, err := vaultParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	proposals, err := h.svc.ProposalsByVault(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if proposals == nil {
		proposals = []model.Proposal{}
	}
	h.writeJSON(w, http.StatusOK, proposals)
}

func (h *Handler) getProposal(w http.ResponseWriter, r *http.Request) {
	id, err := proposalParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.GetProposal(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) submitSignature(w http.ResponseWriter, r *http.Request) {
	who, err := caller(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := proposalParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req submitSignatureRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.SubmitSignature(r.Context(), id, who, []byte(req.PSBT))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

// proposalAction serves a caller action that returns the updated proposal.
func (h *Handler) proposalAction(action func(ctx context.Context, id model.ProposalID, who model.AccountID) (model.Proposal, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, err := caller(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		id, err := proposalParam(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		p, err := action(r.Context(), id, who)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusOK, p)
	}
}

func (h *Handler) removeProposal(w http.ResponseWriter, r *http.Request) {
	who, err := caller(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := proposalParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.RemoveProposal(r.Context(), id, who); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
