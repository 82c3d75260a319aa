package transport

import (
	"net/http"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/service"
)

type createVaultRequest struct {
	Cosigners              []model.AccountID `json:"cosigners"`
	Threshold              uint32            `json:"threshold"`
	Description            string            `json:"description"`
	IncludeOwnerAsCosigner bool              `json:"include_owner_as_cosigner"`
}

func (h *Handler) createVault(w http.ResponseWriter, r *http.Request) {
	who, err := caller(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req createVaultRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	v, err := h.svc.CreateVault(r.Context(), service.CreateVaultRequest{
		Owner:                  who,
		Cosigners:              req.Cosigners,
		Threshold:              req.Threshold,
		Description:            []byte(req.Description),
		IncludeOwnerAsCosigner: req.IncludeOwnerAsCosigner,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, v)
}

// listVaults returns the vaults the caller owns or cosigns.
func (h *Handler) listVaults(w http.ResponseWriter, r *http.Request) {
	who, err := caller(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	vaults, err := h.svc.VaultsBySigner(r.Context(), who)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if vaults == nil {
		vaults = []model.Vault{}
	}
	h.writeJSON(w, http.StatusOK, vaults)
}

func (h *Handler) getVault(w http.ResponseWriter, r *http.Request) {
	id, err := vaultParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	v, err := h.svc.GetVault(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

func (h *Handler) removeVault(w http.ResponseWriter, r *http.Request) {
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
	if err := h.svc.RemoveVault(r.Context(), id, who); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) retryVault(w http.ResponseWriter, r *http.Request) {
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
	v, err := h.svc.RetryVault(r.Context(), id, who)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

func (h *Handler) vaultEvents(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		h.writeError(w, r, errNoArchive)
		return
	}
	id, err := vaultParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	limit, err := limitParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	events, err := h.events.EventsByVault(r.Context(), id, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	h.writeJSON(w, http.StatusOK, events)
}
