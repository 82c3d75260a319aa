package transport

import (
	"net/http"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

type setXPubRequest struct {
	XPub string `json:"xpub"`
}

type xpubResponse struct {
	Account model.AccountID `json:"account"`
	XPub    string          `json:"xpub"`
}

func toXPubResponse(x model.XPub) xpubResponse {
	return xpubResponse{Account: x.Account, XPub: x.Value.String()}
}

func (h *Handler) setXPub(w http.ResponseWriter, r *http.Request) {
	who, err := caller(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req setXPubRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	x, err := h.svc.SetXPub(r.Context(), who, []byte(req.XPub))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toXPubResponse(x))
}

func (h *Handler) removeXPub(w http.ResponseWriter, r *http.Request) {
	who, err := caller(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.RemoveXPub(r.Context(), who); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getXPub(w http.ResponseWriter, r *http.Request) {
	account, err := model.ParseAccountID(r.PathValue("account"))
	if err != nil {
		h.writeError(w, r, errBadParam)
		return
	}
	x, err := h.svc.XPub(r.Context(), account)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toXPubResponse(x))
}
