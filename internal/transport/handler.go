// Package transport serves the vault service as a JSON HTTP API.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/service"
)

// AccountHeader carries the authenticated caller. It is set by the gateway
// in front of the daemon.
const AccountHeader = "X-Account-ID"

const (
	maxBodyBytes      = 1 << 20
	defaultEventLimit = 100
	maxEventLimit     = 1000
)

var (
	errNoCaller  = errors.New("missing or invalid " + AccountHeader + " header")
	errBadBody   = errors.New("malformed request body")
	errBadParam  = errors.New("malformed path or query parameter")
	errNoArchive = errors.New("event archive is not configured")
)

type Handler struct {
	svc      Service
	reporter Reporter
	events   EventArchive
	logger   *zap.Logger
	mux      *gwruntime.ServeMux
}

type route struct {
	method  string
	pattern string
	handle  http.HandlerFunc
}

// NewHandler routes the API. events may be nil when no archive is
// configured.
func NewHandler(svc Service, reporter Reporter, events EventArchive, logger *zap.Logger) (*Handler, error) {
	h := &Handler{
		svc:      svc,
		reporter: reporter,
		events:   events,
		logger:   logger.Named("http"),
	}
	h.mux = gwruntime.NewServeMux(gwruntime.WithRoutingErrorHandler(h.routingError))

	routes := []route{
		{http.MethodGet, "/healthz", h.health},

		{http.MethodPut, "/v1/xpub", h.setXPub},
		{http.MethodDelete, "/v1/xpub", h.removeXPub},
		{http.MethodGet, "/v1/accounts/{account}/xpub", h.getXPub},

		{http.MethodPost, "/v1/vaults", h.createVault},
		{http.MethodGet, "/v1/vaults", h.listVaults},
		{http.MethodGet, "/v1/vaults/{vault}", h.getVault},
		{http.MethodDelete, "/v1/vaults/{vault}", h.removeVault},
		{http.MethodPost, "/v1/vaults/{vault}/retry", h.retryVault},
		{http.MethodGet, "/v1/vaults/{vault}/events", h.vaultEvents},

		{http.MethodPost, "/v1/vaults/{vault}/proposals", h.proposeSpend},
		{http.MethodGet, "/v1/vaults/{vault}/proposals", h.listProposals},
		{http.MethodGet, "/v1/proposals/{proposal}", h.getProposal},
		{http.MethodDelete, "/v1/proposals/{proposal}", h.removeProposal},
		{http.MethodPost, "/v1/proposals/{proposal}/signatures", h.submitSignature},
		{http.MethodPost, "/v1/proposals/{proposal}/reject", h.proposalAction(svc.RejectProposal)},
		{http.MethodPost, "/v1/proposals/{proposal}/retry", h.proposalAction(svc.RetryProposal)},

		{http.MethodPost, "/v1/vaults/{vault}/proofs", h.requestProof},
		{http.MethodGet, "/v1/vaults/{vault}/proofs", h.listProofs},
		{http.MethodGet, "/v1/vaults/{vault}/proofs/{height}", h.getProof},
	}
	for _, rt := range routes {
		if err := h.mux.HandlePath(rt.method, rt.pattern, h.pathHandler(rt.handle)); err != nil {
			return nil, fmt.Errorf("register %s %s: %w", rt.method, rt.pattern, err)
		}
	}
	return h, nil
}

// pathHandler exposes the gateway path parameters through r.PathValue.
func (h *Handler) pathHandler(next http.HandlerFunc) gwruntime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		for k, v := range params {
			r.SetPathValue(k, v)
		}
		next(w, r)
	}
}

// ServeHTTP serves the API. A panicking handler is logged and answered with
// a 500.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if p := recover(); p != nil {
			if p == http.ErrAbortHandler {
				panic(p)
			}
			h.logger.Error("handler panic",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Any("panic", p),
				zap.Stack("stack"),
			)
			h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
		}
	}()
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) routingError(_ context.Context, _ *gwruntime.ServeMux, _ gwruntime.Marshaler, w http.ResponseWriter, _ *http.Request, code int) {
	h.writeJSON(w, code, errorResponse{Error: http.StatusText(code)})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func caller(r *http.Request) (model.AccountID, error) {
	id, err := model.ParseAccountID(r.Header.Get(AccountHeader))
	if err != nil || id.IsZero() {
		return model.AccountID{}, errNoCaller
	}
	return id, nil
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

func vaultParam(r *http.Request) (model.VaultID, error) {
	id, err := model.ParseVaultID(r.PathValue("vault"))
	if err != nil {
		return model.VaultID{}, fmt.Errorf("%w: vault: %v", errBadParam, err)
	}
	return id, nil
}

func proposalParam(r *http.Request) (model.ProposalID, error) {
	id, err := model.ParseProposalID(r.PathValue("proposal"))
	if err != nil {
		return model.ProposalID{}, fmt.Errorf("%w: proposal: %v", errBadParam, err)
	}
	return id, nil
}

func heightParam(r *http.Request) (uint64, error) {
	height, err := strconv.ParseUint(r.PathValue("height"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: height: %v", errBadParam, err)
	}
	return height, nil
}

func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultEventLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxEventLimit {
		return 0, fmt.Errorf("%w: limit must be within 1..%d", errBadParam, maxEventLimit)
	}
	return limit, nil
}

// statusOf maps the error taxonomy of the service onto HTTP.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errNoCaller):
		return http.StatusUnauthorized
	case errors.Is(err, errBadBody), errors.Is(err, errBadParam), service.IsValidation(err):
		return http.StatusBadRequest
	case service.IsPermission(err):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound), errors.Is(err, errNoArchive):
		return http.StatusNotFound
	case errors.Is(err, service.ErrVaultNotReady), errors.Is(err, service.ErrInvalidTransition), service.IsStale(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusOf(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		msg = http.StatusText(code)
	}
	h.writeJSON(w, code, errorResponse{Error: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}
