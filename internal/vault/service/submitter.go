package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/attest"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/ledger"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/pkg/bounded"
)

// Submitter is the worker capability: it scans for pending work, claims it
// and folds signed worker results back into the ledger.
type Submitter struct {
	svc    *Service
	opener EnvelopeOpener
	logger *zap.Logger
}

func NewSubmitter(svc *Service, opener EnvelopeOpener) *Submitter {
	return &Submitter{
		svc:    svc,
		opener: opener,
		logger: svc.logger.Named("submitter"),
	}
}

// VaultWork is a pending vault along with the xpubs of its cosigners.
type VaultWork struct {
	Vault model.Vault
	// XPubs follows the cosigner order; Missing lists cosigners without one.
	XPubs   []string
	Missing []model.AccountID
}

// ClaimedProposal is a proposal this worker now holds, with its vault.
type ClaimedProposal struct {
	Proposal model.Proposal
	Vault    model.Vault
}

func (s *Submitter) PendingVaults(ctx context.Context) ([]VaultWork, error) {
	var out []VaultWork
	err := s.svc.ledger.View(ctx, func(tx ledger.Tx) error {
		vaults, err := tx.VaultsByBDKState(model.BDKPending)
		if err != nil {
			return err
		}
		for _, v := range vaults {
			work := VaultWork{Vault: v}
			for _, c := range v.Cosigners {
				x, err := tx.XPub(c)
				switch {
				case errors.Is(err, ledger.ErrNotFound):
					work.Missing = append(work.Missing, c)
				case err != nil:
					return err
				default:
					work.XPubs = append(work.XPubs, x.Value.String())
				}
			}
			out = append(out, work)
		}
		return nil
	})
	return out, err
}

// ClaimableProposals lists non terminal proposals queued for work, including
// Requested ones whose claim expired.
func (s *Submitter) ClaimableProposals(ctx context.Context) ([]model.Proposal, error) {
	var out []model.Proposal
	err := s.svc.ledger.View(ctx, func(tx ledger.Tx) error {
		proposals, err := tx.ProposalsByOffchainStatus(model.OffchainToRequest, model.OffchainRequested)
		if err != nil {
			return err
		}
		for _, p := range proposals {
			if p.Status.IsTerminal() {
				continue
			}
			if p.OffchainStatus == model.OffchainRequested && !s.claimExpired(p) {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

func (s *Submitter) claimExpired(p model.Proposal) bool {
	return s.svc.clock.Now().Sub(p.ClaimedAt) >= s.svc.claimTimeout
}

// ClaimProposal moves ToRequest to Requested in one ledger update, bumping
// the attempt. Losing the race yields ErrAlreadyClaimed.
func (s *Submitter) ClaimProposal(ctx context.Context, id model.ProposalID) (ClaimedProposal, error) {
	var claimed ClaimedProposal
	err := s.svc.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		p, err := loadProposal(tx, id)
		if err != nil {
			return nil, err
		}
		if p.Status.IsTerminal() {
			return nil, ErrProposalTerminal
		}
		switch p.OffchainStatus {
		case model.OffchainToRequest:
		case model.OffchainRequested:
			if !s.claimExpired(p) {
				return nil, ErrAlreadyClaimed
			}
			s.logger.Warn("reclaiming expired proposal claim",
				zap.Stringer("proposal", p.ID),
				zap.Uint32("attempt", p.Attempt),
			)
		default:
			return nil, ErrAlreadyClaimed
		}

		v, err := loadVault(tx, p.VaultID)
		if err != nil {
			return nil, err
		}

		now := s.svc.clock.Now()
		if err := setOffchain(&p, model.OffchainRequested); err != nil {
			return nil, err
		}
		if err := setBDK(&p.BDKStatus, model.PendingStatus()); err != nil {
			return nil, err
		}
		p.Attempt++
		p.ClaimedAt = now
		p.ClaimedRevision = p.Revision
		p.UpdatedAt = now
		if err := tx.PutProposal(p); err != nil {
			return nil, err
		}
		claimed = ClaimedProposal{Proposal: p, Vault: v}
		return nil, nil
	})
	return claimed, err
}

// RecordDescriptorResult applies a worker descriptor outcome to a pending
// vault. A result for an older attempt or a settled vault is stale.
func (s *Submitter) RecordDescriptorResult(ctx context.Context, env attest.Envelope) error {
	var res model.DescriptorResult
	if err := s.opener.Open(env, attest.KindDescriptorResult, &res); err != nil {
		return err
	}

	limits := s.svc.limits
	return s.svc.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		v, err := loadVault(tx, res.VaultID)
		if err != nil {
			return nil, err
		}
		if v.BDKStatus.State != model.BDKPending || v.Attempt != res.Attempt {
			return nil, ErrVaultNotPending
		}

		v.UpdatedAt = s.svc.clock.Now()
		var event model.Event
		if res.Error == "" {
			d, derr := descriptorsFrom(limits.OutputDescriptorMaxLen, res)
			if derr != nil {
				res.Error = derr.Error()
			} else {
				status, serr := model.ValidStatus(limits.OutputDescriptorMaxLen, d.Output.Bytes())
				if serr != nil {
					return nil, serr
				}
				if err := setBDK(&v.BDKStatus, status); err != nil {
					return nil, err
				}
				v.Descriptors = d
				event = s.svc.event(model.EventDescriptorsStored, v.ID, model.ProposalID{}, v.Owner, d.Output.String())
			}
		}
		if res.Error != "" {
			if err := setBDK(&v.BDKStatus, model.InvalidStatus(limits.OutputDescriptorMaxLen, res.Error)); err != nil {
				return nil, err
			}
			v.Descriptors = model.Descriptors{}
			event = s.svc.event(model.EventDescriptorInvalid, v.ID, model.ProposalID{}, v.Owner, res.Error)
		}

		if err := tx.PutVault(v); err != nil {
			return nil, err
		}
		return []model.Event{event}, nil
	})
}

func descriptorsFrom(max int, res model.DescriptorResult) (model.Descriptors, error) {
	if res.Output == "" {
		return model.Descriptors{}, errors.New("empty output descriptor")
	}
	output, err := bounded.FromString(max, res.Output)
	if err != nil {
		return model.Descriptors{}, fmt.Errorf("output descriptor: %w", err)
	}
	change, err := bounded.FromString(max, res.Change)
	if err != nil {
		return model.Descriptors{}, fmt.Errorf("change descriptor: %w", err)
	}
	return model.Descriptors{Output: output, Change: change}, nil
}

// RecordOffchainResult applies a worker PSBT or broadcast outcome to the
// proposal it claimed.
func (s *Submitter) RecordOffchainResult(ctx context.Context, env attest.Envelope) error {
	var res model.OffchainResult
	if err := s.opener.Open(env, attest.KindOffchainResult, &res); err != nil {
		return err
	}

	limits := s.svc.limits
	return s.svc.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		p, err := loadProposal(tx, res.ProposalID)
		if err != nil {
			return nil, err
		}
		if p.OffchainStatus != model.OffchainRequested || p.Attempt != res.Attempt {
			return nil, ErrProposalNotRequested
		}
		if p.Status.IsTerminal() {
			return nil, ErrProposalTerminal
		}
		v, err := loadVault(tx, p.VaultID)
		if err != nil {
			return nil, err
		}

		p.UpdatedAt = s.svc.clock.Now()
		events, err := s.applyOffchain(&p, v, res, limits)
		if err != nil {
			return nil, err
		}
		if err := tx.PutProposal(p); err != nil {
			return nil, err
		}
		return events, nil
	})
}

func (s *Submitter) applyOffchain(p *model.Proposal, v model.Vault, res model.OffchainResult, limits model.Limits) ([]model.Event, error) {
	fail := func(msg string) ([]model.Event, error) {
		if err := setOffchain(p, model.OffchainFailed); err != nil {
			return nil, err
		}
		if err := setBDK(&p.BDKStatus, model.InvalidStatus(limits.PSBTMaxLen, msg)); err != nil {
			return nil, err
		}
		return []model.Event{s.svc.event(model.EventPSBTFailed, p.VaultID, p.ID, model.AccountID{}, msg)}, nil
	}
	if res.Error != "" {
		return fail(res.Error)
	}

	switch res.Op {
	case model.OpBuildPSBT:
		if p.Status != model.ProposalPending {
			return nil, ErrProposalNotRequested
		}
		psbt, err := bounded.New(limits.PSBTMaxLen, res.PSBT)
		if err != nil {
			return fail(fmt.Sprintf("psbt: %v", err))
		}
		if psbt.IsEmpty() {
			return fail("empty psbt")
		}
		if err := setBDK(&p.BDKStatus, model.BDKStatus{State: model.BDKValid}); err != nil {
			return nil, err
		}
		p.PSBT = psbt

		if res.Ready && len(p.Signatures) >= int(v.Threshold) {
			if err := setStatus(p, model.ProposalBroadcasted); err != nil {
				return nil, err
			}
			if err := setOffchain(p, model.OffchainToRequest); err != nil {
				return nil, err
			}
			return []model.Event{s.svc.event(model.EventProposalBroadcasted, p.VaultID, p.ID, model.AccountID{}, "")}, nil
		}
		next := model.OffchainCompleted
		if p.Revision > p.ClaimedRevision {
			next = model.OffchainToRequest
		}
		if err := setOffchain(p, next); err != nil {
			return nil, err
		}
		return []model.Event{s.svc.event(model.EventPSBTUpdated, p.VaultID, p.ID, model.AccountID{}, "")}, nil

	case model.OpBroadcast:
		if p.Status != model.ProposalBroadcasted {
			return nil, ErrProposalNotRequested
		}
		if res.TxID == "" {
			return fail("broadcast returned no tx id")
		}
		status, err := model.ValidStatus(limits.PSBTMaxLen, []byte(res.TxID))
		if err != nil {
			return fail(fmt.Sprintf("tx id: %v", err))
		}
		if err := setStatus(p, model.ProposalFinalized); err != nil {
			return nil, err
		}
		if err := setOffchain(p, model.OffchainCompleted); err != nil {
			return nil, err
		}
		if err := setBDK(&p.BDKStatus, status); err != nil {
			return nil, err
		}
		p.TxID = res.TxID
		return []model.Event{s.svc.event(model.EventProposalFinalized, p.VaultID, p.ID, model.AccountID{}, res.TxID)}, nil

	default:
		return nil, fmt.Errorf("unknown offchain op %q", res.Op)
	}
}

// RecordProof stores a reserve proof. A proof already recorded at the same
// height is returned unchanged.
func (s *Submitter) RecordProof(ctx context.Context, env attest.Envelope) (model.ProofOfReserve, error) {
	var res model.ProofResult
	if err := s.opener.Open(env, attest.KindProofResult, &res); err != nil {
		return model.ProofOfReserve{}, err
	}

	var proof model.ProofOfReserve
	err := s.svc.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		v, err := loadVault(tx, res.VaultID)
		if err != nil {
			return nil, err
		}
		if !v.IsReady() {
			return nil, ErrVaultNotReady
		}
		existing, err := tx.ProofByHeight(res.VaultID, res.Height)
		if err == nil {
			proof = existing
			return nil, nil
		}
		if !errors.Is(err, ledger.ErrNotFound) {
			return nil, err
		}
		proof = model.ProofOfReserve{
			ID:         proofIDFor(res.VaultID, res.Height),
			VaultID:    res.VaultID,
			Height:     res.Height,
			BlockHash:  res.BlockHash,
			Commitment: res.Commitment,
			Total:      res.Total,
			UTXOCount:  res.UTXOCount,
			CreatedAt:  s.svc.clock.Now(),
		}
		if err := tx.PutProof(proof); err != nil {
			return nil, err
		}
		e := s.svc.event(model.EventProofRecorded, proof.VaultID, model.ProposalID{}, model.AccountID{}, proof.Commitment.String())
		recorded := proof
		e.Proof = &recorded
		return []model.Event{e}, nil
	})
	if err != nil {
		return model.ProofOfReserve{}, err
	}
	return proof, nil
}
