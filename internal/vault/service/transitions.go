package service

import (
	"fmt"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

func setStatus(p *model.Proposal, to model.ProposalStatus) error {
	if !p.Status.CanTransition(to) {
		return fmt.Errorf("%w: proposal %s -> %s", ErrInvalidTransition, p.Status, to)
	}
	p.Status = to
	return nil
}

func setOffchain(p *model.Proposal, to model.OffchainStatus) error {
	if !p.OffchainStatus.CanTransition(to) {
		return fmt.Errorf("%w: offchain %s -> %s", ErrInvalidTransition, p.OffchainStatus, to)
	}
	p.OffchainStatus = to
	return nil
}

// setBDK replaces the wallet outcome. Keeping the state and only swapping
// the payload is not a transition.
func setBDK(s *model.BDKStatus, to model.BDKStatus) error {
	if s.State != to.State && !s.State.CanTransition(to.State) {
		return fmt.Errorf("%w: bdk %s -> %s", ErrInvalidTransition, s.State, to.State)
	}
	*s = to
	return nil
}
