package model

// Limits bounds every user supplied value stored in the ledger.
type Limits struct {
	XPubMaxLen             int
	PSBTMaxLen             int
	MaxVaultsPerUser       int
	MaxCosignersPerVault   int
	VaultDescriptionMaxLen int
	OutputDescriptorMaxLen int
	MaxProposalsPerVault   int
}

func DefaultLimits() Limits {
	return Limits{
		XPubMaxLen:             166,
		PSBTMaxLen:             2048,
		MaxVaultsPerUser:       2,
		MaxCosignersPerVault:   7,
		VaultDescriptionMaxLen: 200,
		OutputDescriptorMaxLen: 2048,
		MaxProposalsPerVault:   2,
	}
}
