//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
package wallet

import (
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

type (
	// NodeClient is the subset of the bitcoind RPC surface the wallet needs.
	NodeClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		SendRawTransaction(tx *wire.MsgTx, allowHighFees bool) (*chainhash.Hash, error)
		RawRequest(method string, params []json.RawMessage) (json.RawMessage, error)
	}

	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
