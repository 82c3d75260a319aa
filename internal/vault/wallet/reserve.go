package wallet

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/pkg/safe"
)

var reserveTag = []byte("multisigvault/reserve")

var ErrScanFailed = errors.New("utxo scan failed")

// Reserve is the unspent set controlled by a vault's descriptors at a height.
type Reserve struct {
	Height     uint64
	BlockHash  string
	Commitment chainhash.Hash
	Total      btcutil.Amount
	UTXOCount  uint32
}

type scanObject struct {
	Desc  string `json:"desc"`
	Range int    `json:"range"`
}

type scanResult struct {
	Success   bool          `json:"success"`
	Height    int64         `json:"height"`
	BestBlock string        `json:"bestblock"`
	Unspents  []scanUnspent `json:"unspents"`
}

type scanUnspent struct {
	TxID   string  `json:"txid"`
	Vout   uint32  `json:"vout"`
	Amount float64 `json:"amount"`
}

// ScanReserve asks the node for every unspent output of the vault's receive
// and change descriptors and commits to the result.
func (w *Wallet) ScanReserve(ctx context.Context, d model.Descriptors) (reserve Reserve, err error) {
	started := time.Now()
	defer func() {
		w.metrics.Observe("scan_reserve", err, started)
	}()
	if err = ctx.Err(); err != nil {
		return Reserve{}, err
	}
	if d.IsEmpty() {
		return Reserve{}, ErrNoDescriptors
	}

	objects := []scanObject{{Desc: d.Output.String(), Range: w.scanRange}}
	if !d.Change.IsEmpty() {
		objects = append(objects, scanObject{Desc: d.Change.String(), Range: w.scanRange})
	}
	action, err := json.Marshal("start")
	if err != nil {
		return Reserve{}, err
	}
	scan, err := json.Marshal(objects)
	if err != nil {
		return Reserve{}, err
	}

	resp, err := w.node.RawRequest("scantxoutset", []json.RawMessage{action, scan})
	if err != nil {
		return Reserve{}, fmt.Errorf("scantxoutset: %w", err)
	}
	var res scanResult
	if err = json.Unmarshal(resp, &res); err != nil {
		return Reserve{}, fmt.Errorf("decode scantxoutset: %w", err)
	}
	if !res.Success {
		return Reserve{}, ErrScanFailed
	}

	height, err := safe.Uint64(res.Height)
	if err != nil {
		return Reserve{}, fmt.Errorf("scan height: %w", err)
	}
	blockHash := res.BestBlock
	if blockHash == "" {
		hash, err := w.node.GetBlockHash(res.Height)
		if err != nil {
			return Reserve{}, fmt.Errorf("get block hash %d: %w", res.Height, err)
		}
		blockHash = hash.String()
	}

	reserve = Reserve{Height: height, BlockHash: blockHash}
	sort.Slice(res.Unspents, func(i, j int) bool {
		if res.Unspents[i].TxID != res.Unspents[j].TxID {
			return res.Unspents[i].TxID < res.Unspents[j].TxID
		}
		return res.Unspents[i].Vout < res.Unspents[j].Vout
	})

	var buf bytes.Buffer
	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], height)
	buf.Write(scratch[:])
	buf.WriteString(blockHash)
	for _, u := range res.Unspents {
		amount, err := btcutil.NewAmount(u.Amount)
		if err != nil {
			return Reserve{}, fmt.Errorf("amount of %s:%d: %w", u.TxID, u.Vout, err)
		}
		reserve.Total += amount
		buf.WriteString(u.TxID)
		binary.BigEndian.PutUint32(scratch[:4], u.Vout)
		buf.Write(scratch[:4])
		binary.BigEndian.PutUint64(scratch[:], uint64(amount))
		buf.Write(scratch[:])
	}
	reserve.UTXOCount, err = safe.Uint32(len(res.Unspents))
	if err != nil {
		return Reserve{}, err
	}
	reserve.Commitment = *chainhash.TaggedHash(reserveTag, buf.Bytes())
	return reserve, nil
}
