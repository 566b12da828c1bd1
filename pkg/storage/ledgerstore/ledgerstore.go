/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ledgerstore

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"
	"golang.org/x/crypto/sha3"

	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/storage"
	"github.com/trustbloc/anonid/pkg/storage/internal/pointer"
)

const payloadKeyPrefix = "blockchain-"

var networks = []string{storage.NetworkEthereum, storage.NetworkPolygon, storage.NetworkArbitrum}

// Store simulates a ledger: every save is a new transaction whose hash becomes the pointer for the
// configured network. Clearing forgets the pointer; recorded transactions stay readable.
type Store struct {
	*pointer.Store

	network string
}

type Opt func(s *options)

type options struct {
	clock func() time.Time
}

// WithClock overrides the time mixed into transaction hashes.
func WithClock(clock func() time.Time) Opt {
	return func(o *options) {
		o.clock = clock
	}
}

// NewStore creates Store for network (ethereum, polygon or arbitrum).
func NewStore(blobs storage.BlobStore, network string, opts ...Opt) (*Store, error) {
	if network == "" {
		return nil, coreerr.NewMissingConfig("network").WithComponent(coreerr.LedgerStoreComponent)
	}

	if !lo.Contains(networks, network) {
		return nil, coreerr.NewInvalidValue(fmt.Errorf("unsupported network %q", network)).
			WithComponent(coreerr.LedgerStoreComponent).
			WithIncorrectValue("network")
	}

	o := &options{clock: time.Now}

	for _, opt := range opts {
		opt(o)
	}

	return &Store{
		network: network,
		Store: pointer.New(pointer.Config{
			Blobs:      blobs,
			Component:  coreerr.LedgerStoreComponent,
			PointerKey: PointerKey(network),
			PayloadKey: PayloadKey,
			Address: func(data []byte) (string, error) {
				return TxHash(data, o.clock()), nil
			},
			Info: func(txHash string) map[string]interface{} {
				info := map[string]interface{}{"network": network}
				if txHash != "" {
					info["txHash"] = txHash
				}

				return info
			},
			LogField: logfields.WithTxHash,
		}),
	}, nil
}

// TxHash returns a transaction-hash-shaped id: "0x" and the hex Keccak-256 of data and the save time.
func TxHash(data []byte, at time.Time) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	h.Write([]byte(strconv.FormatInt(at.UnixMilli(), 10)))

	return "0x" + hex.EncodeToString(h.Sum(nil))
}

// PointerKey is the key holding the latest transaction hash of network.
func PointerKey(network string) string {
	return "anon-identities-" + network + "-txhash"
}

// PayloadKey is the key a transaction's data is stored under.
func PayloadKey(txHash string) string {
	return payloadKeyPrefix + txHash
}

func (s *Store) Network() string {
	return s.network
}

// LoadByTxHash returns the data recorded by a transaction, even after Clear.
func (s *Store) LoadByTxHash(ctx context.Context, txHash string) ([]*identity.Identity, error) {
	return s.Fetch(ctx, txHash)
}
