/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/multiformats/go-multibase"
)

const (
	TransferVersion   = "1.0.0"
	TransferSourceApp = "Anonymous Identity Creator"
	TransferTargetApp = "Mobile App"
)

// TransferData is the envelope used to hand an identity to another application.
type TransferData struct {
	Version      string           `json:"version"`
	Timestamp    int64            `json:"timestamp"`
	Identity     TransferIdentity `json:"identity"`
	TransferInfo TransferInfo     `json:"transferInfo"`
	Security     TransferSecurity `json:"security"`
}

type TransferIdentity struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	PublicKey  string                 `json:"publicKey"`
	CreatedAt  time.Time              `json:"createdAt"`
	Attributes map[string]interface{} `json:"attributes"`
}

type TransferInfo struct {
	TransferID string `json:"transferId"`
	SourceApp  string `json:"sourceApp"`
	TargetApp  string `json:"targetApp"`
}

type TransferSecurity struct {
	Checksum string `json:"checksum"`
}

// NewTransferData wraps the identity in a checksummed transfer envelope.
func NewTransferData(i *Identity, now time.Time) (*TransferData, error) {
	publicKey, err := multibase.Encode(multibase.Base58BTC, i.KeyMaterial)
	if err != nil {
		return nil, fmt.Errorf("encode public key: %w", err)
	}

	data := &TransferData{
		Version:   TransferVersion,
		Timestamp: now.UnixMilli(),
		Identity: TransferIdentity{
			ID:         i.ID,
			Name:       i.DisplayName,
			PublicKey:  publicKey,
			CreatedAt:  i.CreatedAt,
			Attributes: i.Attributes(),
		},
		TransferInfo: TransferInfo{
			TransferID: uuid.NewString(),
			SourceApp:  TransferSourceApp,
			TargetApp:  TransferTargetApp,
		},
	}

	data.Security.Checksum, err = data.checksum()
	if err != nil {
		return nil, err
	}

	return data, nil
}

// VerifyTransferData recomputes the envelope checksum and compares it with the recorded one.
func VerifyTransferData(data *TransferData) (bool, error) {
	sum, err := data.checksum()
	if err != nil {
		return false, err
	}

	return sum == data.Security.Checksum, nil
}

func (d *TransferData) checksum() (string, error) {
	unsealed := *d
	unsealed.Security = TransferSecurity{}

	b, err := json.Marshal(&unsealed)
	if err != nil {
		return "", fmt.Errorf("marshal transfer data: %w", err)
	}

	sum := sha256.Sum256(b)

	return hex.EncodeToString(sum[:]), nil
}
