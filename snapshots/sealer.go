package snapshots

import (
	"crypto/rand"
	"fmt"

	"github.com/veraison/go-cose"
)

// HeaderLabelIssuer carries the sealing issuer in the protected header.
const HeaderLabelIssuer = "iss"

// Sealer produces a COSE Sign1 signature over a snapshot. A seal commits the
// issuer to a root baseline and should only be published after the snapshot
// has been checked against the current record set.
type Sealer struct {
	issuer string
	codec  Codec
}

func NewSealer(issuer string, codec Codec) Sealer {
	return Sealer{issuer: issuer, codec: codec}
}

// Seal signs the snapshot and returns the encoded COSE Sign1 message.
//
// The root is purposefully detached from the published payload after signing,
// so verifiers are forced to recover it by rebuilding from the records they
// hold; a seal can therefore never be replayed to "confirm" a record set it
// was not produced from.
func (s Sealer) Seal(signer cose.Signer, keyIdentifier string, snap Snapshot) ([]byte, error) {
	payload, err := s.codec.MarshalCBOR(snap)
	if err != nil {
		return nil, err
	}

	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: signer.Algorithm(),
				cose.HeaderLabelKeyID:     []byte(keyIdentifier),
				HeaderLabelIssuer:         s.issuer,
			},
		},
		Payload: payload,
	}
	if err = msg.Sign(rand.Reader, nil, signer); err != nil {
		return nil, fmt.Errorf("signing snapshot: %w", err)
	}

	snap.Root = nil
	if msg.Payload, err = s.codec.MarshalCBOR(snap); err != nil {
		return nil, err
	}

	return msg.MarshalCBOR()
}
