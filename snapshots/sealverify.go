package snapshots

import (
	"fmt"

	"github.com/veraison/go-cose"
)

// DecodeSealed decodes a sealed snapshot message. The returned snapshot has
// no root (it was detached at sealing time) and is unverified; see
// VerifySealed for completing verification.
func DecodeSealed(codec Codec, data []byte) (*cose.Sign1Message, Snapshot, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(data); err != nil {
		return nil, Snapshot{}, fmt.Errorf("%w: %v", ErrSealMalformed, err)
	}

	var unverified Snapshot
	if err := codec.UnmarshalInto(msg.Payload, &unverified); err != nil {
		return nil, Snapshot{}, fmt.Errorf("%w: %v", ErrSealMalformed, err)
	}
	return &msg, unverified, nil
}

// VerifySealed completes verification of a sealed snapshot:
//
//  1. Decode the message with DecodeSealed; the payload carries no root.
//  2. Rebuild the tree from the records held locally and set the resulting
//     root on the decoded snapshot.
//  3. Call this function to check the signature over the restored payload.
//
// Verification fails unless the locally recovered root is the exact root the
// issuer sealed.
func VerifySealed(codec Codec, verifier cose.Verifier, msg *cose.Sign1Message, restored Snapshot) error {
	payload, err := codec.MarshalCBOR(restored)
	if err != nil {
		return err
	}
	msg.Payload = payload

	if err := msg.Verify(nil, verifier); err != nil {
		return fmt.Errorf("%w: %v", ErrSealVerifyFailed, err)
	}
	return nil
}
