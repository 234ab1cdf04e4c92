package snapshots

import "github.com/fxamacker/cbor/v2"

// Codec pairs the deterministic CBOR encode and decode modes used for every
// persisted snapshot. Deterministic encoding matters for sealing: the seal
// verifier re-encodes the snapshot and must reproduce the signed bytes
// exactly.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func NewCodec() (Codec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return Codec{}, err
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return Codec{}, err
	}
	return Codec{enc: enc, dec: dec}, nil
}

func (c Codec) MarshalCBOR(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c Codec) UnmarshalInto(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}
