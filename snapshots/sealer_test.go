package snapshots

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veraison/go-cose"
)

func newSigningPair(t *testing.T) (cose.Signer, cose.Verifier) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	signer, err := cose.NewSigner(cose.AlgorithmES256, key)
	require.NoError(t, err)
	verifier, err := cose.NewVerifier(cose.AlgorithmES256, key.Public())
	require.NoError(t, err)
	return signer, verifier
}

func TestSealRoundTrip(t *testing.T) {
	codec := testCodec(t)
	signer, verifier := newSigningPair(t)
	tree := buildTestTree(t, 12)

	snap := New("reviews", tree)
	snap.Version = 1

	sealed, err := NewSealer("integrity-service", codec).Seal(signer, "key-1", snap)
	require.NoError(t, err)

	msg, unverified, err := DecodeSealed(codec, sealed)
	require.NoError(t, err)

	// The root is detached from the published payload.
	assert.Nil(t, unverified.Root)
	assert.Equal(t, snap.SnapshotID, unverified.SnapshotID)
	assert.Equal(t, snap.LeafCount, unverified.LeafCount)

	// Restoring the locally recovered root completes verification.
	unverified.Root = tree.Root()
	assert.NoError(t, VerifySealed(codec, verifier, msg, unverified))
}

func TestSealRejectsSubstitutedRoot(t *testing.T) {
	codec := testCodec(t)
	signer, verifier := newSigningPair(t)
	tree := buildTestTree(t, 12)

	snap := New("reviews", tree)
	sealed, err := NewSealer("integrity-service", codec).Seal(signer, "key-1", snap)
	require.NoError(t, err)

	msg, unverified, err := DecodeSealed(codec, sealed)
	require.NoError(t, err)

	// A root recovered from a tampered record set cannot satisfy the seal.
	wrong := make([]byte, len(tree.Root()))
	copy(wrong, tree.Root())
	wrong[0] ^= 0x01
	unverified.Root = wrong

	err = VerifySealed(codec, verifier, msg, unverified)
	assert.ErrorIs(t, err, ErrSealVerifyFailed)
}

func TestSealRejectsWrongKey(t *testing.T) {
	codec := testCodec(t)
	signer, _ := newSigningPair(t)
	_, otherVerifier := newSigningPair(t)
	tree := buildTestTree(t, 4)

	snap := New("reviews", tree)
	sealed, err := NewSealer("integrity-service", codec).Seal(signer, "key-1", snap)
	require.NoError(t, err)

	msg, unverified, err := DecodeSealed(codec, sealed)
	require.NoError(t, err)
	unverified.Root = tree.Root()

	err = VerifySealed(codec, otherVerifier, msg, unverified)
	assert.ErrorIs(t, err, ErrSealVerifyFailed)
}

func TestDecodeSealedMalformed(t *testing.T) {
	codec := testCodec(t)
	_, _, err := DecodeSealed(codec, []byte{0x01, 0x02, 0x03})
	assert.ErrorIs(t, err, ErrSealMalformed)
}
