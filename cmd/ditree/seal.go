package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/veraison/go-cose"

	"github.com/ibrahim-azad/data-integrity-merkle-tree/hashtree"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/records"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/snapshots"
)

func (s *session) sealKeyPath() string {
	return filepath.Join(s.dataDir, "keys", "seal.pem")
}

func (s *session) sealPath(dataset string, version uint32) string {
	return filepath.Join(s.snapshotDir(), fmt.Sprintf("%s_seal_v%d.cbor", dataset, version))
}

// loadOrCreateSealKey reads the ES256 sealing key, generating one on first
// use.
func loadOrCreateSealKey(path string) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		block, _ := pem.Decode(data)
		if block == nil {
			return nil, fmt.Errorf("no PEM block in %s", path)
		}
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		ec, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%s is not an EC key", path)
		}
		return ec, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	ec, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	der, err := x509.MarshalPKCS8PrivateKey(ec)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	out := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return nil, err
	}
	return ec, nil
}

func newSealCmd(s *session) *cobra.Command {
	var issuer string

	cmd := &cobra.Command{
		Use:   "seal <dataset>",
		Short: "Sign the latest baseline with a COSE Sign1 seal",
		Long: `Seal signs the latest stored baseline. The root is detached from the
published seal, so anyone verifying it must rebuild the tree from the
records they hold; the seal only verifies against the exact record set it
was produced from.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset := args[0]

			store, closeStore, err := s.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			snap, err := store.Latest(cmd.Context(), dataset)
			if err != nil {
				return err
			}

			key, err := loadOrCreateSealKey(s.sealKeyPath())
			if err != nil {
				return err
			}
			signer, err := cose.NewSigner(cose.AlgorithmES256, key)
			if err != nil {
				return err
			}

			codec, err := snapshots.NewCodec()
			if err != nil {
				return err
			}
			sealed, err := snapshots.NewSealer(issuer, codec).Seal(signer, snap.SnapshotID, snap)
			if err != nil {
				return err
			}

			out := s.sealPath(dataset, snap.Version)
			if err := os.WriteFile(out, sealed, 0o644); err != nil {
				return err
			}
			fmt.Printf("%s sealed baseline v%d of %q as %s\n",
				color.GreenString("✓"), snap.Version, dataset, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&issuer, "issuer", "ditree", "issuer name placed in the protected header")
	return cmd
}

func newVerifySealCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-seal <dataset> <version>",
		Short: "Verify a seal against a tree rebuilt from the current dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset := args[0]
			var version uint32
			if _, err := fmt.Sscanf(args[1], "%d", &version); err != nil {
				return fmt.Errorf("version must be numeric: %w", err)
			}

			sealed, err := os.ReadFile(s.sealPath(dataset, version))
			if err != nil {
				return err
			}
			codec, err := snapshots.NewCodec()
			if err != nil {
				return err
			}
			msg, restored, err := snapshots.DecodeSealed(codec, sealed)
			if err != nil {
				return err
			}

			reviews, err := loadProcessed(s, dataset)
			if err != nil {
				return err
			}
			tree, err := hashtree.Build(records.TreeRecords(reviews))
			if err != nil {
				return err
			}
			restored.Root = tree.Root()

			key, err := loadOrCreateSealKey(s.sealKeyPath())
			if err != nil {
				return err
			}
			verifier, err := cose.NewVerifier(cose.AlgorithmES256, &key.PublicKey)
			if err != nil {
				return err
			}

			if err := snapshots.VerifySealed(codec, verifier, msg, restored); err != nil {
				fmt.Printf("%s seal does not cover the current records\n", color.RedString("✗"))
				return err
			}
			fmt.Printf("%s seal v%d of %q verifies; sealed root %s\n",
				color.GreenString("✓"), version, dataset, hex.EncodeToString(restored.Root))
			return nil
		},
	}
	return cmd
}
