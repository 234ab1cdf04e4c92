// ditree is the command line interface to the data integrity tree: import a
// review dataset, build and snapshot its hash tree, verify integrity, prove
// individual records and run tampering simulations.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ibrahim-azad/data-integrity-merkle-tree/logger"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/snapshots"
)

// session carries the explicit per-invocation state every command threads
// through its calls: where the data lives and which snapshot store backs it.
type session struct {
	dataDir   string
	storeKind string
	logLevel  string
}

func (s *session) snapshotDir() string {
	return filepath.Join(s.dataDir, "snapshots")
}

// openStore builds the configured snapshot store. The returned closer is a
// no-op for the file store.
func (s *session) openStore() (snapshots.Store, func(), error) {
	codec, err := snapshots.NewCodec()
	if err != nil {
		return nil, nil, err
	}
	switch s.storeKind {
	case "file":
		store, err := snapshots.NewFileStore(s.snapshotDir(), codec)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case "badger":
		store, err := snapshots.NewBadgerStore(filepath.Join(s.snapshotDir(), "badger"), codec)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown snapshot store %q (file or badger)", s.storeKind)
	}
}

func newRootCmd() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:           "ditree",
		Short:         "Detect unauthorized modification of record collections with a cryptographic hash tree",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.New(s.logLevel)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.OnExit()
		},
	}

	root.PersistentFlags().StringVar(&s.dataDir, "data-dir", "data", "directory holding raw/, processed/ and snapshots/")
	root.PersistentFlags().StringVar(&s.storeKind, "store", "file", "snapshot store backend: file or badger")
	root.PersistentFlags().StringVar(&s.logLevel, "log-level", "INFO", "log level: DEBUG, INFO, WARN, ERROR")

	root.AddCommand(
		newImportCmd(s),
		newBuildCmd(s),
		newCheckCmd(s),
		newLocateCmd(s),
		newModifyCmd(s),
		newDetectCmd(s),
		newVersionsCmd(s),
		newSealCmd(s),
		newVerifySealCmd(s),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
