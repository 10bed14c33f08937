// Command corenoded runs a corechain BFT node: mempool admission, proof
// verification, storage, and peer transport, wired together with fx.
package main

import (
	"context"
	"fmt"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/empower1/corechain/cmd/corenoded/cli"
	"github.com/empower1/corechain/internal/consensus"
	"github.com/empower1/corechain/internal/logging"
	"github.com/empower1/corechain/internal/mempool"
	"github.com/empower1/corechain/internal/mempoolservice"
	"github.com/empower1/corechain/internal/metrics"
	"github.com/empower1/corechain/internal/nodeadapter"
	"github.com/empower1/corechain/internal/p2pnet"
	"github.com/empower1/corechain/internal/proof"
	"github.com/empower1/corechain/internal/storage"
	"github.com/empower1/corechain/internal/types"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultPoolSize    = 50000
	defaultGasLimit    = 30_000_000
	defaultMaxTxSize   = 64 * 1024
	defaultExecWorkers = 4
	defaultListenAddr  = "/ip4/0.0.0.0/tcp/4001"
	defaultDataPath    = "corechain.db"
	defaultChainID     = 1
	defaultTimeoutGap  = 20
)

func provideLogger() (*zap.Logger, error) {
	return logging.New()
}

func provideMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	metrics.MustRegister(reg)
	return reg
}

func provideStorage() (*storage.Storage, error) {
	return storage.Open(defaultDataPath)
}

func provideMempoolPool() *mempool.Pool {
	return mempool.NewPool(defaultPoolSize)
}

func provideMempoolAdapter(store *storage.Storage) *nodeadapter.Adapter {
	return nodeadapter.New(store, defaultChainID, defaultTimeoutGap, nil, nil)
}

func provideMempoolService(pool *mempool.Pool, adapter *nodeadapter.Adapter) *mempoolservice.Service {
	svc := mempoolservice.New(pool, adapter, defaultGasLimit, defaultMaxTxSize)
	svc.SetArgs(types.Hash{}, defaultGasLimit, defaultMaxTxSize)
	return svc
}

func provideMetadataStore() *nodeadapter.MetadataStore {
	genesis := &types.Metadata{
		Version:  types.VersionRange{Start: 0, End: 1_000_000},
		GasLimit: defaultGasLimit,
	}
	return nodeadapter.NewMetadataStore(genesis)
}

func provideProofVerifier(metadata *nodeadapter.MetadataStore) *proof.Verifier {
	return proof.New(metadata)
}

func provideNetwork(lc fx.Lifecycle) (*p2pnet.Host, error) {
	ctx := context.Background()
	h, err := p2pnet.New(ctx, []string{defaultListenAddr})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return h.Close() },
	})
	return h, nil
}

func provideAdapter(
	network *p2pnet.Host,
	store *storage.Storage,
	metadata *nodeadapter.MetadataStore,
	mempoolSvc *mempoolservice.Service,
	verifier *proof.Verifier,
	logger *zap.Logger,
) *consensus.Adapter {
	return consensus.New(network, store, metadata, nodeadapter.StubExecutor{}, mempoolSvc, verifier, nil, defaultExecWorkers, logger)
}

func runCLI(adapter *consensus.Adapter, store *storage.Storage) {
	root := cli.NewCLI(adapter, store)
	if err := root.Execute(); err != nil {
		fmt.Println("corenoded:", err)
	}
}

func main() {
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		fmt.Printf(format+"\n", args...)
	}))
	if err != nil {
		fmt.Println("corenoded: maxprocs.Set failed:", err)
	}
	defer undo()

	app := fx.New(
		fx.Provide(
			provideLogger,
			provideMetricsRegistry,
			provideStorage,
			provideMempoolPool,
			provideMempoolAdapter,
			provideMempoolService,
			provideMetadataStore,
			provideProofVerifier,
			provideNetwork,
			provideAdapter,
		),
		fx.Invoke(runCLI),
		fx.NopLogger,
	)
	app.Run()
}
