// Command vaultd runs the multisig vault ledger: the HTTP API for users, the
// coordinator that drives wallet work, and the proof of reserve reporter.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/multisigvault-backend/internal/metrics"
	"github.com/goodnatureofminers/multisigvault-backend/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/multisigvault-backend/internal/transport"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/attest"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/coordinator"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/ledger"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/notify"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/repository/clickhouse"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/reserve"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/service"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/wallet"
)

type config struct {
	Addr        string `long:"addr" env:"VAULTD_ADDR" default:":8001" description:"HTTP API listen address"`
	MetricsAddr string `long:"metrics-addr" env:"VAULTD_METRICS_ADDR" default:":9100" description:"metrics listen address, empty serves /metrics on the API"`
	LedgerPath  string `long:"ledger-path" env:"VAULTD_LEDGER_PATH" default:"vault.db" description:"bbolt ledger file"`
	Network     string `long:"network" env:"VAULTD_NETWORK" default:"testnet" description:"mainnet, testnet, signet or regtest"`

	RPCHost string `long:"rpc-host" env:"VAULTD_RPC_HOST" required:"true" description:"bitcoind RPC host:port"`
	RPCUser string `long:"rpc-user" env:"VAULTD_RPC_USER" description:"bitcoind RPC user"`
	RPCPass string `long:"rpc-pass" env:"VAULTD_RPC_PASS" description:"bitcoind RPC password"`
	RPCTLS  bool   `long:"rpc-tls" env:"VAULTD_RPC_TLS" description:"use TLS for bitcoind RPC"`
	ZMQAddr string `long:"zmq-addr" env:"VAULTD_ZMQ_ADDR" description:"bitcoind zmqpubhashblock endpoint"`

	WorkerKey     string `long:"worker-key" env:"VAULTD_WORKER_KEY" description:"hex secp256k1 key signing worker results"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"VAULTD_CLICKHOUSE_DSN" description:"event archive DSN, empty disables the archive"`

	Coordinator struct {
		Interval    time.Duration `long:"interval" env:"INTERVAL" default:"10s" description:"scan interval"`
		Workers     int           `long:"workers" env:"WORKERS" default:"4" description:"concurrent wallet calls"`
		CallTimeout time.Duration `long:"call-timeout" env:"CALL_TIMEOUT" default:"30s" description:"timeout of one wallet call"`
		Backoff     time.Duration `long:"backoff" env:"BACKOFF" default:"5s" description:"sleep after a failed scan"`
		ClaimTTL    time.Duration `long:"claim-timeout" env:"CLAIM_TIMEOUT" default:"10m" description:"age after which a proposal claim expires"`
	} `group:"coordinator" namespace:"coordinator" env-namespace:"VAULTD_COORDINATOR"`

	Reserve struct {
		Interval time.Duration `long:"interval" env:"INTERVAL" default:"1h" description:"proof of reserve interval"`
		Workers  int           `long:"workers" env:"WORKERS" default:"2" description:"concurrent reserve scans"`
	} `group:"reserve" namespace:"reserve" env-namespace:"VAULTD_RESERVE"`

	Limits struct {
		XPubMaxLen             int `long:"xpub-max-len" env:"XPUB_MAX_LEN" default:"166" description:"max xpub length"`
		PSBTMaxLen             int `long:"psbt-max-len" env:"PSBT_MAX_LEN" default:"2048" description:"max psbt length"`
		MaxVaultsPerUser       int `long:"max-vaults-per-user" env:"MAX_VAULTS_PER_USER" default:"2" description:"vaults an account may belong to"`
		MaxCosignersPerVault   int `long:"max-cosigners-per-vault" env:"MAX_COSIGNERS_PER_VAULT" default:"7" description:"cosigners per vault"`
		VaultDescriptionMaxLen int `long:"description-max-len" env:"DESCRIPTION_MAX_LEN" default:"200" description:"max description length"`
		OutputDescriptorMaxLen int `long:"descriptor-max-len" env:"DESCRIPTOR_MAX_LEN" default:"2048" description:"max output descriptor length"`
		MaxProposalsPerVault   int `long:"max-proposals-per-vault" env:"MAX_PROPOSALS_PER_VAULT" default:"2" description:"open proposals per vault"`
	} `group:"limits" namespace:"limits" env-namespace:"VAULTD_LIMITS"`
}

func (c config) limits() model.Limits {
	return model.Limits{
		XPubMaxLen:             c.Limits.XPubMaxLen,
		PSBTMaxLen:             c.Limits.PSBTMaxLen,
		MaxVaultsPerUser:       c.Limits.MaxVaultsPerUser,
		MaxCosignersPerVault:   c.Limits.MaxCosignersPerVault,
		VaultDescriptionMaxLen: c.Limits.VaultDescriptionMaxLen,
		OutputDescriptorMaxLen: c.Limits.OutputDescriptorMaxLen,
		MaxProposalsPerVault:   c.Limits.MaxProposalsPerVault,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	var cfg config
	if _, err := flags.ParseArgs(&cfg, os.Args[1:]); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("vaultd stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	params, err := wallet.ParamsForNetwork(cfg.Network)
	if err != nil {
		return err
	}

	signer, err := workerSigner(cfg.WorkerKey, logger)
	if err != nil {
		return err
	}
	verifier := attest.NewVerifier(signer.PublicKey())

	l, err := ledger.Open(cfg.LedgerPath, metrics.NewLedger())
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer func() {
		if err := l.Close(); err != nil {
			logger.Error("Failed to close ledger", zap.Error(err))
		}
	}()

	rpc, err := rpcclient.Dial(cfg.RPCHost, cfg.RPCUser, cfg.RPCPass, cfg.RPCTLS)
	if err != nil {
		return fmt.Errorf("connect bitcoind: %w", err)
	}
	defer rpc.Shutdown()
	node := rpcclient.NewObservedClient(rpc, metrics.NewRPCClient(params.Name))

	w, err := wallet.New(params, node, metrics.NewWallet(), logger)
	if err != nil {
		return err
	}

	notifiers := notify.Multi{notify.NewLogger(logger)}
	var events transport.EventArchive
	var archive *notify.Archive
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("connect clickhouse: %w", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Error("Failed to close clickhouse", zap.Error(err))
			}
		}()
		archive, err = notify.NewArchive(repo, logger, notify.DefaultArchiveConfig())
		if err != nil {
			return err
		}
		notifiers = append(notifiers, archive)
		events = repo
	}

	svc := service.New(l, cfg.limits(), w, notifiers, logger,
		service.WithClaimTimeout(cfg.Coordinator.ClaimTTL),
	)
	submitter := service.NewSubmitter(svc, verifier)

	coord, err := coordinator.New(submitter, w, signer, metrics.NewCoordinator(), logger, coordinator.Config{
		Workers:     cfg.Coordinator.Workers,
		Interval:    cfg.Coordinator.Interval,
		CallTimeout: cfg.Coordinator.CallTimeout,
		Backoff:     cfg.Coordinator.Backoff,
	})
	if err != nil {
		return err
	}

	reporter, err := reserve.NewReporter(svc, coord, submitter, metrics.NewReserve(), logger,
		reserve.WithInterval(cfg.Reserve.Interval),
		reserve.WithWorkers(cfg.Reserve.Workers),
	)
	if err != nil {
		return err
	}

	blocks, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return err
	}

	handler, err := transport.NewHandler(svc, reporter, events, logger)
	if err != nil {
		return fmt.Errorf("register api routes: %w", err)
	}
	api := http.NewServeMux()
	api.Handle("/", handler)
	if cfg.MetricsAddr == "" {
		api.Handle("/metrics", promhttp.Handler())
	}

	g, ctx := errgroup.WithContext(ctx)
	if archive != nil {
		archive.Start(ctx)
		defer archive.Stop()
	}
	g.Go(func() error {
		return coord.Run(ctx, blocks)
	})
	g.Go(func() error {
		return reporter.Run(ctx)
	})
	g.Go(func() error {
		return serve(ctx, newServer(cfg.Addr, cors.Default().Handler(api)), logger)
	})
	if cfg.MetricsAddr != "" {
		m := http.NewServeMux()
		m.Handle("/metrics", promhttp.Handler())
		g.Go(func() error {
			return serve(ctx, newServer(cfg.MetricsAddr, m), logger)
		})
	}

	logger.Info("vaultd started",
		zap.String("network", params.Name),
		zap.String("addr", cfg.Addr),
		zap.Bool("archive", archive != nil),
		zap.Bool("block_signal", blocks != nil),
	)
	return g.Wait()
}

func workerSigner(hexKey string, logger *zap.Logger) (*attest.Signer, error) {
	if hexKey != "" {
		return attest.ParseSigner(hexKey)
	}
	logger.Warn("no worker key configured, generating an ephemeral one")
	return attest.GenerateSigner()
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
}

func serve(ctx context.Context, s *http.Server, logger *zap.Logger) error {
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server", zap.String("addr", s.Addr))
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", s.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	return nil
}
