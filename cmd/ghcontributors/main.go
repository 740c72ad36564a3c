package main

import (
	"context"
	"fmt"
	netHttp "net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/m-zajac/ghcontributors/internal/adapter/github"
	"github.com/m-zajac/ghcontributors/internal/api/grpc"
	"github.com/m-zajac/ghcontributors/internal/api/http"
	"github.com/m-zajac/ghcontributors/internal/api/http/limiter"
	"github.com/m-zajac/ghcontributors/internal/app"
	"github.com/m-zajac/ghcontributors/internal/database"
	"github.com/m-zajac/ghcontributors/internal/i18n"
	"github.com/m-zajac/ghcontributors/internal/registry"
	"github.com/m-zajac/ghcontributors/internal/widget"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	l := logrus.New()
	l.Level = logrus.InfoLevel

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		l.Fatalf("coludn't parse config: %v", err)
	}
	if level, err := logrus.ParseLevel(conf.LogLevel); err == nil {
		l.Level = level
	} else {
		l.Warnf("invalid log level %q, using %s", conf.LogLevel, l.Level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	githubClient, err := newGithubClient(conf)
	if err != nil {
		l.Fatalf("couldn't create github client: %v", err)
	}

	kvStore, closeStore, err := newKVStore(conf)
	if err != nil {
		l.Fatalf("couldn't create kv store: %v", err)
	}
	defer closeStore()

	if kvStore != nil {
		githubStaleDataClient, err := github.NewClientWithStaleData(
			githubClient,
			kvStore,
			conf.GithubDBDataTTL,
			conf.GithubDBDataRefreshTTL,
			l.WithField("component", "githubStaleDataClient"),
		)
		if err != nil {
			l.Fatalf("coludn't create github db client: %v", err)
		}
		githubStaleDataClient.RunScheduler()
		defer githubStaleDataClient.Close()

		githubClient = githubStaleDataClient
	}

	githubCachedClient, err := github.NewCachedClient(
		githubClient,
		conf.GithubClientCacheSize,
		conf.GithubClientCacheTTL,
	)
	if err != nil {
		l.Fatalf("couldn't create github client cache: %v", err)
	}

	service := app.NewService(
		githubCachedClient,
		conf.ServiceResponseTimeout,
	)

	catalog, err := i18n.LoadEmbedded()
	if err != nil {
		l.Fatalf("couldn't load translations: %v", err)
	}

	components := registry.New()
	if err := components.Register(widget.Tag, widget.NewFactory(service, catalog, l)); err != nil {
		l.Fatalf("couldn't register widget: %v", err)
	}

	mux := http.NewMux(service, components, widget.Tag, conf.HTTPHandlerTimeout, l.WithField("component", "mux"))
	server := http.NewServer(
		conf.HTTPServerAddress,
		conf.HTTPProfileServerAddress,
		mux,
		l.WithField("component", "httpServer"),
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		server.Run(ctx)
		wg.Done()
	}()

	if conf.GRPCServerAddress != "" {
		grpcService := grpc.NewService(service)
		grpcServer := grpc.NewServer(
			grpcService,
			conf.GRPCServerAddress,
			l.WithField("component", "grpcServer"),
		)

		wg.Add(1)
		go func() {
			if err := grpcServer.Run(ctx); err != nil {
				l.Errorf("couldn't run grpc server: %v", err)
				stop()
			}
			wg.Done()
		}()
	}

	wg.Wait()
}

func newGithubClient(conf Config) (app.GithubClient, error) {
	switch conf.GithubClientKind {
	case "rest":
		httpClient := &netHttp.Client{
			Timeout: 30 * time.Second,
		}
		limitedHTTPClient := limiter.NewHTTPDoer(
			httpClient,
			conf.GithubAPIRateLimit,
		)
		return github.NewClient(
			limitedHTTPClient,
			conf.GithubAPIAddress,
			conf.GithubAPIToken,
		), nil
	case "library":
		httpClient := &netHttp.Client{
			Timeout:   30 * time.Second,
			Transport: limiter.NewRoundTripper(nil, conf.GithubAPIRateLimit),
		}
		return github.NewLibraryClient(
			httpClient,
			conf.GithubAPIAddress,
			conf.GithubAPIToken,
		)
	default:
		return nil, fmt.Errorf("unknown github client kind %q", conf.GithubClientKind)
	}
}

// newKVStore returns nil store when stale data store is disabled.
func newKVStore(conf Config) (github.KVStore, func(), error) {
	switch conf.GithubStore {
	case "", "none":
		return nil, func() {}, nil
	case "bolt":
		store, err := database.NewBoltKVStore(
			conf.GithubDBPath,
			conf.GithubDBBucketName,
			conf.GithubDBOpenTimeout,
		)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr: conf.GithubRedisAddress,
		})
		store := database.NewRedisKVStore(
			rdb,
			conf.GithubRedisPrefix,
			conf.GithubDBDataTTL,
			conf.GithubRedisTimeout,
		)
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown github store %q", conf.GithubStore)
	}
}
