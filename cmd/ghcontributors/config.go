package main

import "time"

// Config is the container for app configuration
type Config struct {
	// LogLevel - logrus level name
	LogLevel string `default:"info"`

	// HTTPServerAddress - listen address for http server
	HTTPServerAddress string `default:"0.0.0.0:8080"`

	// HTTPProfileServerAddress - listen address for profiler http server. If empty, profiler server is disabled
	HTTPProfileServerAddress string `default:""`

	// HTTPHandlerTimeout - timeout for widget and api handlers
	HTTPHandlerTimeout time.Duration `default:"60s"`

	// GRPCServerAddress - listen address for grpc server. If empty, grpc server is disabled
	GRPCServerAddress string `default:"0.0.0.0:9090"`

	// ServiceResponseTimeout - timeout for service execution
	ServiceResponseTimeout time.Duration `default:"30s"`

	// GithubAPIAddress - address for rest api with protocol
	GithubAPIAddress string `default:"https://api.github.com"`

	// GithubAPIToken - auth token for rest github api (optional, rate limit is lower without this token)
	GithubAPIToken string `default:""`

	// GithubAPIRateLimit - max frequency for github rest api calls
	GithubAPIRateLimit float64 `default:"0.5"`

	// GithubClientKind - "rest" for built in client, "library" for go-github based one
	GithubClientKind string `default:"rest"`

	// GithubClientCacheSize - maximum number of elements in in-memory cache
	GithubClientCacheSize int `default:"10000"`

	// GithubClientCacheTTL - maximum lifetime for in-memory cache entries
	GithubClientCacheTTL time.Duration `default:"10m"`

	// GithubStore - backend for stale data store: "none", "bolt" or "redis"
	GithubStore string `default:"none"`

	// GithubDBPath - filepath for bolt db data
	GithubDBPath string `default:"./github.data"`

	// GithubDBBucketName - bolt db bucket name
	GithubDBBucketName string `default:"github"`

	// GithubDBOpenTimeout - how long to wait for bolt file lock held by another process
	GithubDBOpenTimeout time.Duration `default:"5s"`

	// GithubRedisAddress - redis address in form host:port
	GithubRedisAddress string `default:"localhost:6379"`

	// GithubRedisPrefix - prefix of redis keys
	GithubRedisPrefix string `default:"ghcontributors:"`

	// GithubRedisTimeout - timeout of single redis command
	GithubRedisTimeout time.Duration `default:"2s"`

	// GithubDBDataTTL - maximum lifetime for staled data in db
	GithubDBDataTTL time.Duration `default:"8h"`

	// GithubDBDataRefreshTTL - maximum lifetime for staled data to be queued for refresh
	GithubDBDataRefreshTTL time.Duration `default:"1h"`
}
