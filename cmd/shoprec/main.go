package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack/shoprec/config"
	"github.com/shopstack/shoprec/core"
	"github.com/shopstack/shoprec/server"
	"github.com/shopstack/shoprec/service"
	"github.com/shopstack/shoprec/store"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to YAML config (optional)")
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config")
		}
		cfg = loaded
	}

	// 协作方存储：开发/演示环境用内存实现 + 种子数据
	var (
		catalog   core.CatalogStore
		orders    core.OrderStore
		favorites core.FavoriteStore
	)
	if cfg.Seed != "" {
		seed, err := store.LoadSeed(cfg.Seed)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Seed).Msg("load seed data")
		}
		catalog, orders, favorites = seed.Stores()
		log.Info().Int("products", len(seed.Products)).
			Int("transactions", len(seed.Transactions)).
			Int("preferences", len(seed.Preferences)).
			Msg("seed data loaded")
	} else {
		catalog, orders, favorites = (&store.SeedData{}).Stores()
		log.Warn().Msg("no seed file configured, starting with an empty catalog")
	}

	// 旁路缓存：配了 Redis 就用 Redis，否则退化为进程内存
	var kv core.KeyValueStore
	if cfg.Redis.Addr != "" {
		redisKV, err := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect redis")
		}
		kv = redisKV
	} else {
		kv = store.NewMemoryStore()
	}
	defer kv.Close()
	log.Info().Str("backend", kv.Name()).Msg("recommendation cache ready")

	extraNodes, err := config.BuildNodes(cfg.Recommend.Nodes)
	if err != nil {
		log.Fatal().Err(err).Msg("build pipeline nodes")
	}

	cache := service.NewRecommendationCache(kv, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	cache.Logger = &log

	rec := &service.Recommender{
		Catalog:    catalog,
		Orders:     orders,
		Favorites:  favorites,
		Cache:      cache,
		TopN:       cfg.Recommend.TopN,
		NeighborK:  cfg.Recommend.NeighborK,
		ExtraNodes: extraNodes,
		Logger:     &log,
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(rec, log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("bye")
}
