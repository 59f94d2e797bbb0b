// shop-widget boots the storefront state machine headlessly: it loads
// the same JSON configuration an embedding page would supply, connects
// to the commerce and profile services, runs the initial load, and
// logs every state transition. Useful for smoke-testing a shop's
// configuration before embedding the widget.
//
// Usage:
//
//	shop-widget -config widget.json
//
// or with the configuration inline:
//
//	SHOP_WIDGET_CONFIG='{"shopId":"...","apiUrl":"..."}' shop-widget
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/antinvestor/shop-widget/commerce"
	"github.com/antinvestor/shop-widget/widget"
)

func main() {
	configPath := flag.String("config", "", "path to the widget configuration JSON")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	api := commerce.NewConnectCommerceClient(cfg.APIURL, cfg.Token, nil)
	var profileAPI commerce.ProfileClient
	if cfg.ProfileAPIURL != "" {
		profileAPI = commerce.NewConnectProfileClient(cfg.ProfileAPIURL, cfg.Token, nil)
	}

	store := widget.NewStore()
	d := widget.NewDispatcher(store, api, profileAPI, cfg, logger)
	d.Navigate = func(url string) {
		logger.Info("payment redirect", zap.String("url", url))
	}

	unsubscribe := store.Subscribe(func(s widget.State) {
		logger.Info("state changed",
			zap.String("screen", string(s.Screen)),
			zap.Int("products", len(s.Catalog.Products)),
			zap.Int64("cart_count", widget.CartCount(s.CartItems)),
			zap.String("error", s.ErrorMessage))
	})
	defer unsubscribe()

	d.Dispatch(context.Background(), widget.Init{})

	final := store.Get()
	if final.Screen == widget.ScreenError {
		logger.Error("widget failed to load", zap.String("message", final.ErrorMessage))
		os.Exit(1)
	}
	logger.Info("widget loaded", zap.String("screen", string(final.Screen)))
}

func loadConfig(path string) (widget.Config, error) {
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return widget.Config{}, err
		}
		return widget.ParseConfig(b)
	}
	if raw := os.Getenv("SHOP_WIDGET_CONFIG"); raw != "" {
		return widget.ParseConfig([]byte(raw))
	}
	return widget.Config{}, errors.New("no configuration: pass -config or set SHOP_WIDGET_CONFIG")
}
