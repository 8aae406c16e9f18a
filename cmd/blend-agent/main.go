// Copyright 2025 Lumenkit
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dgraph-io/badger/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/ziflex/lecho/v2"

	"github.com/lumenkit/blend-agent/api/agent"
	"github.com/lumenkit/blend-agent/blend"
	"github.com/lumenkit/blend-agent/codec/zbor"
	"github.com/lumenkit/blend-agent/engine"
	"github.com/lumenkit/blend-agent/metrics"
	"github.com/lumenkit/blend-agent/network"
	"github.com/lumenkit/blend-agent/signer"
	"github.com/lumenkit/blend-agent/store"
)

const (
	success = 0
	failure = 1
)

// Secrets holds the configuration that should never appear on the command
// line. The agent secret signs transactions for callers that do not provide
// their own key.
type Secrets struct {
	AgentSecret string `env:"AGENT_SECRET,required"`
}

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var (
		flagData       string
		flagFactory    string
		flagHorizon    string
		flagLevel      string
		flagPassphrase string
		flagPort       uint16
		flagRPC        string
	)

	pflag.StringVarP(&flagData, "data", "d", "data", "database directory for receipts and cursors")
	pflag.StringVarP(&flagFactory, "factory", "f", "CDIE73IJJKOWXWCPU5GWQ745FUKWCSH3YKZRF5IQW7GE3G7YAZ773MYK", "contract address of the pool factory")
	pflag.StringVarP(&flagHorizon, "horizon", "z", "https://horizon-testnet.stellar.org", "URL for the Horizon API")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagPassphrase, "passphrase", "n", "Test SDF Network ; September 2015", "network passphrase for transaction signing")
	pflag.Uint16VarP(&flagPort, "port", "p", 8080, "port to host the agent API on")
	pflag.StringVarP(&flagRPC, "rpc", "r", "https://soroban-testnet.stellar.org", "URL for the Soroban RPC API")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	// Secret configuration comes from the environment only.
	var secrets Secrets
	err = env.Parse(&secrets)
	if err != nil {
		log.Error().Err(err).Msg("could not parse environment configuration")
		return failure
	}

	sign, err := signer.NewLocal(secrets.AgentSecret, flagPassphrase)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize agent signer")
		return failure
	}

	// Open the on-disk receipt store.
	db, err := badger.Open(badger.DefaultOptions(flagData).WithLogger(nil))
	if err != nil {
		log.Error().Str("data", flagData).Err(err).Msg("could not open receipt DB")
		return failure
	}
	defer db.Close()
	receipts := store.New(log, db, zbor.NewCodec())

	// Metrics registry initialization.
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Initialize the network client and the transaction lifecycle engine on
	// top of it, then bind the Blend protocol client to both.
	client := network.New(log, flagRPC, flagHorizon, flagPassphrase)
	exec := engine.New(log, client, collector)
	protocol, err := blend.New(log, exec, client, flagFactory)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize protocol client")
		return failure
	}

	// Agent API initialization.
	ctrl := agent.NewController(log, protocol, receipts, sign, flagPassphrase)

	elog := lecho.From(log)
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger = elog
	server.Use(lecho.Middleware(lecho.Config{Logger: elog}))
	server.Use(middleware.Recover())
	ctrl.Register(server)
	server.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// This section launches the main executing components in their own
	// goroutine, so they can run concurrently. Afterwards, we wait for an
	// interrupt signal in order to proceed with the next section.
	go func() {
		log.Info().Str("address", sign.Address()).Msg("Blend agent starting")
		err := server.Start(fmt.Sprintf(":%d", flagPort))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Blend agent encountered error")
		}
		log.Info().Msg("Blend agent stopped")
	}()

	<-sig
	log.Info().Msg("Blend agent stopping")
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	// The following code starts a shut down with a certain timeout and makes
	// sure that the main executing components are shutting down within the
	// allocated shutdown time. Otherwise, we will force the shutdown and log
	// an error. We then wait for shutdown on each component to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = server.Shutdown(ctx)
	if err != nil {
		log.Error().Err(err).Msg("could not shut down agent API")
	}

	return success
}
