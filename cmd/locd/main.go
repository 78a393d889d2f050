// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/locktrip/go-locktrip/api"
	"github.com/locktrip/go-locktrip/dgp"
	"github.com/locktrip/go-locktrip/dgp/solo"
	"github.com/locktrip/go-locktrip/kv"
	"github.com/locktrip/go-locktrip/log"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "locd",
		Usage:     "LockTrip governance engine daemon",
		Copyright: "2018 LockTrip",
		Flags: []cli.Flag{
			dataDirFlag,
			configFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			verbosityFlag,
			pprofFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			blockIntervalFlag,
			persistFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	config := solo.DefaultConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if config, err = solo.LoadConfigFile(path); err != nil {
			return err
		}
		logger.Info("governance config loaded", "path", path)
	}

	mainDB := openMemMainDB()
	instanceDir := "Memory"
	if ctx.Bool(persistFlag.Name) {
		instanceDir = makeDataDir(ctx)
		mainDB = openMainDB(instanceDir)
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	gateway := solo.NewGateway(config)
	reader := dgp.NewVoteReader(gateway)

	history, err := dgp.NewRewardHistory(kv.Bucket("reward-history").NewStore(mainDB))
	if err != nil {
		return err
	}
	cache := dgp.NewCache(reader, history)
	if err := cache.SeedRewardHistory(); err != nil {
		logger.Warn("unable to seed reward history", "err", err)
	}
	pricer := dgp.NewGasPricer(cache, solo.NewOracle(config))

	if ctx.Bool(enableMetricsFlag.Name) {
		metricsSrv := startMetricsServer(ctx)
		defer func() { logger.Info("stopping metrics server..."); metricsSrv.Shutdown(context.Background()) }()
	}

	handler := api.New(cache, reader, pricer, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	apiSrv, apiURL := startAPIServer(ctx, handler)
	defer func() { logger.Info("stopping API server..."); apiSrv.Shutdown(context.Background()) }()

	printStartupMessage(instanceDir, apiURL)

	return runEngine(handleExitSignal(), cache, ctx.Uint64(blockIntervalFlag.Name))
}

// runEngine drives the cache the way block connection would: one refresh per
// simulated block, heights strictly increasing, until the exit signal.
func runEngine(ctx context.Context, cache *dgp.Cache, blockInterval uint64) error {
	ticker := time.NewTicker(time.Duration(blockInterval) * time.Second)
	defer ticker.Stop()

	var group errgroup.Group
	group.Go(func() error {
		height := dgp.ActivationHeight
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				cache.Refresh(uint64(height))
				height++
			}
		}
	})
	return group.Wait()
}

func printStartupMessage(instanceDir string, apiURL string) {
	fmt.Printf(`Starting %v
    Version     [ %v ]
    Instance    [ %v ]
    API portal  [ %v ]
`,
		"locd",
		fullVersion(),
		instanceDir,
		apiURL)
}
