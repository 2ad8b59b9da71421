// Command radargw is the marine-radar gateway entry point: it parses
// flags, optionally loads a JSON config file, opens the sqlite radar
// registry, and runs the session orchestrator until SIGINT/SIGTERM. The
// flag/context/WaitGroup shutdown shape is grounded on the teacher's
// root main.go and cmd/lidar/lidar.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/wavemark/radargw/internal/config"
	"github.com/wavemark/radargw/internal/gatewaydb"
	"github.com/wavemark/radargw/internal/monitoring"
	"github.com/wavemark/radargw/internal/radarcore/metrics"
	"github.com/wavemark/radargw/internal/radarcore/navdata"
	"github.com/wavemark/radargw/internal/radarcore/registry"
	"github.com/wavemark/radargw/internal/radarcore/session"
	"github.com/wavemark/radargw/internal/radarcore/trail"
	"github.com/wavemark/radargw/internal/version"
	"github.com/wavemark/radargw/internal/webapi"
)

var (
	versionFlag = flag.Bool("version", false, "print version information and exit")
	configFile  = flag.String("config", "", "path to a JSON config file (optional)")
	brand      = flag.String("brand", "", "restrict discovery to one brand (navico|furuno|raymarine), empty = all")
	targets    = flag.String("targets", "", "target mode: arpa|trails|none")
	replay     = flag.Bool("replay", false, "replay mode: force unspecified NIC, disable probing and commands")
	allowWifi  = flag.Bool("allow-wifi", false, "allow discovery on wireless interfaces")
	nmea0183   = flag.Bool("nmea0183", false, "ingest NMEA0183 navigation data")
	navAddr    = flag.String("nav-addr", "", "TCP address to dial for NMEA0183 input")
	dbPath     = flag.String("db", "", "sqlite database path for radar persistence")
	metricsAdr = flag.String("metrics-addr", "", "HTTP listen address for /metrics and the control API")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("radargw v%s (git SHA: %s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		os.Exit(0)
	}

	cfg := config.Default()
	if *configFile != "" {
		fileCfg, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("radargw: load config: %v", err)
		}
		cfg = cfg.Merge(fileCfg)
	}
	cfg = cfg.Merge(flagOverrides())

	db, err := gatewaydb.Open(*cfg.DBPath)
	if err != nil {
		log.Fatalf("radargw: open database: %v", err)
	}
	defer db.Close()

	reg := registry.New(db, *cfg.Replay)
	counters := &monitoring.Counters{}
	navStore := navdata.NewStore()
	trails := trail.NewEngine()
	web := webapi.NewServer(reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	if *cfg.NMEA0183 && cfg.NavigationAddress != nil && *cfg.NavigationAddress != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn, err := net.Dial("tcp", *cfg.NavigationAddress)
			if err != nil {
				monitoring.Errorf("radargw: nmea0183 dial %s: %v", *cfg.NavigationAddress, err)
				return
			}
			navdata.IngestNMEA0183(ctx, conn, navStore)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(counters))
		mux.Handle("/", web)
		server := &http.Server{Addr: *cfg.MetricsAddr, Handler: mux}

		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("radargw: http server: %v", err)
			}
		}()

		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			monitoring.Warnf("radargw: http shutdown: %v", err)
		}
	}()

	sess := &session.Session{
		Config:   cfg,
		Registry: reg,
		Counters: counters,
		Nav:      navStore,
		Trails:   trails,
		OnRadar:  web.RegisterRadar,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sess.Run(ctx); err != nil && err != context.Canceled {
			monitoring.Errorf("radargw: session terminated: %v", err)
		}
	}()

	wg.Wait()
	log.Println("radargw: graceful shutdown complete")
}

func flagOverrides() *config.Config {
	override := &config.Config{}
	if *brand != "" {
		override.Brand = brand
	}
	if *targets != "" {
		t := config.TargetMode(*targets)
		override.Targets = &t
	}
	if isFlagSet("replay") {
		override.Replay = replay
	}
	if isFlagSet("allow-wifi") {
		override.AllowWifi = allowWifi
	}
	if isFlagSet("nmea0183") {
		override.NMEA0183 = nmea0183
	}
	if *navAddr != "" {
		override.NavigationAddress = navAddr
	}
	if *dbPath != "" {
		override.DBPath = dbPath
	}
	if *metricsAdr != "" {
		override.MetricsAddr = metricsAdr
	}
	return override
}

func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
