package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	exportservice "github.com/wso2/twin-export-service/internal/export/service"
	policystore "github.com/wso2/twin-export-service/internal/exportpolicy/store"
	invprovider "github.com/wso2/twin-export-service/internal/inventory/provider"
	"github.com/wso2/twin-export-service/internal/registry/source"
	"github.com/wso2/twin-export-service/internal/system/config"
	"github.com/wso2/twin-export-service/internal/system/log"
	"github.com/wso2/twin-export-service/internal/system/managers"
	"github.com/wso2/twin-export-service/internal/system/metrics"
)

func main() {
	tesHome := getTESHome()
	const configFile = "/repository/conf/deployment.yaml"

	envFiles, err := filepath.Glob("config/*.env")
	if err == nil && len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	// Load the configuration file
	tesConfig, err := config.LoadConfig(tesHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize runtime configurations.
	if err := config.InitializeTESRuntime(tesHome, tesConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime: %v", err)
	}

	// Initialize logger
	if err := log.Init(tesConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	// Build the export pipeline.
	registry := prometheus.NewRegistry()
	serviceMetrics := metrics.New(registry)

	inventory, err := invprovider.NewInventoryProvider().GetInventoryStore()
	if err != nil {
		logger.Fatal("Failed to initialize inventory store", log.Error(err))
	}

	exporter := exportservice.NewExportService(source.NewClient(), inventory, serviceMetrics)
	scheduler := exportservice.NewScheduler(
		policystore.NewPolicyStore(tesConfig.Policy.File),
		exporter,
		tesConfig.Scheduler.PollIntervalSeconds,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go scheduler.Run(ctx)

	serverAddr := fmt.Sprintf("%s:%d", tesConfig.Addr.Host, tesConfig.Addr.Port)
	mux := initMultiplexer(registry)
	logger.Info("WSO2 twin export service starting", log.String("addr", serverAddr))

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}

	server := &http.Server{Handler: mux}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
	logger.Info("twin-export-service component has stopped.")
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(registry *prometheus.Registry) *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, registry)

	// Register the services.
	if err := serviceManager.RegisterServices(); err != nil {
		log.GetLogger().Error("Failed to register the services.", log.Error(err))
	}

	return mux
}

func getTESHome() string {

	// Parse project directory from command line arguments.
	projectHome := ""
	projectHomeFlag := flag.String("tesHome", "", "Path to twin export service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		projectHome = *projectHomeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			stdlog.Fatalf("Failed to get current working directory: %v", dirErr)
		}
		projectHome = dir
	}

	return projectHome
}
