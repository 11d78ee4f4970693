package main

import (
	"flag"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ngaut/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	"github.com/tabkv-incubator/tabkv/config"
	"github.com/tabkv-incubator/tabkv/kv/client"
	"github.com/tabkv-incubator/tabkv/kv/server"
	"github.com/tabkv-incubator/tabkv/kv/transaction/participant"
	"github.com/tabkv-incubator/tabkv/kv/util/engine_util"
	"github.com/tabkv-incubator/tabkv/proto/pkg/txnpb"
)

var (
	configPath = flag.String("config", "", "config file path")
	storeAddr  = flag.String("addr", "", "store address")
	tabletID   = flag.String("tablet", "", "tablet id")
)

const (
	grpcInitialWindowSize     = 1 << 30
	grpcInitialConnWindowSize = 1 << 30
)

func main() {
	flag.Parse()
	conf := loadConfig()
	if *storeAddr != "" {
		conf.Server.StoreAddr = *storeAddr
	}
	if *tabletID != "" {
		conf.Server.TabletID = *tabletID
	}
	runtime.GOMAXPROCS(conf.Server.MaxProcs)
	log.SetLevelByString(conf.Server.LogLevel)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	log.Infof("conf %v", conf)

	db := engine_util.CreateDB("kv", &conf.Engine)
	engines := engine_util.NewEngines(db, conf.Engine.DBPath)

	pool := client.NewPool()
	ctx := server.NewTabletContext(conf.Server.TabletID, pool)
	part := participant.NewParticipant(ctx, db, time.Duration(conf.Server.TxnRPCTimeoutSecs)*time.Second)
	tabletServer := server.NewServer(engines, part, server.NewIntentApplier(engines))

	var alivePolicy = keepalive.EnforcementPolicy{
		MinTime:             2 * time.Second, // If a client pings more than once every 2 seconds, terminate the connection
		PermitWithoutStream: true,            // Allow pings even when there are no active streams
	}

	grpcServer := grpc.NewServer(
		grpc.KeepaliveEnforcementPolicy(alivePolicy),
		grpc.InitialWindowSize(grpcInitialWindowSize),
		grpc.InitialConnWindowSize(grpcInitialConnWindowSize),
		grpc.MaxRecvMsgSize(10*1024*1024),
	)
	txnpb.RegisterTabletServer(grpcServer, tabletServer)
	listenAddr := conf.Server.StoreAddr[strings.IndexByte(conf.Server.StoreAddr, ':'):]
	l, err := net.Listen("tcp", listenAddr)
	if err != nil {
		log.Fatal(err)
	}
	handleSignal(grpcServer)
	go func() {
		log.Infof("listening on %v", conf.Server.StatusHTTPAddr)
		http.HandleFunc("/status", func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		})
		err := http.ListenAndServe(conf.Server.StatusHTTPAddr, nil)
		if err != nil {
			log.Fatal(err)
		}
	}()
	err = grpcServer.Serve(l)
	if err != nil {
		log.Fatal(err)
	}
	if err = tabletServer.Stop(); err != nil {
		log.Fatal(err)
	}
	pool.Close()
	log.Info("Server stopped.")
}

func loadConfig() *config.Config {
	conf := config.DefaultConf
	if *configPath != "" {
		_, err := toml.DecodeFile(*configPath, &conf)
		if err != nil {
			panic(err)
		}
	}
	return &conf
}

func handleSignal(grpcServer *grpc.Server) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		log.Infof("Got signal [%s] to exit.", sig)
		grpcServer.Stop()
	}()
}
