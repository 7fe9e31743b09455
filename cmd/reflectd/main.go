// Command reflectd is the standalone gRPC server for the reflection VM:
// pkg/rpcapi.ReflectService wired to a Processor, configured from a
// pkg/rconfig YAML file. Grounded on the teacher's cmd/paserati's plain
// stdlib `flag` usage (a single-purpose server binary has one job and
// doesn't need kong's subcommand machinery the way cmd/reflectdump does).
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"google.golang.org/grpc"

	"typegraph/pkg/host"
	"typegraph/pkg/rconfig"
	"typegraph/pkg/reflectvm"
	"typegraph/pkg/rpcapi"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML ProcessorConfig file")
	addrOverride := flag.String("addr", "", "Override the config's listen address")
	flag.Parse()

	cfg := rconfig.Default()
	if *configPath != "" {
		loaded, err := rconfig.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reflectd: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addrOverride != "" {
		cfg.ListenAddr = *addrOverride
	}

	proc := reflectvm.NewProcessor(nil)
	classes := host.NewRegistry()

	lis, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflectd: %v\n", err)
		os.Exit(1)
	}

	grpcServer := grpc.NewServer()
	rpcapi.RegisterReflectServiceServer(grpcServer, &rpcapi.ReflectServer{
		Proc:    proc,
		Classes: classes,
	})

	log.Printf("reflectd: ReflectService listening on %s", cfg.ListenAddr)
	if err := grpcServer.Serve(lis); err != nil {
		fmt.Fprintf(os.Stderr, "reflectd: %v\n", err)
		os.Exit(1)
	}
}
