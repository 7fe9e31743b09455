package main

import (
	"fmt"
	"log"
	"net"
	"net/http"

	"google.golang.org/grpc"

	"typegraph/pkg/httpapi"
	"typegraph/pkg/rconfig"
	"typegraph/pkg/reflectvm"
	"typegraph/pkg/rpcapi"
)

// ServeCmd starts the gRPC ReflectService on cfg.ListenAddr and the
// debug HTTP mirror on a second address, sharing one Processor.
type ServeCmd struct {
	Config   string `help:"Path to a YAML ProcessorConfig file." optional:""`
	HTTPAddr string `help:"Address for the debug HTTP mirror." default:"127.0.0.1:7434"`
}

func (c *ServeCmd) Run() error {
	cfg := rconfig.Default()
	if c.Config != "" {
		loaded, err := rconfig.Load(c.Config)
		if err != nil {
			return fmt.Errorf("reflectdump serve: %w", err)
		}
		cfg = loaded
	}

	proc := reflectvm.NewProcessor(nil)

	lis, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("reflectdump serve: %w", err)
	}
	grpcServer := grpc.NewServer()
	rpcapi.RegisterReflectServiceServer(grpcServer, &rpcapi.ReflectServer{Proc: proc})

	errCh := make(chan error, 2)
	go func() {
		log.Printf("reflectdump: gRPC ReflectService listening on %s", cfg.ListenAddr)
		errCh <- grpcServer.Serve(lis)
	}()
	go func() {
		log.Printf("reflectdump: debug HTTP mirror listening on %s", c.HTTPAddr)
		errCh <- http.ListenAndServe(c.HTTPAddr, httpapi.NewMux(proc))
	}()

	return <-errCh
}
