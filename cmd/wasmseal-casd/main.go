package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"wasmseal.dev/wasmseal/storage"
	"wasmseal.dev/wasmseal/storage/casregistry"
	"wasmseal.dev/wasmseal/storage/grpccas"

	_ "wasmseal.dev/wasmseal/storage/ipfs"
	_ "wasmseal.dev/wasmseal/storage/localfs"
)

func main() {
	fs := flag.NewFlagSet("wasmseal-casd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7777", "listen address")
	backend := fs.String("backend", "localfs", "Artifact store backend name")
	verify := fs.Bool("verify", false, "Admit only modules with verifiable embedded claims")
	listBackends := fs.Bool("list-backends", false, "List supported backends and exit")

	casregistry.RegisterFlags(fs, casregistry.UsageDaemon)

	_ = fs.Parse(os.Args[1:])
	if *listBackends {
		for _, b := range casregistry.List(casregistry.UsageDaemon) {
			if b.Description == "" {
				_, _ = fmt.Fprintf(os.Stdout, "%s\n", b.Name)
				continue
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", b.Name, b.Description)
		}
		return
	}

	cas, closeFn, err := casregistry.Open(*backend, casregistry.UsageDaemon)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if closeFn != nil {
		defer closeFn()
	}
	if *verify {
		cas = storage.VerifyingCAS{Inner: cas}
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpccas.RegisterArtifactStoreServer(s, &grpccas.Server{CAS: cas})

	fmt.Fprintf(os.Stderr, "wasmseal-casd listening on %s (backend=%s)\n", lis.Addr().String(), *backend)
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
