package grpccas

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"wasmseal.dev/wasmseal/storage"
	"wasmseal.dev/wasmseal/storage/localfs"
)

func newBufClient(t *testing.T) *Client {
	t.Helper()

	dir := t.TempDir()
	cas, err := localfs.New(dir)
	if err != nil {
		t.Fatalf("localfs.New: %v", err)
	}

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	RegisterArtifactStoreServer(srv, &Server{CAS: cas})

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	return &Client{cc: cc, client: NewArtifactStoreClient(cc), Timeout: 2 * time.Second}
}

func TestGRPCCAS_LocalFS_RoundTrip(t *testing.T) {
	client := newBufClient(t)

	payload := []byte("hello grpccas")
	id, err := client.Put(payload)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !id.Defined() {
		t.Fatalf("expected defined CID")
	}
	if !client.Has(id) {
		t.Fatalf("Has: expected true")
	}
	got, err := client.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestGRPCCAS_GetMissingMapsToNotFound(t *testing.T) {
	client := newBufClient(t)

	missing, err := client.Put([]byte("other"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	// Recreate the backend empty so the CID no longer resolves.
	client2 := newBufClient(t)
	if _, err := client2.Get(missing); err != storage.ErrNotFound {
		t.Fatalf("Get miss: want ErrNotFound, got %v", err)
	}
	if client2.Has(missing) {
		t.Fatalf("Has: expected false on empty backend")
	}
}
