package ipfs

import (
	"flag"
	"os"
	"strings"

	"wasmseal.dev/wasmseal/storage"
	"wasmseal.dev/wasmseal/storage/casregistry"
)

var (
	flagBin  string
	flagPath string
)

func init() {
	casregistry.MustRegister(casregistry.Backend{
		Name:        "ipfs",
		Description: "Local Kubo repo via the ipfs CLI (offline block store)",
		Usage:       casregistry.UsageAny,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagBin, "ipfs-bin", "ipfs", "Path to the ipfs binary (for --backend=ipfs)")
			fs.StringVar(&flagPath, "ipfs-path", "", "IPFS repo path; sets IPFS_PATH (for --backend=ipfs)")
		},
		Open: func() (storage.CAS, func() error, error) {
			opts := Options{Bin: strings.TrimSpace(flagBin)}
			if p := strings.TrimSpace(flagPath); p != "" {
				opts.Env = append(os.Environ(), "IPFS_PATH="+p)
			}
			return New(opts), nil, nil
		},
	})
}
