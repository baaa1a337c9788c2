package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ipfs/go-cid"

	"wasmseal.dev/wasmseal/caps"
	"wasmseal.dev/wasmseal/keys"
	"wasmseal.dev/wasmseal/storage"
	"wasmseal.dev/wasmseal/storage/casregistry"
	"wasmseal.dev/wasmseal/wasm"

	_ "wasmseal.dev/wasmseal/storage/grpccas"
	_ "wasmseal.dev/wasmseal/storage/ipfs"
	_ "wasmseal.dev/wasmseal/storage/localfs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "sign":
		return cmdSign(args[1:], out, errOut)
	case "inspect":
		return cmdInspect(args[1:], out, errOut)
	case "hash":
		return cmdHash(args[1:], out, errOut)
	case "cid":
		return cmdCID(args[1:], out, errOut)
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "store":
		return cmdStore(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "wasmseal: sign, inspect, and store WebAssembly modules with embedded claims")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  wasmseal sign (--acct-seed-hex <64hex> | --acct-signer <name> [--acct-role <role>] | --acct-key-file <path>) [--mod-seed-hex <64hex> | --mod-key-file <path>] [--cap <cap> ...] [--tag <tag> ...] [--expires-days <n>] [--nbf-days <n>] [--out <file>] <file.wasm>")
	fmt.Fprintln(w, "  wasmseal inspect [--raw] <file.wasm>")
	fmt.Fprintln(w, "  wasmseal hash <file.wasm>")
	fmt.Fprintln(w, "  wasmseal cid [--artifact] <file.wasm>")
	fmt.Fprintln(w, "  wasmseal key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  wasmseal key derive --from <name> --role <role> [--force]")
	fmt.Fprintln(w, "  wasmseal key list")
	fmt.Fprintln(w, "  wasmseal key export --name <name> [--role <role>]")
	fmt.Fprintln(w, "  wasmseal store put [--verify] [backend flags] <file.wasm>")
	fmt.Fprintln(w, "  wasmseal store get [--verify] [backend flags] --cid <cid> [--out <file>]")
	fmt.Fprintln(w, "  wasmseal store has [backend flags] --cid <cid>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - --acct-seed-hex / --mod-seed-hex must be 32 bytes (64 hex chars) ed25519 seed")
	fmt.Fprintln(w, "  - keys are stored under ~/.wasmseal/keys/<name> (0600 private key files)")
	fmt.Fprintln(w, "  - sign generates a fresh module key when none is given (printed to stderr)")
	fmt.Fprintln(w, "  - hash/cid are computed over the module with its claims section removed")
	fmt.Fprintln(w, "  - store keys artifacts by the CID of the exact stored bytes")
	fmt.Fprintln(w, "  - store --verify admits only modules with verifiable embedded claims")
}

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdSign(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var acctSeedHex string
	var acctSigner string
	var acctRole string
	var acctKeyFile string
	var modSeedHex string
	var modKeyFile string
	var capList stringList
	var tagList stringList
	var expiresDays int
	var nbfDays int
	var outPath string

	fs.StringVar(&acctSeedHex, "acct-seed-hex", "", "Account (issuer) ed25519 seed as 64 hex chars")
	fs.StringVar(&acctSigner, "acct-signer", "", "Use a stored account key by name (from 'wasmseal key init')")
	fs.StringVar(&acctRole, "acct-role", "", "When using --acct-signer, optionally use a derived role key")
	fs.StringVar(&acctKeyFile, "acct-key-file", "", "Path to an account seed file (hex)")
	fs.StringVar(&modSeedHex, "mod-seed-hex", "", "Module (subject) ed25519 seed as 64 hex chars")
	fs.StringVar(&modKeyFile, "mod-key-file", "", "Path to a module seed file (hex)")
	fs.Var(&capList, "cap", "Capability identifier (repeatable)")
	fs.Var(&tagList, "tag", "Tag (repeatable)")
	fs.IntVar(&expiresDays, "expires-days", 0, "Token expires this many days from now (0 = never)")
	fs.IntVar(&nbfDays, "nbf-days", 0, "Token not valid before this many days from now (0 = immediately)")
	fs.StringVar(&outPath, "out", "", "Output file (default: <file>.signed.wasm)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: wasmseal sign [flags] <file.wasm>")
		return 2
	}
	if acctSeedHex == "" && acctSigner == "" && acctKeyFile == "" {
		fmt.Fprintln(errOut, "missing account signer: use --acct-seed-hex, --acct-signer, or --acct-key-file")
		return 2
	}
	if acctSeedHex != "" && (acctSigner != "" || acctKeyFile != "") {
		fmt.Fprintln(errOut, "conflicting signer flags: --acct-seed-hex cannot be combined with --acct-signer or --acct-key-file")
		return 2
	}
	if acctSigner != "" && acctKeyFile != "" {
		fmt.Fprintln(errOut, "conflicting signer flags: --acct-signer cannot be combined with --acct-key-file")
		return 2
	}
	if modSeedHex != "" && modKeyFile != "" {
		fmt.Fprintln(errOut, "conflicting flags: --mod-seed-hex cannot be combined with --mod-key-file")
		return 2
	}

	ks, err := keys.OpenKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	account, err := ks.LoadKeyPair(acctSeedHex, acctSigner, acctRole, acctKeyFile)
	if err != nil {
		fmt.Fprintf(errOut, "invalid account signer: %v\n", err)
		return 2
	}

	var module *keys.KeyPair
	switch {
	case modSeedHex != "" || modKeyFile != "":
		module, err = ks.LoadKeyPair(modSeedHex, "", "", modKeyFile)
		if err != nil {
			fmt.Fprintf(errOut, "invalid module key: %v\n", err)
			return 2
		}
	default:
		seed := make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			fmt.Fprintf(errOut, "rand: %v\n", err)
			return 1
		}
		module, err = keys.FromSeed(seed)
		if err != nil {
			fmt.Fprintf(errOut, "module key: %v\n", err)
			return 1
		}
		fmt.Fprintf(errOut, "Generated module key: %s\n", module.PublicKey())
	}

	path := fs.Arg(0)
	buf, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(path), err)
		return 1
	}

	signed, err := wasm.SignBufferWithClaims(buf, wasm.SignOptions{
		AccountKeyPair: account,
		ModuleKeyPair:  module,
		Caps:           capList,
		Tags:           tagList,
		ExpiresInDays:  expiresDays,
		NotBeforeDays:  nbfDays,
	})
	if err != nil {
		fmt.Fprintf(errOut, "sign: %v\n", err)
		return 1
	}

	if outPath == "" {
		ext := filepath.Ext(path)
		outPath = strings.TrimSuffix(path, ext) + ".signed" + ext
	}
	if err := os.WriteFile(outPath, signed, 0o644); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", outPath, err)
		return 1
	}
	fmt.Fprintf(out, "Signed module written to %s\n", outPath)
	fmt.Fprintf(out, "Account: %s\n", account.PublicKey())
	fmt.Fprintf(out, "Module:  %s\n", module.PublicKey())
	return 0
}

func cmdInspect(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var raw bool
	fs.BoolVar(&raw, "raw", false, "Print the raw token instead of decoded claims")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: wasmseal inspect [--raw] <file.wasm>")
		return 2
	}
	path := fs.Arg(0)
	buf, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(path), err)
		return 1
	}

	token, err := wasm.ExtractClaims(buf)
	if err != nil {
		fmt.Fprintf(errOut, "inspect: %v\n", err)
		if wasm.IsInvalidModuleHash(err) {
			fmt.Fprintln(errOut, "module bytes do not match the hash declared in the embedded token")
		}
		return 1
	}
	if token == nil {
		fmt.Fprintln(errOut, "module carries no claims token")
		return 1
	}

	if raw {
		_, _ = fmt.Fprintln(out, token.Raw)
		return 0
	}

	c := token.Claims
	fmt.Fprintf(out, "Token ID:  %s\n", c.ID)
	fmt.Fprintf(out, "Issuer:    %s\n", c.Issuer)
	fmt.Fprintf(out, "Subject:   %s\n", c.Subject)
	fmt.Fprintf(out, "Issued At: %s\n", time.Unix(c.IssuedAt, 0).UTC().Format(time.RFC3339))
	if c.NotBefore != 0 {
		fmt.Fprintf(out, "Not Before: %s\n", time.Unix(c.NotBefore, 0).UTC().Format(time.RFC3339))
	}
	if c.Expires != 0 {
		fmt.Fprintf(out, "Expires:   %s\n", time.Unix(c.Expires, 0).UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(out, "Hash:      %s\n", c.ModuleHash)
	if len(c.Caps) > 0 {
		fmt.Fprintln(out, "Capabilities:")
		for _, cap := range c.Caps {
			fmt.Fprintf(out, "  - %s\n", caps.Name(cap))
		}
	}
	if len(c.Tags) > 0 {
		fmt.Fprintf(out, "Tags:      %s\n", strings.Join(c.Tags, ", "))
	}
	return 0
}

func cmdHash(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: wasmseal hash <file.wasm>")
		return 2
	}
	path := fs.Arg(0)
	buf, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(path), err)
		return 1
	}
	m, err := wasm.Parse(buf)
	if err != nil {
		fmt.Fprintf(errOut, "parse: %v\n", err)
		return 1
	}
	hash, err := wasm.CanonicalHash(m)
	if err != nil {
		fmt.Fprintf(errOut, "hash: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, hash)
	return 0
}

func cmdCID(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("cid", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var artifact bool
	fs.BoolVar(&artifact, "artifact", false, "CID of the exact file bytes (claims section included)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: wasmseal cid [--artifact] <file.wasm>")
		return 2
	}
	path := fs.Arg(0)
	buf, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(path), err)
		return 1
	}
	if artifact {
		_, _ = fmt.Fprintln(out, wasm.ArtifactCID(buf))
		return 0
	}
	m, err := wasm.Parse(buf)
	if err != nil {
		fmt.Fprintf(errOut, "parse: %v\n", err)
		return 1
	}
	id, err := wasm.CanonicalCID(m)
	if err != nil {
		fmt.Fprintf(errOut, "cid: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, id)
	return 0
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printKeyUsage(errOut)
		return 2
	}
	switch args[0] {
	case "init":
		return cmdKeyInit(args[1:], out, errOut)
	case "derive":
		return cmdKeyDerive(args[1:], out, errOut)
	case "list":
		return cmdKeyList(args[1:], out, errOut)
	case "export":
		return cmdKeyExport(args[1:], out, errOut)
	case "help", "-h", "--help":
		printKeyUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n\n", args[0])
		printKeyUsage(errOut)
		return 2
	}
}

func printKeyUsage(w io.Writer) {
	fmt.Fprintln(w, "wasmseal key: minimal local key management (KMS-lite)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  wasmseal key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  wasmseal key derive --from <name> --role <role> [--force]")
	fmt.Fprintln(w, "  wasmseal key list")
	fmt.Fprintln(w, "  wasmseal key export --name <name> [--role <role>]")
}

func cmdKeyInit(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key init", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var name string
	var seedHex string
	var force bool

	fs.StringVar(&name, "name", "", "Key name (directory under ~/.wasmseal/keys)")
	fs.StringVar(&seedHex, "seed-hex", "", "Optional ed25519 seed as 64 hex chars (for reproducible demos)")
	fs.BoolVar(&force, "force", false, "Overwrite existing key files")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	if err := keys.CheckKeyName(name); err != nil {
		fmt.Fprintf(errOut, "invalid --name: %v\n", err)
		return 2
	}
	ks, err := keys.OpenKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}

	var seed []byte
	if seedHex != "" {
		var derr error
		seed, derr = keys.ParseSeedHex(seedHex)
		if derr != nil {
			fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", derr)
			return 2
		}
	} else {
		seed = make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			fmt.Fprintf(errOut, "rand: %v\n", err)
			return 1
		}
	}

	publicKey, rootPath, err := ks.InitializeRootKey(name, seed, force)
	if err != nil {
		fmt.Fprintf(errOut, "write key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Created root key: %s\n", publicKey)
	fmt.Fprintf(out, "Stored at: %s\n", rootPath)
	return 0
}

func cmdKeyDerive(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key derive", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var from string
	var role string
	var force bool

	fs.StringVar(&from, "from", "", "Root key name")
	fs.StringVar(&role, "role", "", "Role identifier (e.g. account, module, operator)")
	fs.BoolVar(&force, "force", false, "Overwrite existing key files")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if from == "" {
		fmt.Fprintln(errOut, "missing --from")
		return 2
	}
	if role == "" {
		fmt.Fprintln(errOut, "missing --role")
		return 2
	}
	if err := keys.CheckKeyName(from); err != nil {
		fmt.Fprintf(errOut, "invalid --from: %v\n", err)
		return 2
	}
	if err := keys.CheckRole(role); err != nil {
		fmt.Fprintf(errOut, "invalid --role: %v\n", err)
		return 2
	}
	ks, err := keys.OpenKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	publicKey, rolePath, err := ks.DeriveKeyForRole(from, role, force)
	if err != nil {
		fmt.Fprintf(errOut, "derive role key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Created role key: %s\n", publicKey)
	fmt.Fprintf(out, "Stored at: %s\n", rolePath)
	return 0
}

func cmdKeyExport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key export", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var name string
	var role string

	fs.StringVar(&name, "name", "", "Key name")
	fs.StringVar(&role, "role", "", "Optional role (if set, exports derived role key)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	if err := keys.CheckKeyName(name); err != nil {
		fmt.Fprintf(errOut, "invalid --name: %v\n", err)
		return 2
	}
	if role != "" {
		if err := keys.CheckRole(role); err != nil {
			fmt.Fprintf(errOut, "invalid --role: %v\n", err)
			return 2
		}
	}
	ks, err := keys.OpenKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	publicKey, err := ks.ExportKey(name, role)
	if err != nil {
		fmt.Fprintf(errOut, "export key: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, publicKey)
	return 0
}

func cmdKeyList(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key list", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	ks, err := keys.OpenKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	entries, err := ks.ListKeys()
	if err != nil {
		fmt.Fprintf(errOut, "list keys: %v\n", err)
		return 1
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s\n", e.Identifier)
		for _, r := range e.Roles {
			fmt.Fprintf(out, "  - %s\n", r)
		}
	}
	return 0
}

func cmdStore(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: wasmseal store <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: put, get, has")
		return 2
	}
	switch args[0] {
	case "put":
		return cmdStorePut(args[1:], out, errOut)
	case "get":
		return cmdStoreGet(args[1:], out, errOut)
	case "has":
		return cmdStoreHas(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown store subcommand: %s\n", args[0])
		return 2
	}
}

type storeFlags struct {
	backend      string
	verify       bool
	listBackends bool
}

func (c *storeFlags) add(fs *flag.FlagSet) {
	fs.StringVar(&c.backend, "backend", "localfs", "Artifact store backend name")
	fs.BoolVar(&c.verify, "verify", false, "Admit only modules with verifiable embedded claims")
	fs.BoolVar(&c.listBackends, "list-backends", false, "List supported backends and exit")
	casregistry.RegisterFlags(fs, casregistry.UsageCLI)
}

func (c *storeFlags) openCAS() (storage.CAS, func() error, error) {
	cas, closeFn, err := casregistry.Open(c.backend, casregistry.UsageCLI)
	if err != nil {
		return nil, nil, err
	}
	if c.verify {
		cas = storage.VerifyingCAS{Inner: cas}
	}
	return cas, closeFn, nil
}

func printBackends(w io.Writer) {
	for _, b := range casregistry.List(casregistry.UsageCLI) {
		if b.Description == "" {
			_, _ = fmt.Fprintf(w, "%s\n", b.Name)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", b.Name, b.Description)
	}
}

func cmdStorePut(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("store put", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common storeFlags
	common.add(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: wasmseal store put [flags] <file.wasm>")
		return 2
	}

	cas, closeFn, err := common.openCAS()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	p := fs.Arg(0)
	b, err := os.ReadFile(p)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(p), err)
		return 1
	}
	id, err := cas.Put(b)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	_, _ = fmt.Fprintln(out, id.String())
	return 0
}

func cmdStoreGet(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("store get", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common storeFlags
	common.add(fs)

	var cidStr string
	var outPath string
	fs.StringVar(&cidStr, "cid", "", "CID to fetch")
	fs.StringVar(&outPath, "out", "", "Output file (optional; default stdout)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if cidStr == "" {
		fmt.Fprintln(errOut, "missing --cid")
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(errOut, "usage: wasmseal store get [flags] --cid <cid> [--out <file>]")
		return 2
	}

	cas, closeFn, err := common.openCAS()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	id, err := cid.Decode(cidStr)
	if err != nil {
		fmt.Fprintln(errOut, storage.ErrInvalidCID)
		return 1
	}

	b, err := cas.Get(id)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	if outPath == "" {
		_, _ = out.Write(b)
		return 0
	}
	if err := os.WriteFile(outPath, b, 0o600); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", outPath, err)
		return 1
	}
	return 0
}

func cmdStoreHas(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("store has", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common storeFlags
	common.add(fs)

	var cidStr string
	fs.StringVar(&cidStr, "cid", "", "CID to check")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if common.listBackends {
		printBackends(out)
		return 0
	}
	if cidStr == "" {
		fmt.Fprintln(errOut, "missing --cid")
		return 2
	}

	cas, closeFn, err := common.openCAS()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	id, err := cid.Decode(cidStr)
	if err != nil {
		fmt.Fprintln(errOut, storage.ErrInvalidCID)
		return 1
	}
	if !cas.Has(id) {
		_, _ = fmt.Fprintln(out, "false")
		return 1
	}
	_, _ = fmt.Fprintln(out, "true")
	return 0
}
