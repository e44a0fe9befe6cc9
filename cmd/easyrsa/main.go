// Command easyrsa generates key pairs and encrypts or decrypts short
// messages with the easyrsa block scheme.
//
// Usage:
//
//	easyrsa [-env .env] <command> [flags]
//
// Commands: keygen, encrypt, decrypt, demo, inspect, version.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
)

var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "easyrsa: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("easyrsa", flag.ContinueOnError)
	global.SetOutput(stderr)
	envFile := global.String("env", ".env", "dotenv file with EASYRSA_* settings")
	global.Usage = func() {
		fmt.Fprintln(stderr, "usage: easyrsa [-env file] <keygen|encrypt|decrypt|demo|inspect|version> [flags]")
		global.PrintDefaults()
	}
	if err := global.Parse(args); err != nil {
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return errUsage
	}

	if rest[0] == "version" {
		return versionCmd(stdout)
	}

	cfg, err := loadConfig(*envFile, os.LookupEnv)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a := &app{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: cfg.newLogger(stderr),
	}

	switch cmd, cmdArgs := rest[0], rest[1:]; cmd {
	case "keygen":
		return a.keygen(ctx, cmdArgs)
	case "encrypt":
		return a.encrypt(ctx, cmdArgs)
	case "decrypt":
		return a.decrypt(ctx, cmdArgs)
	case "demo":
		return a.demo(ctx, cmdArgs)
	case "inspect":
		return a.inspect(ctx, cmdArgs)
	default:
		global.Usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}
