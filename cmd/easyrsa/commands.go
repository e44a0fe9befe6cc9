package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"

	"github.com/coinbase/easyrsa-go/pkg/easyrsa"
	"github.com/coinbase/easyrsa-go/pkg/easyrsa/detrand"
	"github.com/coinbase/easyrsa-go/pkg/easyrsa/keystore"
	"github.com/coinbase/easyrsa-go/pkg/easyrsa/logging"
)

const (
	defaultPublicKeyFile  = "public_key.txt"
	defaultPrivateKeyFile = "private_key.txt"
	demoKeySize           = 256
	demoMessage           = "Hello, World!"
)

type app struct {
	cfg    config
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) engine(keySize int) (*easyrsa.Engine, error) {
	cfg := easyrsa.Config{
		KeySize: keySize,
		Rounds:  a.cfg.Rounds,
		Logger:  logging.New(a.logger),
	}
	if a.cfg.Seed != "" {
		a.logger.Warn("deterministic randomness enabled; keys are reproducible from the seed")
		cfg.Rand = detrand.New([]byte(a.cfg.Seed))
	}
	return easyrsa.New(cfg)
}

func (a *app) keygen(ctx context.Context, args []string) error {
	fs := a.flagSet("keygen")
	size := fs.Int("size", a.cfg.KeySize, "key size in bits")
	pubPath := fs.String("pub", defaultPublicKeyFile, "public key output file")
	privPath := fs.String("priv", defaultPrivateKeyFile, "private key output file")
	db := fs.String("db", a.cfg.DB, "also store the pair in this SQLite database")
	label := fs.String("label", "", "label for the stored pair")
	if err := fs.Parse(args); err != nil {
		return err
	}

	eng, err := a.engine(*size)
	if err != nil {
		return err
	}
	pub, priv, err := eng.GenerateKeys(ctx)
	if err != nil {
		return fmt.Errorf("generate keys: %w", err)
	}
	defer priv.Zeroize()

	if err := writeKeyFiles(*pubPath, *privPath, pub, priv); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "public key:  %s\nprivate key: %s\n", *pubPath, *privPath)

	if *db != "" {
		id, err := a.storePair(ctx, *db, *label, pub, priv)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "stored as:   %s\n", id)
	}
	return nil
}

func (a *app) encrypt(ctx context.Context, args []string) error {
	fs := a.flagSet("encrypt")
	pubPath := fs.String("pub", defaultPublicKeyFile, "public key file")
	db := fs.String("db", a.cfg.DB, "SQLite database holding the key pair")
	id := fs.String("id", "", "stored key pair ID; takes precedence over -pub")
	message := fs.String("m", "", "message to encrypt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pub, err := a.publicKey(ctx, *pubPath, *db, *id)
	if err != nil {
		return err
	}
	eng, err := easyrsa.New(easyrsa.Config{KeySize: a.cfg.KeySize, Rounds: a.cfg.Rounds})
	if err != nil {
		return err
	}
	ct, err := eng.Encrypt([]byte(*message), pub)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	fmt.Fprintf(a.stdout, "ciphertext: %s\nlength: %d\n", hex.EncodeToString(ct.Data), ct.Length)
	return nil
}

func (a *app) decrypt(ctx context.Context, args []string) error {
	fs := a.flagSet("decrypt")
	privPath := fs.String("priv", defaultPrivateKeyFile, "private key file")
	db := fs.String("db", a.cfg.DB, "SQLite database holding the key pair")
	id := fs.String("id", "", "stored key pair ID; takes precedence over -priv")
	ciphertext := fs.String("c", "", "hex encoded ciphertext")
	length := fs.Int("len", -1, "plaintext length printed by encrypt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *length < 0 {
		return fmt.Errorf("%w: -len is required", errUsage)
	}
	data, err := hex.DecodeString(*ciphertext)
	if err != nil {
		return fmt.Errorf("decode ciphertext: %w", err)
	}

	priv, err := a.privateKey(ctx, *privPath, *db, *id)
	if err != nil {
		return err
	}
	defer priv.Zeroize()

	eng, err := easyrsa.New(easyrsa.Config{KeySize: a.cfg.KeySize, Rounds: a.cfg.Rounds})
	if err != nil {
		return err
	}
	msg, err := eng.Decrypt(&easyrsa.Ciphertext{Data: data, Length: *length}, priv)
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}
	defer easyrsa.ZeroizeBytes(msg)

	if _, err := a.stdout.Write(append(msg, '\n')); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// demo generates a pair, saves and reloads it, then round trips a message.
func (a *app) demo(ctx context.Context, args []string) error {
	fs := a.flagSet("demo")
	size := fs.Int("size", demoKeySize, "key size in bits")
	dir := fs.String("dir", ".", "directory for the key files")
	message := fs.String("m", demoMessage, "message to encrypt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	eng, err := a.engine(*size)
	if err != nil {
		return err
	}
	pub, priv, err := eng.GenerateKeys(ctx)
	if err != nil {
		return fmt.Errorf("generate keys: %w", err)
	}
	defer priv.Zeroize()

	pubPath := filepath.Join(*dir, defaultPublicKeyFile)
	privPath := filepath.Join(*dir, defaultPrivateKeyFile)
	if err := writeKeyFiles(pubPath, privPath, pub, priv); err != nil {
		return err
	}

	loadedPub, err := a.publicKey(ctx, pubPath, "", "")
	if err != nil {
		return err
	}
	loadedPriv, err := a.privateKey(ctx, privPath, "", "")
	if err != nil {
		return err
	}
	defer loadedPriv.Zeroize()

	ct, err := eng.Encrypt([]byte(*message), loadedPub)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	plain, err := eng.Decrypt(ct, loadedPriv)
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}

	fmt.Fprintf(a.stdout, "Message: %q\n", *message)
	fmt.Fprintf(a.stdout, "Encrypt: %s (length %d)\n", hex.EncodeToString(ct.Data), ct.Length)
	fmt.Fprintf(a.stdout, "Decrypt: %q\n", plain)
	if !bytes.Equal(plain, []byte(*message)) {
		return errors.New("decrypted message does not match")
	}
	return nil
}

type keyView struct {
	Kind        string
	Size        int
	ModulusBits int
	Modulus     string
	Exponent    string
}

type entryView struct {
	ID        string
	Label     string
	CreatedAt string
	Key       keyView
}

func publicView(pub *easyrsa.PublicKey) keyView {
	return keyView{
		Kind:        "public",
		Size:        pub.Size(),
		ModulusBits: pub.N.BitLen(),
		Modulus:     pub.N.String(),
		Exponent:    pub.E.String(),
	}
}

func privateView(priv *easyrsa.PrivateKey) keyView {
	return keyView{
		Kind:        "private",
		Size:        priv.Size(),
		ModulusBits: priv.N.BitLen(),
		Modulus:     priv.N.String(),
		Exponent:    logging.Placeholder(),
	}
}

// inspect dumps key metadata. Private exponents are never printed.
func (a *app) inspect(ctx context.Context, args []string) error {
	fs := a.flagSet("inspect")
	pubPath := fs.String("pub", "", "public key file")
	privPath := fs.String("priv", "", "private key file")
	db := fs.String("db", "", "list the pairs in this SQLite database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	var views []any
	if *pubPath != "" {
		pub, err := a.publicKey(ctx, *pubPath, "", "")
		if err != nil {
			return err
		}
		views = append(views, publicView(pub))
	}
	if *privPath != "" {
		priv, err := a.privateKey(ctx, *privPath, "", "")
		if err != nil {
			return err
		}
		views = append(views, privateView(priv))
		priv.Zeroize()
	}
	if *db != "" {
		store, err := a.openStore(ctx, *db)
		if err != nil {
			return err
		}
		defer store.Close()
		entries, err := store.List(ctx)
		if err != nil {
			return err
		}
		for _, e := range entries {
			views = append(views, entryView{
				ID:        e.ID.String(),
				Label:     e.Label,
				CreatedAt: e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
				Key:       publicView(e.Public),
			})
			e.Private.Zeroize()
		}
	}
	if len(views) == 0 {
		return fmt.Errorf("%w: inspect needs -pub, -priv or -db", errUsage)
	}
	for _, v := range views {
		dumper.Fdump(a.stdout, v)
	}
	return nil
}

func versionCmd(stdout io.Writer) error {
	_, err := fmt.Fprintf(stdout, "easyrsa %s\n", easyrsa.LibraryVersion())
	return err
}

func writeKeyFiles(pubPath, privPath string, pub *easyrsa.PublicKey, priv *easyrsa.PrivateKey) error {
	pubAbs, err := SecurePath(pubPath)
	if err != nil {
		return fmt.Errorf("public key path: %w", err)
	}
	privAbs, err := SecurePath(privPath)
	if err != nil {
		return fmt.Errorf("private key path: %w", err)
	}
	if err := keystore.SavePublicKey(pubAbs, pub); err != nil {
		return err
	}
	return keystore.SavePrivateKey(privAbs, priv)
}

func (a *app) openStore(ctx context.Context, dsn string) (*keystore.SQLStore, error) {
	path, err := SecurePath(dsn)
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}
	return keystore.OpenSQLStore(ctx, path)
}

func (a *app) storePair(ctx context.Context, dsn, label string, pub *easyrsa.PublicKey, priv *easyrsa.PrivateKey) (uuid.UUID, error) {
	store, err := a.openStore(ctx, dsn)
	if err != nil {
		return uuid.Nil, err
	}
	defer store.Close()
	return store.Put(ctx, label, pub, priv)
}

func (a *app) storedEntry(ctx context.Context, dsn, id string) (*keystore.Entry, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: -id needs -db", errUsage)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse key id: %w", err)
	}
	store, err := a.openStore(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Get(ctx, parsed)
}

func (a *app) publicKey(ctx context.Context, path, dsn, id string) (*easyrsa.PublicKey, error) {
	if id != "" {
		entry, err := a.storedEntry(ctx, dsn, id)
		if err != nil {
			return nil, err
		}
		entry.Private.Zeroize()
		return entry.Public, nil
	}
	abs, err := SecurePath(path)
	if err != nil {
		return nil, fmt.Errorf("public key path: %w", err)
	}
	return keystore.LoadPublicKey(abs)
}

func (a *app) privateKey(ctx context.Context, path, dsn, id string) (*easyrsa.PrivateKey, error) {
	if id != "" {
		entry, err := a.storedEntry(ctx, dsn, id)
		if err != nil {
			return nil, err
		}
		return entry.Private, nil
	}
	abs, err := SecurePath(path)
	if err != nil {
		return nil, fmt.Errorf("private key path: %w", err)
	}
	return keystore.LoadPrivateKey(abs)
}
