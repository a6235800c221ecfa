// Command seccure-go is a command line front end for the seccure package.
//
// Messages and ciphertexts are read from standard input and results are
// written to standard output. Private keys are derived from a passphrase
// given with --passphrase or read from the first line of --passphrase-file.
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/hsiuhsiu/seccure-go/pkg/seccure"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/logging"
)

type secretArgs struct {
	Passphrase     string `arg:"-p,--passphrase" help:"passphrase the private key is derived from"`
	PassphraseFile string `arg:"-F,--passphrase-file" help:"read the passphrase from the first line of this file"`
}

type keygenCmd struct {
	secretArgs
}

type signCmd struct {
	secretArgs
}

type verifyCmd struct {
	PublicKey string `arg:"positional,required" help:"signer public key"`
	Signature string `arg:"positional,required" help:"signature to check"`
}

type encryptCmd struct {
	PublicKey string `arg:"positional,required" help:"recipient public key"`
}

type decryptCmd struct {
	secretArgs
}

type curvesCmd struct{}

type cliArgs struct {
	Keygen  *keygenCmd  `arg:"subcommand:keygen" help:"print the public key for a passphrase"`
	Sign    *signCmd    `arg:"subcommand:sign" help:"sign standard input"`
	Verify  *verifyCmd  `arg:"subcommand:verify" help:"verify a signature over standard input"`
	Encrypt *encryptCmd `arg:"subcommand:encrypt" help:"encrypt standard input to a public key"`
	Decrypt *decryptCmd `arg:"subcommand:decrypt" help:"decrypt standard input"`
	Curves  *curvesCmd  `arg:"subcommand:curves" help:"list the supported curves"`

	Curve   string `arg:"-c,--curve" help:"curve name; defaults to SECCURE_CURVE, or the curve matching the public key length"`
	Verbose bool   `arg:"-v,--verbose" help:"log debug output to standard error"`
}

func (cliArgs) Version() string {
	return seccure.LibraryVersion()
}

var errBadSignature = errors.New("signature is invalid")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var a cliArgs
	p, err := arg.NewParser(arg.Config{Program: "seccure-go"}, &a)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	switch err := p.Parse(argv); {
	case errors.Is(err, arg.ErrHelp):
		p.WriteHelpForSubcommand(stdout, p.SubcommandNames()...)
		return 0
	case errors.Is(err, arg.ErrVersion):
		fmt.Fprintln(stdout, a.Version())
		return 0
	case err != nil:
		p.WriteUsage(stderr)
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	if p.Subcommand() == nil {
		p.WriteUsage(stderr)
		return 2
	}

	level := slog.LevelWarn
	if a.Verbose {
		level = slog.LevelDebug
	}
	log := logging.New(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if err := dispatch(&a, p.Subcommand(), stdin, stdout, log); err != nil {
		if errors.Is(err, errBadSignature) {
			fmt.Fprintln(stderr, "FAILURE:", err)
			return 1
		}
		log.Error(context.Background(), "command failed", "error", err)
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func dispatch(a *cliArgs, cmd any, stdin io.Reader, stdout io.Writer, log logging.Logger) error {
	if _, ok := cmd.(*curvesCmd); ok {
		for _, name := range seccure.Curves() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	opts, err := seccure.OptionsFromEnv(nil)
	if err != nil {
		return err
	}
	opts.Logger = log
	if a.Curve != "" {
		opts.Curve = a.Curve
	}

	switch c := cmd.(type) {
	case *keygenCmd:
		return withSession(opts, log, func(s *seccure.Session) error {
			kp, err := keygen(s, c.secretArgs)
			if err != nil {
				return err
			}
			defer kp.Free()
			fmt.Fprintf(stdout, "The public key is: %s\n", kp.PublicKey())
			return nil
		})

	case *signCmd:
		msg, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		return withSession(opts, log, func(s *seccure.Session) error {
			kp, err := keygen(s, c.secretArgs)
			if err != nil {
				return err
			}
			defer kp.Free()
			sig, err := s.Sign(msg, kp)
			if err != nil {
				return err
			}
			defer sig.Free()
			fmt.Fprintf(stdout, "%s\n", sig.Bytes())
			return nil
		})

	case *verifyCmd:
		if err := pickCurve(a, &opts, c.PublicKey); err != nil {
			return err
		}
		msg, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		return withSession(opts, log, func(s *seccure.Session) error {
			kp, err := s.NewKeyPair([]byte(c.PublicKey), nil)
			if err != nil {
				return err
			}
			defer kp.Free()
			if err := s.VerifySignature(msg, []byte(c.Signature), kp); err != nil {
				if errors.Is(err, seccure.ErrInvalidSignature) {
					return errBadSignature
				}
				return err
			}
			fmt.Fprintln(stdout, "Signature is valid")
			return nil
		})

	case *encryptCmd:
		if err := pickCurve(a, &opts, c.PublicKey); err != nil {
			return err
		}
		plaintext, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read plaintext: %w", err)
		}
		return withSession(opts, log, func(s *seccure.Session) error {
			kp, err := s.NewKeyPair([]byte(c.PublicKey), nil)
			if err != nil {
				return err
			}
			defer kp.Free()
			env, err := s.Encrypt(plaintext, kp)
			if err != nil {
				return err
			}
			defer env.Free()
			_, err = stdout.Write(env.Bytes())
			return err
		})

	case *decryptCmd:
		envelope, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read ciphertext: %w", err)
		}
		return withSession(opts, log, func(s *seccure.Session) error {
			kp, err := keygen(s, c.secretArgs)
			if err != nil {
				return err
			}
			defer kp.Free()
			pt, err := s.Decrypt(envelope, kp)
			if err != nil {
				return err
			}
			defer pt.Free()
			_, err = stdout.Write(pt.Bytes())
			return err
		})
	}
	return fmt.Errorf("unsupported command %T", cmd)
}

func withSession(opts seccure.Options, log logging.Logger, fn func(*seccure.Session) error) error {
	s, err := seccure.NewSession(&opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			log.Warn(context.Background(), "close session", "error", cerr)
		}
	}()
	log.Debug(context.Background(), "session ready", "curve", s.Curve().Name)
	return fn(s)
}

// pickCurve selects the curve from the public key length when --curve is
// not given.
func pickCurve(a *cliArgs, opts *seccure.Options, pub string) error {
	if a.Curve != "" {
		return nil
	}
	name, err := seccure.DetectCurve([]byte(pub))
	if err != nil {
		return err
	}
	opts.Curve = name
	return nil
}

func keygen(s *seccure.Session, sa secretArgs) (*seccure.KeyPair, error) {
	pass, err := sa.passphrase()
	if err != nil {
		return nil, err
	}
	defer seccure.ZeroizeBytes(pass)
	return s.Keygen(pass)
}

func (sa secretArgs) passphrase() ([]byte, error) {
	switch {
	case sa.Passphrase != "" && sa.PassphraseFile != "":
		return nil, errors.New("give either --passphrase or --passphrase-file")
	case sa.Passphrase != "":
		return []byte(sa.Passphrase), nil
	case sa.PassphraseFile != "":
		f, err := os.Open(sa.PassphraseFile)
		if err != nil {
			return nil, fmt.Errorf("open passphrase file: %w", err)
		}
		defer f.Close()
		line, err := bufio.NewReader(f).ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read passphrase file: %w", err)
		}
		line = bytes.TrimRight(line, "\r\n")
		if len(line) == 0 {
			return nil, errors.New("passphrase file is empty")
		}
		return line, nil
	}
	return nil, errors.New("a passphrase is required")
}
