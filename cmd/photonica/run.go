// run.go implements the run, encrypt, and decrypt subcommands, which are
// thin adapters over the boundary service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/qlabs-sim/photonica/internal/constants"
	"github.com/qlabs-sim/photonica/pkg/metrics"
	"github.com/qlabs-sim/photonica/pkg/protocol"
)

func runCommand() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	photons := fs.Int("photons", constants.DefaultPhotonCount, "Number of photons to simulate")
	eve := fs.Float64("eve", constants.DefaultInterceptProbability, "Eve's interception probability in [0,1]")
	seed := fs.Uint64("seed", 0, "Deterministic seed (0 means random)")
	format := fs.String("format", "text", "Output format: text or json")
	logLevel := fs.String("log", "warn", "Log level: debug, info, warn, error, silent")
	fs.Parse(os.Args[2:])

	logger := metrics.NewLogger(
		metrics.WithOutput(os.Stderr),
		metrics.WithLevel(metrics.ParseLevel(*logLevel)),
		metrics.WithName("photonica"),
	)
	svc := protocol.NewService(protocol.ServiceOpts{Logger: logger})

	req := &protocol.RunRequest{PhotonCount: *photons, EveProb: eve}
	if *seed != 0 {
		req.Seed = seed
	}

	resp, err := svc.Run(context.Background(), req)
	if err != nil {
		fatal(err)
	}

	if *format == "json" {
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(out))
		return
	}
	printRunTable(resp)
}

func printRunTable(resp *protocol.RunResponse) {
	fmt.Printf("%-5s %-9s %-12s %-12s %-5s %-5s %-4s %-7s\n",
		"idx", "alice", "a-basis", "b-basis", "match", "eve", "e-bit", "bob")
	for _, row := range resp.Rows {
		eveBit := "-"
		if row.EveBit != nil {
			eveBit = strconv.Itoa(*row.EveBit)
		}
		fmt.Printf("%-5d %-9d %-12s %-12s %-5v %-5v %-4s %-7d\n",
			row.Index, row.AliceBit, row.AliceBasis, row.BobBasis,
			row.BasesMatch, row.EveIntercepted, eveBit, row.BobBit)
	}
	fmt.Println()
	fmt.Printf("matched indices: %v\n", resp.MatchedIndices)
	fmt.Printf("alice key:       %s\n", keyString(resp.AliceKey))
	fmt.Printf("bob key:         %s\n", keyString(resp.BobKey))
	fmt.Printf("eve key:         %s\n", keyString(resp.EveKey))
	fmt.Printf("qber:            %.4f\n", resp.QBER)
	if resp.EveSuspected {
		fmt.Println("WARNING: error rate consistent with an intercept-resend attack")
	}
}

func encryptCommand() {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	message := fs.String("message", "", "Message to encrypt")
	key := fs.String("key", "", "Comma-separated sifted key bits, e.g. 1,0,1,1")
	suite := fs.String("suite", "aes-256-gcm", "Cipher suite: aes-256-gcm or chacha20-poly1305")
	fs.Parse(os.Args[2:])

	cs := constants.ParseCipherSuite(*suite)
	if !cs.IsSupported() {
		fatal(fmt.Errorf("unknown cipher suite %q", *suite))
	}
	svc := protocol.NewService(protocol.ServiceOpts{Suite: cs})

	bits, err := parseKeyFlag(*key)
	if err != nil {
		fatal(err)
	}
	resp, err := svc.Encrypt(context.Background(), &protocol.EncryptRequest{
		Message: *message,
		Key:     bits,
	})
	if err != nil {
		fatal(err)
	}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(out))
}

func decryptCommand() {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	envelope := fs.String("envelope", "", "JSON envelope produced by encrypt")
	key := fs.String("key", "", "Comma-separated sifted key bits")
	fs.Parse(os.Args[2:])

	var env protocol.EncryptResponse
	if err := json.Unmarshal([]byte(*envelope), &env); err != nil {
		fatal(fmt.Errorf("bad envelope: %w", err))
	}
	bits, err := parseKeyFlag(*key)
	if err != nil {
		fatal(err)
	}

	svc := protocol.NewService(protocol.ServiceOpts{})
	resp, err := svc.Decrypt(context.Background(), &protocol.DecryptRequest{
		Envelope: env,
		Key:      bits,
	})
	if err != nil {
		fatal(err)
	}
	fmt.Println(resp.Decrypted)
}

func parseKeyFlag(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	bits := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad key bit %q", p)
		}
		bits = append(bits, v)
	}
	return bits, nil
}

func keyString(bits []int) string {
	if len(bits) == 0 {
		return "(empty)"
	}
	var b strings.Builder
	for _, bit := range bits {
		b.WriteString(strconv.Itoa(bit))
	}
	return b.String()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
