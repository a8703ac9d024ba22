package main

import (
	"fmt"
	"os"

	pkgversion "github.com/qlabs-sim/photonica/pkg/version"
)

// Build-time variables (set via -ldflags)
var (
	version   = ""        // Set via -ldflags "-X main.version=x.y.z"
	buildTime = "unknown" // Set via -ldflags "-X main.buildTime=..."
	gitCommit = "unknown" // Set via -ldflags "-X main.gitCommit=..."
)

func getVersion() string {
	if version != "" {
		return version
	}
	return pkgversion.String()
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		runCommand()
	case "encrypt":
		encryptCommand()
	case "decrypt":
		decryptCommand()
	case "demo":
		demoCommand()
	case "sweep":
		sweepCommand()
	case "version":
		fmt.Printf("photonica version %s\n", getVersion())
		if buildTime != "unknown" {
			fmt.Printf("Built: %s\n", buildTime)
		}
		if gitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", gitCommit)
		}
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`photonica - BB84 Quantum Key Distribution Simulator

USAGE:
    photonica <command> [options]

COMMANDS:
    run       Simulate a BB84 key exchange and print the protocol table
    encrypt   Encrypt a message under a sifted key
    decrypt   Decrypt an envelope under a sifted key
    demo      Walk through a full exchange end to end
    sweep     Sweep photon counts and intercept probabilities, emit CSV
    version   Print version information
    help      Show this help message

Run 'photonica <command> --help' for more information on a command.

EXAMPLES:
    # Simulate 64 photons with a 30% eavesdropper
    photonica run --photons 64 --eve 0.3

    # Deterministic run as JSON
    photonica run --photons 16 --eve 0 --seed 42 --format json

    # Encrypt under a sifted key
    photonica encrypt --message "hello" --key 1,0,1,1,0,0,1,0

    # QBER sweep
    photonica sweep --photons 1000,2000 --eve 0.0,0.5,1.0`)
}
