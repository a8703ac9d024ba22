// demo.go walks through a complete BB84 exchange: simulate, sift, estimate
// the error rate, derive a key from Bob's sifted bits, then round-trip a
// message through the authenticated cipher.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/qlabs-sim/photonica/internal/constants"
	"github.com/qlabs-sim/photonica/pkg/crypto"
	"github.com/qlabs-sim/photonica/pkg/quantum"
	"github.com/qlabs-sim/photonica/pkg/sifting"
)

func demoCommand() {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	photons := fs.Int("photons", 48, "Number of photons to simulate")
	eve := fs.Float64("eve", 0.0, "Eve's interception probability in [0,1]")
	message := fs.String("message", "hello quantum world", "Message to round-trip")
	fs.Parse(os.Args[2:])

	ctx := context.Background()

	fmt.Printf("=== BB84 Demo: %d photons, eve probability %.2f ===\n\n", *photons, *eve)

	engine := quantum.NewEngine(quantum.EngineOpts{})
	traceRec, err := engine.Run(ctx, *photons, *eve)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("1. Simulated %d photons, %d intercepted by Eve\n",
		traceRec.Len(), traceRec.Intercepted())

	result, err := sifting.Sift(traceRec)
	if err != nil {
		fatal(err)
	}
	analysis := sifting.Analyze(result)
	fmt.Printf("2. Sifting kept %d basis-matched bits (%.0f%%)\n",
		result.SiftedLen(), 100*float64(result.SiftedLen())/float64(traceRec.Len()))
	fmt.Printf("3. QBER %.4f (95%% CI [%.4f, %.4f])",
		analysis.QBER, analysis.Lower, analysis.Upper)
	if analysis.EveSuspected {
		fmt.Print("  <- eavesdropper suspected!")
	}
	fmt.Println()

	if result.SiftedLen() == 0 {
		fmt.Println("\nNo sifted key material this run; try more photons.")
		return
	}

	key, err := crypto.DeriveKey(result.BobKey)
	if err != nil {
		fatal(err)
	}
	defer crypto.Zeroize(key)
	fmt.Printf("4. Derived a %d-byte key from Bob's %d sifted bits\n",
		len(key), result.SiftedLen())

	cipher, err := crypto.NewCipher(constants.CipherSuiteAES256GCM, key)
	if err != nil {
		fatal(err)
	}
	env, err := cipher.Encrypt([]byte(*message))
	if err != nil {
		fatal(err)
	}
	fmt.Printf("5. Encrypted %q -> %d ciphertext bytes under %s\n",
		*message, len(env.Ciphertext), env.Suite)

	plain, err := cipher.Decrypt(env)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("6. Decrypted -> %q\n", string(plain))

	// Eve tries her partial key.
	if len(result.EveKey) > 0 {
		if eveKey, err := crypto.DeriveKey(result.EveKey); err == nil {
			eveCipher, _ := crypto.NewCipher(constants.CipherSuiteAES256GCM, eveKey)
			if _, err := eveCipher.Decrypt(env); err != nil {
				fmt.Println("7. Eve's partial key fails to decrypt (authentication error)")
			} else {
				fmt.Println("7. Eve's key decrypted the message - she got lucky this run")
			}
			crypto.Zeroize(eveKey)
		}
	}
}
