// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command fixturegen generates a real Groth16 proof over a trivial
// "x * x == y" circuit and writes it out in the snarkjs wire format
// this contract expects. It mirrors
// original_source/contracts/zk-verifier/examples/generate_fixtures.rs:
// same circuit, same x=3/y=9 witness, same fixture files, just
// compiled and proved with gnark instead of arkworks. The key setup and
// the proof draw fresh randomness, so each run writes different points.
//
// Usage:
//
//	go run ./cmd/fixturegen -out fixtures
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	gnarkbn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	gnarkgroth16 "github.com/consensys/gnark/backend/groth16/bn254"
)

// squareCircuit enforces X * X == Y, with Y public and X a private witness.
type squareCircuit struct {
	X frontend.Variable `gnark:",secret"`
	Y frontend.Variable `gnark:",public"`
}

func (c *squareCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(api.Mul(c.X, c.X), c.Y)
	return nil
}

func g1ToWire(p *gnarkbn254.G1Affine) []string {
	return []string{p.X.String(), p.Y.String()}
}

// g2ToWire mirrors snarkjs' Fq2 ordering: component c1 before c0.
func g2ToWire(p *gnarkbn254.G2Affine) [][]string {
	return [][]string{
		{p.X.A1.String(), p.X.A0.String()},
		{p.Y.A1.String(), p.Y.A0.String()},
	}
}

func main() {
	outDir := flag.String("out", "fixtures", "directory to write fixture JSON files into")
	flag.Parse()

	var circuit squareCircuit
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "compile circuit:", err)
		os.Exit(1)
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "setup:", err)
		os.Exit(1)
	}

	assignment := squareCircuit{X: 3, Y: 9}
	witness, err := frontend.NewWitness(&assignment, ecc.BN254.ScalarField())
	if err != nil {
		fmt.Fprintln(os.Stderr, "build witness:", err)
		os.Exit(1)
	}
	proof, err := groth16.Prove(ccs, pk, witness)
	if err != nil {
		fmt.Fprintln(os.Stderr, "prove:", err)
		os.Exit(1)
	}

	bvk, ok := vk.(*gnarkgroth16.VerifyingKey)
	if !ok {
		fmt.Fprintln(os.Stderr, "unexpected verifying key type")
		os.Exit(1)
	}
	bproof, ok := proof.(*gnarkgroth16.Proof)
	if !ok {
		fmt.Fprintln(os.Stderr, "unexpected proof type")
		os.Exit(1)
	}

	ic := make([][]string, len(bvk.G1.K))
	for i := range bvk.G1.K {
		ic[i] = g1ToWire(&bvk.G1.K[i])
	}

	vkJSON := map[string]any{
		"alpha": g1ToWire(&bvk.G1.Alpha),
		"beta":  g2ToWire(&bvk.G2.Beta),
		"gamma": g2ToWire(&bvk.G2.Gamma),
		"delta": g2ToWire(&bvk.G2.Delta),
		"ic":    ic,
	}
	proofJSON := map[string]any{
		"pi_a": g1ToWire(&bproof.Ar),
		"pi_b": g2ToWire(&bproof.Bs),
		"pi_c": g1ToWire(&bproof.Krs),
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "create output dir:", err)
		os.Exit(1)
	}

	writeJSON(*outDir, "zk-square-circuit.json", map[string]any{
		"circuit":         "x * x == y, where x=3 and y=9",
		"vk":              vkJSON,
		"proof":           proofJSON,
		"valid_signal":    "9",
		"invalid_signal":  "10",
	})
	writeJSON(*outDir, "zk-set-vk-args.json", map[string]any{
		"circuit_type": "verified-builder",
		"vk":           vkJSON,
	})
	writeJSON(*outDir, "zk-valid-proof-args.json", map[string]any{
		"input": map[string]any{
			"circuit_type":      "verified-builder",
			"proof":             proofJSON,
			"public_signals":    []string{"9"},
			"store_credential":  true,
			"custom_expiration": 3600,
			"claim":             "e2e-real-groth16-test",
		},
	})
	writeJSON(*outDir, "zk-invalid-proof-args.json", map[string]any{
		"input": map[string]any{
			"circuit_type":      "verified-builder",
			"proof":             proofJSON,
			"public_signals":    []string{"10"},
			"store_credential":  true,
			"custom_expiration": 3600,
			"claim":             "should-not-be-stored",
		},
	})
	writeJSON(*outDir, "zk-valid-view-args.json", map[string]any{
		"input": map[string]any{
			"circuit_type":     "verified-builder",
			"proof":            proofJSON,
			"public_signals":   []string{"9"},
			"store_credential": false,
		},
	})

	fmt.Println("generated fixtures in", *outDir)
}

func writeJSON(dir, name string, value any) {
	path := filepath.Join(dir, name)
	content, err := json.Marshal(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal %s: %v\n", name, err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
		os.Exit(1)
	}
}
