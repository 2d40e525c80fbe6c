// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bn254io

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/stretchr/testify/require"
)

func TestParseFq(t *testing.T) {
	v, err := ParseFq("2")
	require.NoError(t, err)
	var want fp.Element
	want.SetUint64(2)
	require.True(t, want.Equal(&v))
}

func TestParseFqRejectsNonDecimal(t *testing.T) {
	_, err := ParseFq("0x2")
	require.Error(t, err)
}

func TestParseFqRejectsNegative(t *testing.T) {
	_, err := ParseFq("-1")
	require.Error(t, err)
}

func TestParseFqRejectsOutOfRange(t *testing.T) {
	_, err := ParseFq(fp.Modulus().String())
	require.Error(t, err)
}

func TestParseFr(t *testing.T) {
	v, err := ParseFr("9")
	require.NoError(t, err)
	require.Equal(t, "9", v.String())
}
