// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gasmeter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsumeAccumulates(t *testing.T) {
	var m Meter
	m.Consume(GasVerifyBase)
	m.Consume(GasPerPublicInput * 3)
	require.Equal(t, GasVerifyBase+GasPerPublicInput*3, m.Used())
}

func TestMeterStartsAtZero(t *testing.T) {
	var m Meter
	require.Equal(t, uint64(0), m.Used())
}
