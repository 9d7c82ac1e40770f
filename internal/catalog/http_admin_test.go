// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocmai/camellia/internal/catalog"
)

/*
TestParsePrice verifies decimal amounts become integer cents without any
floating-point involvement.
*/
func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{"whole_and_cents", "19.99", 1999, false},
		{"whole_only", "20", 2000, false},
		{"single_decimal_padded", "19.5", 1950, false},
		{"dollar_prefix", "$42.50", 4250, false},
		{"zero", "0", 0, false},
		{"classic_float_trap", "0.29", 29, false},
		{"three_decimals", "1.999", 0, true},
		{"negative", "-5.00", 0, true},
		{"not_a_number", "abc", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.ParsePrice(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
