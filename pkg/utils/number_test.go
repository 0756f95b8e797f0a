package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	testCases := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "Deve arredondar para baixo",
			input:    33.333333,
			expected: 33.33,
		},
		{
			name:     "Deve arredondar para cima",
			input:    66.666666,
			expected: 66.67,
		},
		{
			name:     "Deve manter valor com duas casas",
			input:    50.25,
			expected: 50.25,
		},
		{
			name:     "Deve retornar zero para zero",
			input:    0,
			expected: 0,
		},
		{
			name:     "Deve arredondar percentual de pulos",
			input:    100 * 2.0 / 3.0,
			expected: 66.67,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RoundWithTwoDecimalPlace(tc.input))
		})
	}
}
