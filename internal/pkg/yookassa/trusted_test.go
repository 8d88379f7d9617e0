package yookassa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTrustedIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{ip: "185.71.76.5", want: true},
		{ip: "185.71.77.31", want: true},
		{ip: "77.75.156.11", want: true},
		{ip: "77.75.156.35", want: true},
		{ip: "77.75.153.100", want: true},
		{ip: "2a02:5180::1", want: true},
		{ip: "185.71.78.1", want: false},
		{ip: "8.8.8.8", want: false},
		{ip: "10.0.0.1", want: false},
		{ip: "", want: false},
		{ip: "not-an-ip", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTrustedIP(tt.ip))
		})
	}
}
