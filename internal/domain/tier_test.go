package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierOf(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"SOLDADOS DE CRISTO", TierChildren},
		{"OVELHINHAS DO SENHOR", TierChildren},
		{"ESTRELA DE BELEM", TierAdolescents},
		{"CLASSE LAEL", TierAdolescents},
		{"ÁGAPE", TierAdolescents},
		{"CLASSE BEREIA", TierAdults},
		{"DORCAS", TierAdults},
		// matching is case-sensitive by convention
		{"soldados", TierAdults},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierOf(tt.name), "class %q", tt.name)
	}
}
