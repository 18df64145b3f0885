package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"comprovante pix.jpg", "comprovante_pix.jpg"},
		{"oferta São João.png", "oferta_Sao_Joao.png"},
		{"recibo___agosto.pdf", "recibo_agosto.pdf"},
		{"  __recibo__ ", "recibo"},
		{"ágápé#oferta!!.jpeg", "agape_oferta_.jpeg"},
		{"ja-limpo.png", "ja-limpo.png"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.in), "input %q", tt.in)
	}
}
