package textnorm_test

import (
	"testing"

	"github.com/jonesrussell/north-cloud/email-classifier/internal/textnorm"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "stop words and symbols",
			in:   "Olá!!! Qual o STATUS do meu pedido???   #123",
			want: "olá!!! qual status meu pedido??? 123",
		},
		{
			name: "short tokens dropped",
			in:   "Oi, eu vi as 2 notas",
			want: "oi, notas",
		},
		{
			name: "decomposed accents are composed",
			in:   "Situac\u0327a\u0303o do relato\u0301rio",
			want: "situação relatório",
		},
		{
			name: "kept punctuation",
			in:   "contato: joao@banco.com (urgente) - hoje",
			want: "contato joao@banco.com (urgente) hoje",
		},
		{name: "empty", in: "", want: ""},
		{name: "only symbols", in: "### $$$ ***", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := textnorm.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	t.Parallel()

	if got := textnorm.WordCount("  Bom dia,\n\ttudo bem?  "); got != 4 {
		t.Errorf("WordCount = %d, want 4", got)
	}
	if got := textnorm.WordCount("   "); got != 0 {
		t.Errorf("WordCount(blank) = %d, want 0", got)
	}
}

func TestRuneLen(t *testing.T) {
	t.Parallel()

	if got := textnorm.RuneLen("  olá "); got != 3 {
		t.Errorf("RuneLen = %d, want 3", got)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := textnorm.Truncate("ação rápida", 4); got != "ação" {
		t.Errorf("Truncate = %q, want %q", got, "ação")
	}
	if got := textnorm.Truncate("curto", 500); got != "curto" {
		t.Errorf("Truncate short = %q", got)
	}
}
