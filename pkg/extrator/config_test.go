package extrator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarregarConfigSemArquivo(t *testing.T) {
	cfg, err := CarregarConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestCarregarConfigSobrepoePadroes(t *testing.T) {
	caminho := filepath.Join(t.TempDir(), "extrator.yaml")
	conteudo := []byte("base_url: https://exemplo.com/fato-ou-fake/\nmax_paginas: 10\nespera_min: 0s\nespera_max: 0s\n")
	require.NoError(t, os.WriteFile(caminho, conteudo, 0o644))

	cfg, err := CarregarConfig(caminho)
	require.NoError(t, err)

	assert.Equal(t, "https://exemplo.com/fato-ou-fake/", cfg.BaseURL)
	assert.Equal(t, 10, cfg.MaxPaginas)
	assert.Equal(t, time.Duration(0), cfg.EsperaMax)

	// Campos ausentes mantêm o padrão
	assert.Equal(t, DefaultRSSURL, cfg.RSSURL)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
}

func TestCarregarConfigInvalida(t *testing.T) {
	testCases := []struct {
		name     string
		conteudo string
	}{
		{"paginas_negativas", "max_paginas: -1\n"},
		{"base_url_vazia", "base_url: \"\"\n"},
		{"janela_de_espera_invertida", "espera_min: 5s\nespera_max: 1s\n"},
		{"yaml_invalido", "base_url: [sem-fechar"},
		{"duracao_invalida", "espera_min: depressa\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			caminho := filepath.Join(t.TempDir(), "extrator.yaml")
			require.NoError(t, os.WriteFile(caminho, []byte(tc.conteudo), 0o644))

			_, err := CarregarConfig(caminho)
			assert.ErrorIs(t, err, ErrConfiguracao)
		})
	}
}

func TestCarregarConfigArquivoInexistente(t *testing.T) {
	_, err := CarregarConfig(filepath.Join(t.TempDir(), "nao-existe.yaml"))
	assert.ErrorIs(t, err, ErrConfiguracao)
}
