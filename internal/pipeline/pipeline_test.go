package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatoufake/extrator/pkg/extrator"
)

// mockFetcher implementa Fetcher com respostas por URL.
type mockFetcher struct {
	bytesPorURL map[string][]byte
	jsonPorURL  map[string][]byte
}

func (m *mockFetcher) FetchBytes(_ context.Context, url string) ([]byte, error) {
	if corpo, ok := m.bytesPorURL[url]; ok {
		return corpo, nil
	}
	return nil, errors.New("indisponível: " + url)
}

func (m *mockFetcher) FetchJSON(_ context.Context, url string, destino any) error {
	corpo, ok := m.jsonPorURL[url]
	if !ok {
		return errors.New("indisponível: " + url)
	}
	return json.Unmarshal(corpo, destino)
}

const listagemComUmaChecagem = `<html><body>
<div class="feed-post-body">
  <a class="feed-post-link" href="https://g1.globo.com/fato-ou-fake/noticia/comum.ghtml">Boato diz que vacina causa doença</a>
  <div class="feed-post-datetime">Há 1 hora</div>
</div>
</body></html>`

const feedComMesmaChecagem = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>G1 - Fato ou Fake</title>
    <item>
      <title>Boato diz que vacina causa doença</title>
      <link>https://g1.globo.com/fato-ou-fake/noticia/comum.ghtml</link>
    </item>
    <item>
      <title>É verdade que presidente sancionou lei</title>
      <link>https://g1.globo.com/fato-ou-fake/noticia/lei.ghtml</link>
    </item>
  </channel>
</rss>`

func opcoesDeTeste(t *testing.T, metodo, formato string) Opcoes {
	t.Helper()
	cfg := extrator.DefaultConfig()
	cfg.MaxPaginas = 1
	cfg.EsperaMin = 0
	cfg.EsperaMax = 0
	return Opcoes{
		Metodo:  metodo,
		Formato: formato,
		Saida:   t.TempDir(),
		Config:  cfg,
	}
}

func TestOpcoesValidar(t *testing.T) {
	testCases := []struct {
		name    string
		metodo  string
		formato string
		valida  bool
	}{
		{"todos_csv", "todos", "csv", true},
		{"rss_ambos", "rss", "ambos", true},
		{"metodo_invalido", "torrent", "csv", false},
		{"formato_invalido", "todos", "xml", false},
		{"metodo_vazio", "", "csv", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opcoes := opcoesDeTeste(t, tc.metodo, tc.formato)
			err := opcoes.Validar()
			if tc.valida {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, extrator.ErrConfiguracao)
			}
		})
	}
}

func TestNovoRecusaConfiguracaoInvalida(t *testing.T) {
	// O erro de configuração é fatal e acontece antes de qualquer rede
	_, err := Novo(opcoesDeTeste(t, "torrent", "csv"), &mockFetcher{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, extrator.ErrConfiguracao)
}

// TestExecutarTodos cobre o caminho combinado: scraping e RSS (via o
// recuo da API) encontram a mesma checagem, que colapsa em um registro.
func TestExecutarTodos(t *testing.T) {
	opcoes := opcoesDeTeste(t, MetodoTodos, FormatoAmbos)
	fetcher := &mockFetcher{
		bytesPorURL: map[string][]byte{
			opcoes.Config.BaseURL: []byte(listagemComUmaChecagem),
			opcoes.Config.RSSURL:  []byte(feedComMesmaChecagem),
		},
	}

	var saida bytes.Buffer
	p, err := Novo(opcoes, fetcher, &saida)
	require.NoError(t, err)

	resultado, err := p.Executar(context.Background())
	require.NoError(t, err)
	require.False(t, resultado.NadaExtraido)

	// Dois registros únicos: o link comum deduplicado, mantido o do scraping
	require.Equal(t, 2, resultado.Dataset.Tamanho())
	assert.Equal(t, 1, resultado.DuplicatasRemovidas)
	assert.Equal(t, "scraping", string(resultado.Dataset.Noticias[0].MetodoExtracao))

	// Ambos os formatos gravados
	require.Len(t, resultado.Arquivos, 2)
	assert.True(t, strings.HasSuffix(resultado.Arquivos[0], ".csv"))
	assert.True(t, strings.HasSuffix(resultado.Arquivos[1], ".json"))

	// Estatísticas impressas
	assert.Contains(t, saida.String(), "Total de notícias: 2")
	assert.Contains(t, saida.String(), "Distribuição por método de extração:")
}

// TestExecutarNadaExtraido: quando nenhum método produz dados, a
// execução termina com o desfecho explícito e sem nenhum arquivo.
func TestExecutarNadaExtraido(t *testing.T) {
	opcoes := opcoesDeTeste(t, MetodoTodos, FormatoAmbos)

	var saida bytes.Buffer
	p, err := Novo(opcoes, &mockFetcher{}, &saida)
	require.NoError(t, err)

	resultado, err := p.Executar(context.Background())
	require.NoError(t, err)

	assert.True(t, resultado.NadaExtraido)
	assert.Empty(t, resultado.Arquivos)

	entradas, err := os.ReadDir(opcoes.Saida)
	if err == nil {
		assert.Empty(t, entradas)
	}
}

func TestExecutarAPIRecuaParaRSS(t *testing.T) {
	opcoes := opcoesDeTeste(t, MetodoAPI, FormatoJSON)
	fetcher := &mockFetcher{
		bytesPorURL: map[string][]byte{
			opcoes.Config.RSSURL: []byte(feedComMesmaChecagem),
		},
	}

	var saida bytes.Buffer
	p, err := Novo(opcoes, fetcher, &saida)
	require.NoError(t, err)

	resultado, err := p.Executar(context.Background())
	require.NoError(t, err)

	// A API indisponível recua para o feed RSS
	require.Equal(t, 2, resultado.Dataset.Tamanho())
	assert.Equal(t, "rss", string(resultado.Dataset.Noticias[0].MetodoExtracao))

	require.Len(t, resultado.Arquivos, 1)
	assert.Equal(t, ".json", filepath.Ext(resultado.Arquivos[0]))
}
