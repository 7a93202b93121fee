package extrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatoufake/extrator/pkg/noticia"
)

// MockFetcher devolve respostas pré-definidas por URL.
type MockFetcher struct {
	respostas map[string][]byte
	erros     map[string]error
	chamadas  []string
}

func (m *MockFetcher) FetchBytes(_ context.Context, url string) ([]byte, error) {
	m.chamadas = append(m.chamadas, url)
	if err, ok := m.erros[url]; ok {
		return nil, err
	}
	if corpo, ok := m.respostas[url]; ok {
		return corpo, nil
	}
	return nil, errors.New("URL inesperada: " + url)
}

const paginaListagem = `<html><body>
<div class="feed-post-body">
  <a class="feed-post-link" href="https://g1.globo.com/fato-ou-fake/noticia/vacina.ghtml">É fake que vacina altera DNA</a>
  <div class="feed-post-datetime">Há 2 horas</div>
  <div class="feed-post-body-resumo">Circula nas redes sociais...</div>
  <div class="feed-post-figure"><img src="https://img.g1.globo.com/vacina.jpg"></div>
</div>
<div class="feed-post-body">
  <a class="feed-post-link" href="https://g1.globo.com/economia/reuniao.ghtml">Reunião discute pauta econômica</a>
</div>
<div class="feed-post-body">
  <span>artigo sem link de título</span>
</div>
</body></html>`

const paginaNoticia = `<html><body>
<article>
  <div class="content-text__container">
    <p>Primeiro parágrafo da checagem.</p>
    <p>Segundo parágrafo.</p>
  </div>
  <ul>
    <li class="entities__list-item">Saúde</li>
    <li class="entities__list-item">Vacina</li>
  </ul>
  <div class="content-publication-data__from">Por g1</div>
</article>
</body></html>`

func configDeTeste() Config {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://g1.globo.com/fato-ou-fake/"
	cfg.MaxPaginas = 1
	cfg.EsperaMin = 0
	cfg.EsperaMax = 0 // desliga a espera nos testes
	return cfg
}

func TestScraperExecutar(t *testing.T) {
	fetcher := &MockFetcher{
		respostas: map[string][]byte{
			"https://g1.globo.com/fato-ou-fake/":                     []byte(paginaListagem),
			"https://g1.globo.com/fato-ou-fake/noticia/vacina.ghtml": []byte(paginaNoticia),
		},
	}

	scraper := NovoScraper(configDeTeste(), fetcher)
	d, err := scraper.Executar(context.Background())
	require.NoError(t, err)

	// Só a checagem passa pela triagem; a notícia de economia e o
	// artigo sem link ficam de fora
	require.Equal(t, 1, d.Tamanho())

	n := d.Noticias[0]
	assert.Equal(t, "É fake que vacina altera DNA", n.Titulo)
	assert.Equal(t, "https://g1.globo.com/fato-ou-fake/noticia/vacina.ghtml", n.Link)
	assert.Equal(t, noticia.FAKE, n.Classificacao)
	assert.Equal(t, "Há 2 horas", n.DataPublicacao)
	assert.Equal(t, "Circula nas redes sociais...", n.Resumo)
	assert.Equal(t, "https://img.g1.globo.com/vacina.jpg", n.ImagemURL)
	assert.Equal(t, "Primeiro parágrafo da checagem. Segundo parágrafo.", n.Conteudo)
	assert.Equal(t, []string{"Saúde", "Vacina"}, n.Tags)
	assert.Equal(t, "Por g1", n.Autor)
	assert.Equal(t, noticia.MetodoScraping, n.MetodoExtracao)
	assert.NotEmpty(t, n.DataExtracao)

	assert.Equal(t, noticia.ColunasBase(), d.Colunas)
}

// TestScraperDetalheFalha: a falha na página da notícia não descarta o
// registro, apenas deixa os campos de detalhe vazios.
func TestScraperDetalheFalha(t *testing.T) {
	fetcher := &MockFetcher{
		respostas: map[string][]byte{
			"https://g1.globo.com/fato-ou-fake/": []byte(paginaListagem),
		},
		erros: map[string]error{
			"https://g1.globo.com/fato-ou-fake/noticia/vacina.ghtml": errors.New("tempo esgotado"),
		},
	}

	scraper := NovoScraper(configDeTeste(), fetcher)
	d, err := scraper.Executar(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, d.Tamanho())
	assert.Empty(t, d.Noticias[0].Conteudo)
	assert.Empty(t, d.Noticias[0].Tags)
	assert.Empty(t, d.Noticias[0].Autor)
	assert.Equal(t, noticia.FAKE, d.Noticias[0].Classificacao)
}

func TestScraperPaginacao(t *testing.T) {
	cfg := configDeTeste()
	cfg.MaxPaginas = 3

	t.Run("pagina_seguinte_falha_encerra_paginacao", func(t *testing.T) {
		fetcher := &MockFetcher{
			respostas: map[string][]byte{
				"https://g1.globo.com/fato-ou-fake/":                     []byte(paginaListagem),
				"https://g1.globo.com/fato-ou-fake/noticia/vacina.ghtml": []byte(paginaNoticia),
			},
			erros: map[string]error{
				"https://g1.globo.com/fato-ou-fake/?page=2": errors.New("status 500"),
			},
		}

		scraper := NovoScraper(cfg, fetcher)
		d, err := scraper.Executar(context.Background())
		require.NoError(t, err)

		// O resultado da página 1 sobrevive e a página 3 nunca é pedida
		assert.Equal(t, 1, d.Tamanho())
		assert.NotContains(t, fetcher.chamadas, "https://g1.globo.com/fato-ou-fake/?page=3")
	})

	t.Run("primeira_pagina_falha_nao_encerra", func(t *testing.T) {
		fetcher := &MockFetcher{
			respostas: map[string][]byte{
				"https://g1.globo.com/fato-ou-fake/?page=2":              []byte(paginaListagem),
				"https://g1.globo.com/fato-ou-fake/?page=3":              []byte(`<html><body></body></html>`),
				"https://g1.globo.com/fato-ou-fake/noticia/vacina.ghtml": []byte(paginaNoticia),
			},
			erros: map[string]error{
				"https://g1.globo.com/fato-ou-fake/": errors.New("status 503"),
			},
		}

		scraper := NovoScraper(cfg, fetcher)
		d, err := scraper.Executar(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, d.Tamanho())
		assert.Contains(t, fetcher.chamadas, "https://g1.globo.com/fato-ou-fake/?page=2")
	})
}

func TestScraperTodasAsPaginasFalham(t *testing.T) {
	fetcher := &MockFetcher{
		erros: map[string]error{
			"https://g1.globo.com/fato-ou-fake/": errors.New("sem rede"),
		},
	}

	scraper := NovoScraper(configDeTeste(), fetcher)
	d, err := scraper.Executar(context.Background())
	require.NoError(t, err)
	assert.True(t, d.Vazio())
}
