package extrator

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/mmcdole/gofeed"

	"github.com/fatoufake/extrator/pkg/checagem"
	"github.com/fatoufake/extrator/pkg/dataset"
	"github.com/fatoufake/extrator/pkg/noticia"
)

// ExtratorRSS extrai checagens a partir do feed RSS da seção.
type ExtratorRSS struct {
	cfg     Config
	fetcher Fetcher
	espera  func()
}

// NovoExtratorRSS cria o extrator baseado no feed RSS.
func NovoExtratorRSS(cfg Config, fetcher Fetcher) *ExtratorRSS {
	return &ExtratorRSS{
		cfg:     cfg,
		fetcher: fetcher,
		espera:  novaEspera(cfg),
	}
}

// Nome identifica o método.
func (e *ExtratorRSS) Nome() string { return string(noticia.MetodoRSS) }

// Colunas do método RSS: as colunas base mais a coluna fonte.
func colunasComFonte() []string {
	return append(noticia.ColunasBase(), noticia.ColunaFonte)
}

// Executar busca e interpreta o feed, aplicando a triagem e a
// classificação compartilhadas a cada entrada. Uma falha do feed inteiro
// degrada para um dataset vazio.
func (e *ExtratorRSS) Executar(ctx context.Context) (dataset.Dataset, error) {
	log.Println("Tentando acessar dados via RSS...")

	feed, err := e.buscarFeed(ctx)
	if err != nil {
		log.Printf("Erro ao tentar acessar feed RSS: %v", err)
		return dataset.Dataset{}, nil
	}

	var noticias []noticia.Noticia
	for _, item := range feed.Items {
		if item == nil || !checagem.EhChecagem(item.Title, item.Link) {
			continue
		}
		noticias = append(noticias, e.converterItem(ctx, item))
	}

	log.Printf("Extraídas %d notícias via RSS.", len(noticias))
	return dataset.Novo(colunasComFonte(), noticias), nil
}

// buscarFeed busca o XML do feed e o interpreta com gofeed.
func (e *ExtratorRSS) buscarFeed(ctx context.Context) (*gofeed.Feed, error) {
	corpo, err := e.fetcher.FetchBytes(ctx, e.cfg.RSSURL)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar o feed %s: %w", e.cfg.RSSURL, err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(corpo))
	if err != nil {
		return nil, fmt.Errorf("falha ao interpretar o feed %s: %w", e.cfg.RSSURL, err)
	}
	return feed, nil
}

// converterItem normaliza uma entrada do feed em um registro
// classificado, completando o conteúdo com a página da notícia.
func (e *ExtratorRSS) converterItem(ctx context.Context, item *gofeed.Item) noticia.Noticia {
	autor := ""
	if item.Author != nil {
		autor = item.Author.Name
	}

	// Espera aleatória antes da busca do conteúdo completo
	e.espera()
	conteudo := ""
	if detalhes, err := extrairDetalhes(ctx, e.fetcher, item.Link); err != nil {
		log.Printf("Erro ao extrair conteúdo da notícia %s: %v", item.Link, err)
	} else {
		conteudo = detalhes.Conteudo
	}

	return noticia.Noticia{
		Titulo:         item.Title,
		Link:           item.Link,
		DataPublicacao: item.Published,
		Resumo:         item.Description,
		Classificacao:  checagem.Classificar(item.Title, item.Description),
		ImagemURL:      ExtrairImagem(item),
		Conteudo:       conteudo,
		Tags:           item.Categories,
		Autor:          autor,
		DataExtracao:   noticia.AgoraDataExtracao(),
		MetodoExtracao: noticia.MetodoRSS,
		Fonte:          "RSS",
	}
}
