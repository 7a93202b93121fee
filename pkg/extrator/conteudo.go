package extrator

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Seletores da página de uma notícia do G1.
const (
	seletorConteudo         = ".content-text__container p"
	seletorConteudoFallback = "article p"
	seletorTags             = ".entities__list-item"
	seletorAutor            = ".content-publication-data__from"
)

// Detalhes é o complemento extraído da página da própria notícia,
// quando a listagem ou o feed não trazem o texto completo.
type Detalhes struct {
	Conteudo string
	Tags     []string
	Autor    string
}

// extrairDetalhes busca a página da notícia e extrai conteúdo, tags e
// autor. É um passo de melhor esforço: qualquer falha devolve Detalhes
// zerado junto com o erro, e o chamador emite o registro mesmo assim.
func extrairDetalhes(ctx context.Context, fetcher Fetcher, url string) (Detalhes, error) {
	corpo, err := fetcher.FetchBytes(ctx, url)
	if err != nil {
		return Detalhes{}, fmt.Errorf("falha ao buscar a página da notícia %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(corpo))
	if err != nil {
		return Detalhes{}, fmt.Errorf("falha ao interpretar o HTML da notícia %s: %w", url, err)
	}

	detalhes := Detalhes{
		Conteudo: extrairConteudo(doc),
		Autor:    strings.TrimSpace(doc.Find(seletorAutor).First().Text()),
	}

	doc.Find(seletorTags).Each(func(_ int, s *goquery.Selection) {
		if tag := strings.TrimSpace(s.Text()); tag != "" {
			detalhes.Tags = append(detalhes.Tags, tag)
		}
	})

	return detalhes, nil
}

// extrairConteudo junta os parágrafos do corpo da notícia. Se o seletor
// principal não encontrar nada, tenta o seletor genérico de artigo.
func extrairConteudo(doc *goquery.Document) string {
	paragrafos := coletarParagrafos(doc, seletorConteudo)
	if len(paragrafos) == 0 {
		paragrafos = coletarParagrafos(doc, seletorConteudoFallback)
	}
	return strings.Join(paragrafos, " ")
}

func coletarParagrafos(doc *goquery.Document, seletor string) []string {
	var paragrafos []string
	doc.Find(seletor).Each(func(_ int, s *goquery.Selection) {
		if texto := strings.TrimSpace(s.Text()); texto != "" {
			paragrafos = append(paragrafos, texto)
		}
	})
	return paragrafos
}
