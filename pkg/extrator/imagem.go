package extrator

import (
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
)

// EstrategiaImagem tenta extrair a URL da imagem de uma entrada do
// feed a partir de um formato específico. Retorna "" quando a entrada
// não tem aquele formato.
type EstrategiaImagem func(item *gofeed.Item) string

// estrategiasImagem é a cadeia de formatos conhecidos, em ordem fixa:
// a primeira que devolver algo não vazio vence.
var estrategiasImagem = []EstrategiaImagem{
	imagemDeMedia,
	imagemDeEnclosure,
	imagemDoFeed,
	imagemDoConteudo,
}

// ExtrairImagem percorre a cadeia de estratégias e devolve a primeira
// URL encontrada, ou "" se nenhum formato casar.
func ExtrairImagem(item *gofeed.Item) string {
	if item == nil {
		return ""
	}
	for _, estrategia := range estrategiasImagem {
		if url := estrategia(item); url != "" {
			return url
		}
	}
	return ""
}

// imagemDeMedia lê a extensão media:content (Media RSS).
func imagemDeMedia(item *gofeed.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, conteudo := range media["content"] {
		if url := conteudo.Attrs["url"]; url != "" {
			return url
		}
	}
	return ""
}

// imagemDeEnclosure procura um enclosure com tipo image/*.
func imagemDeEnclosure(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

// imagemDoFeed usa o campo de imagem que o próprio feed declara.
func imagemDoFeed(item *gofeed.Item) string {
	if item.Image != nil {
		return item.Image.URL
	}
	return ""
}

// imagemDoConteudo varre o HTML embutido na entrada atrás do primeiro
// <img src>.
func imagemDoConteudo(item *gofeed.Item) string {
	blocos := []string{item.Content, item.Description}
	for _, bloco := range blocos {
		if bloco == "" {
			continue
		}
		if url := primeiroImgSrc(bloco); url != "" {
			return url
		}
	}
	return ""
}

// primeiroImgSrc tokeniza o fragmento HTML e devolve o src da primeira
// tag img encontrada.
func primeiroImgSrc(fragmento string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragmento))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "img" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key == "src" && attr.Val != "" {
					return attr.Val
				}
			}
		}
	}
}
