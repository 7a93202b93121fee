package extrator

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fatoufake/extrator/pkg/checagem"
	"github.com/fatoufake/extrator/pkg/dataset"
	"github.com/fatoufake/extrator/pkg/noticia"
)

// Seletores da listagem da seção Fato ou Fake.
const (
	seletorArtigo = ".feed-post-body"
	seletorTitulo = ".feed-post-link"
	seletorData   = ".feed-post-datetime"
	seletorResumo = ".feed-post-body-resumo"
	seletorImagem = ".feed-post-figure img"
)

// Scraper extrai checagens percorrendo as páginas da listagem da seção.
type Scraper struct {
	cfg     Config
	fetcher Fetcher
	espera  func()
}

// NovoScraper cria o extrator por scraping direto.
func NovoScraper(cfg Config, fetcher Fetcher) *Scraper {
	return &Scraper{
		cfg:     cfg,
		fetcher: fetcher,
		espera:  novaEspera(cfg),
	}
}

// Nome identifica o método.
func (s *Scraper) Nome() string { return string(noticia.MetodoScraping) }

// Executar percorre as páginas da listagem e devolve o dataset do
// método. Falhas de página são locais: a primeira página indisponível
// só é registrada; uma página seguinte indisponível encerra a paginação
// mantendo o que já foi extraído.
func (s *Scraper) Executar(ctx context.Context) (dataset.Dataset, error) {
	log.Printf("[SCRAPER] Iniciando extração em %d páginas...", s.cfg.MaxPaginas)

	var noticias []noticia.Noticia

	for pagina := 1; pagina <= s.cfg.MaxPaginas; pagina++ {
		url := s.cfg.BaseURL
		if pagina > 1 {
			url = fmt.Sprintf("%s?page=%d", s.cfg.BaseURL, pagina)
		}

		doc, err := s.buscarPagina(ctx, url)
		if err != nil {
			log.Printf("[SCRAPER] Falha ao acessar página %d: %v", pagina, err)
			if pagina == 1 {
				continue
			}
			break
		}

		daPagina := s.extrairNoticiasDaPagina(ctx, doc)
		noticias = append(noticias, daPagina...)
		log.Printf("[SCRAPER] Página %d: %d notícias extraídas", pagina, len(daPagina))
	}

	log.Printf("[SCRAPER] Concluído. Total: %d notícias extraídas", len(noticias))
	return dataset.Novo(noticia.ColunasBase(), noticias), nil
}

// buscarPagina busca a URL e interpreta o HTML.
func (s *Scraper) buscarPagina(ctx context.Context, url string) (*goquery.Document, error) {
	corpo, err := s.fetcher.FetchBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(corpo))
	if err != nil {
		return nil, fmt.Errorf("falha ao interpretar o HTML de %s: %w", url, err)
	}
	return doc, nil
}

// extrairNoticiasDaPagina converte os artigos da listagem em registros
// classificados, aplicando a triagem e a classificação compartilhadas.
func (s *Scraper) extrairNoticiasDaPagina(ctx context.Context, doc *goquery.Document) []noticia.Noticia {
	var noticias []noticia.Noticia

	doc.Find(seletorArtigo).Each(func(_ int, artigo *goquery.Selection) {
		tituloEl := artigo.Find(seletorTitulo).First()
		if tituloEl.Length() == 0 {
			return
		}

		titulo := strings.TrimSpace(tituloEl.Text())
		link, _ := tituloEl.Attr("href")
		if link == "" {
			return
		}

		// Triagem: só entra no dataset o que for checagem
		if !checagem.EhChecagem(titulo, link) {
			return
		}

		data := strings.TrimSpace(artigo.Find(seletorData).First().Text())
		if data == "" {
			data = "Data não encontrada"
		}
		resumo := strings.TrimSpace(artigo.Find(seletorResumo).First().Text())
		imagem, _ := artigo.Find(seletorImagem).First().Attr("src")

		// Espera aleatória antes da busca do conteúdo completo, para
		// limitar a taxa de requisições ao site.
		s.espera()
		detalhes, err := extrairDetalhes(ctx, s.fetcher, link)
		if err != nil {
			// Melhor esforço: o registro sai com os campos de detalhe vazios
			log.Printf("[SCRAPER] Erro ao extrair detalhes da notícia %s: %v", link, err)
		}

		noticias = append(noticias, noticia.Noticia{
			Titulo:         titulo,
			Link:           link,
			DataPublicacao: data,
			Resumo:         resumo,
			Classificacao:  checagem.Classificar(titulo, resumo),
			ImagemURL:      imagem,
			Conteudo:       detalhes.Conteudo,
			Tags:           detalhes.Tags,
			Autor:          detalhes.Autor,
			DataExtracao:   noticia.AgoraDataExtracao(),
			MetodoExtracao: noticia.MetodoScraping,
		})
	})

	return noticias
}
