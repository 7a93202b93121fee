package extrator

import (
	"context"
	"log"
	"strings"

	"github.com/fatoufake/extrator/pkg/checagem"
	"github.com/fatoufake/extrator/pkg/dataset"
	"github.com/fatoufake/extrator/pkg/noticia"
)

// respostaAPI é o envelope esperado do endpoint de checagens.
type respostaAPI struct {
	Items []itemAPI `json:"items"`
}

// itemAPI é uma checagem no formato do payload da API.
type itemAPI struct {
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Published      string    `json:"published"`
	Summary        string    `json:"summary"`
	Image          imagemAPI `json:"image"`
	Content        string    `json:"content"`
	Tags           []string  `json:"tags"`
	Author         string    `json:"author"`
	Classification string    `json:"classification"`
}

type imagemAPI struct {
	URL string `json:"url"`
}

// ExtratorAPI extrai checagens pelo endpoint JSON da API.
type ExtratorAPI struct {
	cfg     Config
	fetcher JSONFetcher
}

// NovoExtratorAPI cria o extrator baseado na API.
func NovoExtratorAPI(cfg Config, fetcher JSONFetcher) *ExtratorAPI {
	return &ExtratorAPI{cfg: cfg, fetcher: fetcher}
}

// Nome identifica o método.
func (e *ExtratorAPI) Nome() string { return string(noticia.MetodoAPI) }

// Executar consulta a API e normaliza os itens retornados. Qualquer
// falha de rede ou de decodificação degrada para um dataset vazio.
func (e *ExtratorAPI) Executar(ctx context.Context) (dataset.Dataset, error) {
	log.Println("Tentando acessar dados via API...")

	var resposta respostaAPI
	if err := e.fetcher.FetchJSON(ctx, e.cfg.APIURL, &resposta); err != nil {
		log.Printf("Erro ao tentar acessar API: %v", err)
		return dataset.Dataset{}, nil
	}

	var noticias []noticia.Noticia
	for _, item := range resposta.Items {
		if !checagem.EhChecagem(item.Title, item.URL) {
			continue
		}

		noticias = append(noticias, noticia.Noticia{
			Titulo:         item.Title,
			Link:           item.URL,
			DataPublicacao: item.Published,
			Resumo:         item.Summary,
			Classificacao:  classificarItemAPI(item),
			ImagemURL:      item.Image.URL,
			Conteudo:       item.Content,
			Tags:           item.Tags,
			Autor:          item.Author,
			DataExtracao:   noticia.AgoraDataExtracao(),
			MetodoExtracao: noticia.MetodoAPI,
			Fonte:          "API",
		})
	}

	log.Printf("Extraídas %d notícias via API.", len(noticias))
	return dataset.Novo(colunasComFonte(), noticias), nil
}

// classificarItemAPI usa a classificação fornecida pela própria API
// quando ela for um veredito conhecido; caso contrário, classifica pelo
// título como os demais métodos.
func classificarItemAPI(item itemAPI) noticia.Classificacao {
	switch strings.ToUpper(item.Classification) {
	case string(noticia.FATO):
		return noticia.FATO
	case string(noticia.FAKE):
		return noticia.FAKE
	}
	return checagem.Classificar(item.Title, item.Summary)
}
