// Package noticia define o registro normalizado produzido por todos os
// métodos de extração e os valores enumerados compartilhados entre eles.
package noticia

import "time"

// Classificacao é o veredito atribuído a uma checagem.
type Classificacao string

const (
	FATO          Classificacao = "FATO"
	FAKE          Classificacao = "FAKE"
	INDETERMINADO Classificacao = "INDETERMINADO"
)

// Metodo identifica o método de extração que produziu o registro.
type Metodo string

const (
	MetodoScraping Metodo = "scraping"
	MetodoAPI      Metodo = "api"
	MetodoRSS      Metodo = "rss"
)

// FormatoDataExtracao é o layout do campo data_extracao.
const FormatoDataExtracao = "2006-01-02 15:04:05"

// Noticia é uma checagem já classificada e normalizada.
// O link é a chave natural: dois registros com o mesmo link representam
// a mesma notícia e colapsam em um só na combinação de datasets.
type Noticia struct {
	Titulo         string        `json:"titulo"`
	Link           string        `json:"link"`
	DataPublicacao string        `json:"data_publicacao"`
	Resumo         string        `json:"resumo"`
	Classificacao  Classificacao `json:"classificacao"`
	ImagemURL      string        `json:"imagem_url"`
	Conteudo       string        `json:"conteudo"`
	Tags           []string      `json:"tags"`
	Autor          string        `json:"autor"`
	DataExtracao   string        `json:"data_extracao"`
	MetodoExtracao Metodo        `json:"metodo_extracao,omitempty"`

	// Fonte é preenchido apenas pelo método de API ("API" ou "RSS");
	// a coluna some na combinação com os demais métodos, por projeção.
	Fonte string `json:"fonte,omitempty"`
}

// Nomes das colunas na ordem de saída do dataset.
const (
	ColunaTitulo         = "titulo"
	ColunaLink           = "link"
	ColunaDataPublicacao = "data_publicacao"
	ColunaResumo         = "resumo"
	ColunaClassificacao  = "classificacao"
	ColunaImagemURL      = "imagem_url"
	ColunaConteudo       = "conteudo"
	ColunaTags           = "tags"
	ColunaAutor          = "autor"
	ColunaDataExtracao   = "data_extracao"
	ColunaMetodo         = "metodo_extracao"
	ColunaFonte          = "fonte"
)

// ColunasBase retorna o conjunto de colunas comum a todos os métodos,
// na ordem de saída.
func ColunasBase() []string {
	return []string{
		ColunaTitulo,
		ColunaLink,
		ColunaDataPublicacao,
		ColunaResumo,
		ColunaClassificacao,
		ColunaImagemURL,
		ColunaConteudo,
		ColunaTags,
		ColunaAutor,
		ColunaDataExtracao,
	}
}

// AgoraDataExtracao formata o instante atual no layout do dataset.
func AgoraDataExtracao() string {
	return time.Now().Format(FormatoDataExtracao)
}
