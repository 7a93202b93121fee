// Package pipeline orquestra a execução completa: roda os métodos de
// extração selecionados em sequência, combina os datasets, imprime as
// estatísticas e grava os arquivos de saída.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/fatoufake/extrator/pkg/dataset"
	"github.com/fatoufake/extrator/pkg/extrator"
	"github.com/fatoufake/extrator/pkg/noticia"
)

// Métodos de extração aceitos na linha de comando.
const (
	MetodoScraping = "scraping"
	MetodoAPI      = "api"
	MetodoRSS      = "rss"
	MetodoTodos    = "todos"
)

// Formatos de saída aceitos.
const (
	FormatoCSV   = "csv"
	FormatoJSON  = "json"
	FormatoAmbos = "ambos"
)

// Opcoes controla uma execução do pipeline.
type Opcoes struct {
	Metodo  string
	Formato string
	Saida   string
	Config  extrator.Config
}

// Validar checa o método e o formato antes de qualquer atividade de
// rede. Erros aqui são fatais (extrator.ErrConfiguracao).
func (o Opcoes) Validar() error {
	switch o.Metodo {
	case MetodoScraping, MetodoAPI, MetodoRSS, MetodoTodos:
	default:
		return fmt.Errorf("%w: método %q (use scraping, api, rss ou todos)", extrator.ErrConfiguracao, o.Metodo)
	}

	switch o.Formato {
	case FormatoCSV, FormatoJSON, FormatoAmbos:
	default:
		return fmt.Errorf("%w: formato %q (use csv, json ou ambos)", extrator.ErrConfiguracao, o.Formato)
	}

	return o.Config.Validar()
}

// Fetcher reúne as capacidades de busca exigidas pelos três métodos.
type Fetcher interface {
	extrator.Fetcher
	extrator.JSONFetcher
}

// Resultado resume uma execução.
type Resultado struct {
	Dataset             dataset.Dataset
	DuplicatasRemovidas int
	Arquivos            []string
	NadaExtraido        bool
}

// Pipeline executa a extração ponta a ponta, de forma estritamente
// sequencial: um método por vez, um dataset por método.
type Pipeline struct {
	opcoes  Opcoes
	fetcher Fetcher
	saida   io.Writer
}

// Novo cria o pipeline. As estatísticas são impressas em saida.
func Novo(opcoes Opcoes, fetcher Fetcher, saida io.Writer) (*Pipeline, error) {
	if err := opcoes.Validar(); err != nil {
		return nil, err
	}
	return &Pipeline{opcoes: opcoes, fetcher: fetcher, saida: saida}, nil
}

// Executar roda os métodos selecionados, combina e grava.
func (p *Pipeline) Executar(ctx context.Context) (Resultado, error) {
	datasets := p.extrair(ctx)

	// A coluna de procedência entra quando mais de um método roda
	incluirMetodo := p.opcoes.Metodo == MetodoTodos
	combinacao := dataset.Combinar(datasets, incluirMetodo)

	if combinacao.Dataset.Vazio() {
		log.Println("Nenhum dado extraído por qualquer método.")
		return Resultado{NadaExtraido: true}, nil
	}

	p.imprimirEstatisticas(combinacao.Dataset)

	arquivos, err := p.salvar(combinacao.Dataset)
	if err != nil {
		return Resultado{}, err
	}

	return Resultado{
		Dataset:             combinacao.Dataset,
		DuplicatasRemovidas: combinacao.DuplicatasRemovidas,
		Arquivos:            arquivos,
	}, nil
}

// extrair roda cada método selecionado e coleta os datasets não vazios
// na ordem fixa scraping, api, rss.
func (p *Pipeline) extrair(ctx context.Context) []dataset.Dataset {
	var datasets []dataset.Dataset

	if p.opcoes.Metodo == MetodoScraping || p.opcoes.Metodo == MetodoTodos {
		fmt.Fprintln(p.saida, "\n===== EXTRAÇÃO VIA SCRAPING DIRETO =====")
		datasets = append(datasets, p.executarMetodo(ctx, extrator.NovoScraper(p.opcoes.Config, p.fetcher)))
	}

	if p.opcoes.Metodo == MetodoAPI || p.opcoes.Metodo == MetodoTodos {
		fmt.Fprintln(p.saida, "\n===== EXTRAÇÃO VIA API/RSS =====")
		viaAPI := p.executarMetodo(ctx, extrator.NovoExtratorAPI(p.opcoes.Config, p.fetcher))

		// A API pública é instável; quando não devolve nada, o método
		// api recua para o feed RSS como fonte equivalente.
		if viaAPI.Vazio() {
			log.Println("API sem dados; tentando o feed RSS.")
			viaAPI = p.executarMetodo(ctx, extrator.NovoExtratorRSS(p.opcoes.Config, p.fetcher))
		}
		datasets = append(datasets, viaAPI)
	}

	if p.opcoes.Metodo == MetodoRSS {
		fmt.Fprintln(p.saida, "\n===== EXTRAÇÃO VIA RSS =====")
		datasets = append(datasets, p.executarMetodo(ctx, extrator.NovoExtratorRSS(p.opcoes.Config, p.fetcher)))
	}

	return datasets
}

// executarMetodo roda um extrator e degrada qualquer falha para um
// dataset vazio, mantendo o pipeline vivo para os demais métodos.
func (p *Pipeline) executarMetodo(ctx context.Context, e extrator.Extrator) dataset.Dataset {
	d, err := e.Executar(ctx)
	if err != nil {
		log.Printf("Método %s falhou: %v", e.Nome(), err)
		return dataset.Dataset{}
	}
	if d.Vazio() {
		log.Printf("Nenhuma notícia extraída via %s.", e.Nome())
	} else {
		log.Printf("Extraídas %d notícias via %s.", d.Tamanho(), e.Nome())
	}
	return d
}

// salvar grava o dataset em cada formato pedido.
func (p *Pipeline) salvar(d dataset.Dataset) ([]string, error) {
	prefixo := ""
	if p.opcoes.Metodo == MetodoTodos {
		prefixo = "combinado_"
	}
	escritor := dataset.NovoEscritor(p.opcoes.Saida, prefixo)

	var arquivos []string

	if p.opcoes.Formato == FormatoCSV || p.opcoes.Formato == FormatoAmbos {
		caminho, err := escritor.SalvarCSV(d)
		if err != nil {
			return nil, fmt.Errorf("falha ao salvar o CSV: %w", err)
		}
		fmt.Fprintf(p.saida, "Dataset salvo com sucesso em %s\n", caminho)
		arquivos = append(arquivos, caminho)
	}

	if p.opcoes.Formato == FormatoJSON || p.opcoes.Formato == FormatoAmbos {
		caminho, err := escritor.SalvarJSON(d)
		if err != nil {
			return nil, fmt.Errorf("falha ao salvar o JSON: %w", err)
		}
		fmt.Fprintf(p.saida, "Dataset salvo com sucesso em %s\n", caminho)
		arquivos = append(arquivos, caminho)
	}

	return arquivos, nil
}

// imprimirEstatisticas mostra a distribuição das classificações e, na
// execução combinada, a distribuição por método de extração.
func (p *Pipeline) imprimirEstatisticas(d dataset.Dataset) {
	total := d.Tamanho()
	porClassificacao := make(map[noticia.Classificacao]int)
	porMetodo := make(map[noticia.Metodo]int)

	for _, n := range d.Noticias {
		porClassificacao[n.Classificacao]++
		porMetodo[n.MetodoExtracao]++
	}

	percentual := func(n int) float64 {
		return float64(n) / float64(total) * 100
	}

	fmt.Fprintf(p.saida, "\nEstatísticas do Dataset:\n")
	fmt.Fprintf(p.saida, "Total de notícias: %d\n", total)
	fmt.Fprintf(p.saida, "Classificadas como FAKE: %d (%.1f%%)\n", porClassificacao[noticia.FAKE], percentual(porClassificacao[noticia.FAKE]))
	fmt.Fprintf(p.saida, "Classificadas como FATO: %d (%.1f%%)\n", porClassificacao[noticia.FATO], percentual(porClassificacao[noticia.FATO]))
	fmt.Fprintf(p.saida, "Classificação indeterminada: %d (%.1f%%)\n", porClassificacao[noticia.INDETERMINADO], percentual(porClassificacao[noticia.INDETERMINADO]))

	if p.opcoes.Metodo == MetodoTodos {
		fmt.Fprintf(p.saida, "\nDistribuição por método de extração:\n")
		for _, metodo := range []noticia.Metodo{noticia.MetodoScraping, noticia.MetodoAPI, noticia.MetodoRSS} {
			if quantidade := porMetodo[metodo]; quantidade > 0 {
				fmt.Fprintf(p.saida, "- %s: %d notícias (%.1f%%)\n", metodo, quantidade, percentual(quantidade))
			}
		}
	}
}
