// Package dataset reúne os registros produzidos pelos métodos de
// extração em uma estrutura tabular, combina datasets de métodos
// diferentes e grava o resultado em CSV ou JSON.
package dataset

import (
	"log"
	"strings"

	"github.com/fatoufake/extrator/pkg/noticia"
)

// Dataset é uma sequência ordenada de notícias mais o conjunto de
// colunas que o método produtor emite. O conjunto de colunas existe
// porque os métodos não emitem exatamente os mesmos campos (a API
// acrescenta "fonte") e a combinação precisa reconciliá-los.
type Dataset struct {
	Colunas  []string
	Noticias []noticia.Noticia
}

// Novo cria um dataset com as colunas informadas.
func Novo(colunas []string, noticias []noticia.Noticia) Dataset {
	return Dataset{Colunas: colunas, Noticias: noticias}
}

// Vazio informa se o dataset não tem nenhum registro.
func (d Dataset) Vazio() bool {
	return len(d.Noticias) == 0
}

// Tamanho retorna o número de registros.
func (d Dataset) Tamanho() int {
	return len(d.Noticias)
}

// ResultadoCombinacao descreve o que a combinação fez, para o relatório final.
type ResultadoCombinacao struct {
	Dataset             Dataset
	DuplicatasRemovidas int
	ColunasDescartadas  int
}

// Combinar une datasets de métodos diferentes em um só.
//
// Datasets vazios são ignorados. Com um único dataset não vazio, ele é
// devolvido como está, com todas as suas colunas. Com dois ou mais, as
// colunas são projetadas para a interseção comum (com aviso de quantas
// foram descartadas), os registros são concatenados preservando a ordem
// de entrada e as duplicatas são removidas pelo link, mantendo sempre o
// registro do dataset que aparece primeiro.
//
// Quando incluirMetodo é verdadeiro, a coluna metodo_extracao entra no
// resultado para identificar a procedência de cada registro.
func Combinar(datasets []Dataset, incluirMetodo bool) ResultadoCombinacao {
	naoVazios := make([]Dataset, 0, len(datasets))
	for _, d := range datasets {
		if !d.Vazio() {
			naoVazios = append(naoVazios, d)
		}
	}

	// Nenhum dado de nenhum método
	if len(naoVazios) == 0 {
		return ResultadoCombinacao{Dataset: Dataset{}}
	}

	// Um único método produziu dados: nada a reconciliar
	if len(naoVazios) == 1 {
		d := naoVazios[0]
		if incluirMetodo {
			d.Colunas = garantirColuna(d.Colunas, noticia.ColunaMetodo)
		}
		return ResultadoCombinacao{Dataset: d}
	}

	// Interseção dos conjuntos de colunas, na ordem do primeiro dataset
	comuns := intersecaoColunas(naoVazios)
	descartadas := 0
	for _, d := range naoVazios {
		descartadas += len(d.Colunas) - len(comuns)
	}
	if descartadas > 0 {
		log.Printf("Aviso: alguns campos são incompatíveis entre os métodos. Usando apenas %d colunas comuns (%d descartadas).",
			len(comuns), descartadas)
	}

	if incluirMetodo {
		comuns = garantirColuna(comuns, noticia.ColunaMetodo)
	}

	// Concatenação na ordem de entrada e deduplicação pelo link. A
	// comparação é exata (caminhos de URL diferenciam maiúsculas de
	// minúsculas); só espaços nas bordas são descartados.
	vistos := make(map[string]struct{})
	combinadas := make([]noticia.Noticia, 0)
	duplicatas := 0

	for _, d := range naoVazios {
		for _, n := range d.Noticias {
			chave := strings.TrimSpace(n.Link)
			if _, ok := vistos[chave]; ok {
				duplicatas++
				continue
			}
			vistos[chave] = struct{}{}
			combinadas = append(combinadas, n)
		}
	}

	if duplicatas > 0 {
		log.Printf("Removidas %d notícias duplicadas.", duplicatas)
	}

	return ResultadoCombinacao{
		Dataset:             Dataset{Colunas: comuns, Noticias: combinadas},
		DuplicatasRemovidas: duplicatas,
		ColunasDescartadas:  descartadas,
	}
}

// intersecaoColunas calcula as colunas presentes em todos os datasets,
// preservando a ordem do primeiro.
func intersecaoColunas(datasets []Dataset) []string {
	contagem := make(map[string]int)
	for _, d := range datasets {
		for _, c := range d.Colunas {
			contagem[c]++
		}
	}

	comuns := make([]string, 0, len(datasets[0].Colunas))
	for _, c := range datasets[0].Colunas {
		if contagem[c] == len(datasets) {
			comuns = append(comuns, c)
		}
	}
	return comuns
}

// garantirColuna acrescenta a coluna ao final caso ainda não exista.
func garantirColuna(colunas []string, coluna string) []string {
	for _, c := range colunas {
		if c == coluna {
			return colunas
		}
	}
	resultado := make([]string, 0, len(colunas)+1)
	resultado = append(resultado, colunas...)
	return append(resultado, coluna)
}
