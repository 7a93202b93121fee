// Package checagem concentra as regras puras de triagem e classificação
// das checagens Fato ou Fake. As mesmas funções são usadas por todos os
// métodos de extração, sem estado e sem efeitos colaterais.
package checagem

import (
	"regexp"
	"strings"

	"github.com/fatoufake/extrator/pkg/noticia"
)

// SecaoFatoOuFake é o trecho de URL que identifica a seção de checagens do site.
const SecaoFatoOuFake = "fato-ou-fake"

// palavrasChave são os termos de título que indicam uma checagem.
var palavrasChave = []string{
	"fato",
	"fake",
	"falso",
	"verdade",
	"é falso que",
	"é verdade que",
	"checamos",
}

// padroesFake são as expressões usadas pelo site para indicar FAKE no título.
// A ordem importa: esta lista é avaliada ANTES de padroesFato porque várias
// expressões daqui contêm expressões de lá ("não é fato" contém "fato");
// inverter a ordem classificaria desmentidos como FATO.
var padroesFake = []string{
	"é fake",
	"é falso",
	"não é verdade",
	"não é verdadeiro",
	"falso que",
	"fake news",
	"boato",
	"mentira",
	"enganoso",
	"não é real",
	"não aconteceu",
	"não procede",
	"não existe",
	"não é fato",
}

// padroesFato são as expressões usadas pelo site para indicar FATO no título.
var padroesFato = []string{
	"é fato",
	"é verdade",
	"verdadeiro",
	"aconteceu",
	"é real",
	"confirmado",
	"verificado",
	"comprovado",
	"procede",
	"é verdadeiro",
}

// Palavras isoladas, avaliadas por último e com fronteira de palavra.
var (
	reFakeIsolado = regexp.MustCompile(`\bfake\b`)
	reFatoIsolado = regexp.MustCompile(`\bfato\b`)
)

// EhChecagem verifica se a notícia pertence à seção de checagens, pelo
// link (contém a seção) ou pelo título (contém alguma palavra-chave).
func EhChecagem(titulo, link string) bool {
	if strings.Contains(strings.ToLower(link), SecaoFatoOuFake) {
		return true
	}

	tituloMin := strings.ToLower(titulo)
	for _, palavra := range palavrasChave {
		if strings.Contains(tituloMin, palavra) {
			return true
		}
	}

	return false
}

// Classificar determina o veredito da checagem a partir do título.
//
// O resumo entra na assinatura porque todos os chamadores o têm à mão,
// mas nunca é consultado: a classificação é função apenas do título.
// Passar a consultá-lo mudaria vereditos de datasets já gerados, então
// o comportamento só deve mudar junto com uma revisão dos dados.
func Classificar(titulo, _ string) noticia.Classificacao {
	tituloMin := strings.ToLower(titulo)

	// 1. Expressões de FAKE (antes das de FATO, pela sobreposição textual)
	for _, padrao := range padroesFake {
		if strings.Contains(tituloMin, padrao) {
			return noticia.FAKE
		}
	}

	// 2. Expressões de FATO
	for _, padrao := range padroesFato {
		if strings.Contains(tituloMin, padrao) {
			return noticia.FATO
		}
	}

	// 3. "fake" como palavra isolada
	if reFakeIsolado.MatchString(tituloMin) {
		return noticia.FAKE
	}

	// 4. "fato" como palavra isolada
	if reFatoIsolado.MatchString(tituloMin) {
		return noticia.FATO
	}

	// 5. Sem evidência suficiente
	return noticia.INDETERMINADO
}
