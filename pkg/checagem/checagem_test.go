package checagem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fatoufake/extrator/pkg/noticia"
)

func TestClassificar(t *testing.T) {
	testCases := []struct {
		name     string
		titulo   string
		esperado noticia.Classificacao
	}{
		// Expressões explícitas de FAKE
		{"e_fake", "É fake que o governo cancelou o feriado", noticia.FAKE},
		{"boato", "Boato diz que vacina causa doença", noticia.FAKE},
		{"nao_procede", "Não procede a informação sobre o concurso", noticia.FAKE},
		{"fake_news", "Vídeo espalha fake news sobre eleições", noticia.FAKE},
		{"mentira", "Mentira circula em grupos de mensagens", noticia.FAKE},

		// Expressões explícitas de FATO
		{"e_verdade", "É verdade que presidente sancionou lei", noticia.FATO},
		{"confirmado", "Confirmado: cidade recebe novo hospital", noticia.FATO},
		{"comprovado", "Estudo comprovado aponta eficácia da medida", noticia.FATO},

		// Ordem das listas: "não é fato" precisa vencer a regra isolada de "fato"
		{"nao_e_fato", "Não é fato que cidade decretou estado de emergência", noticia.FAKE},
		{"nao_e_verdade", "Não é verdade que escolas vão fechar", noticia.FAKE},
		{"nao_aconteceu", "Apagão nacional não aconteceu neste domingo", noticia.FAKE},

		// Palavras isoladas, sem expressão listada
		{"fake_isolado", "Checamos o vídeo: fake", noticia.FAKE},
		{"fato_isolado", "Checagem conclui: fato", noticia.FATO},

		// Palavra embutida em outra não conta como isolada
		{"fato_embutido", "Análise do fator econômico da crise", noticia.INDETERMINADO},

		// Sem qualquer padrão
		{"indeterminado", "Reunião discute pauta econômica", noticia.INDETERMINADO},
		{"titulo_vazio", "", noticia.INDETERMINADO},

		// Maiúsculas e minúsculas não alteram o resultado
		{"caixa_alta", "NÃO É FATO QUE HOUVE FRAUDE", noticia.FAKE},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.esperado, Classificar(tc.titulo, ""))
		})
	}
}

// TestClassificarIgnoraResumo fixa o comportamento de compatibilidade:
// o resumo nunca participa da classificação.
func TestClassificarIgnoraResumo(t *testing.T) {
	titulo := "Reunião discute pauta econômica"

	semResumo := Classificar(titulo, "")
	comResumoFake := Classificar(titulo, "é fake que houve reunião")
	comResumoFato := Classificar(titulo, "é verdade, confirmado e comprovado")

	assert.Equal(t, noticia.INDETERMINADO, semResumo)
	assert.Equal(t, semResumo, comResumoFake)
	assert.Equal(t, semResumo, comResumoFato)
}

// TestOrdemFakeAntesDeFato garante que nenhum título com "não é fato"
// escape como FATO, qualquer que seja o restante do texto.
func TestOrdemFakeAntesDeFato(t *testing.T) {
	titulos := []string{
		"Não é fato que o aeroporto fechou",
		"Prefeito diz que não é fato e que obra segue confirmada",
		"não é fato",
	}

	for _, titulo := range titulos {
		assert.Equal(t, noticia.FAKE, Classificar(titulo, ""), "titulo: %s", titulo)
	}
}

func TestEhChecagem(t *testing.T) {
	testCases := []struct {
		name     string
		titulo   string
		link     string
		esperado bool
	}{
		{
			name:     "link_da_secao",
			titulo:   "Qualquer título sem palavra-chave",
			link:     "https://g1.globo.com/fato-ou-fake/noticia/2024/01/01/exemplo.ghtml",
			esperado: true,
		},
		{
			name:     "link_da_secao_caixa_alta",
			titulo:   "",
			link:     "https://g1.globo.com/FATO-OU-FAKE/exemplo.ghtml",
			esperado: true,
		},
		{
			name:     "palavra_chave_no_titulo",
			titulo:   "Checamos o vídeo que circula nas redes",
			link:     "https://g1.globo.com/politica/exemplo.ghtml",
			esperado: true,
		},
		{
			name:     "palavra_falso_no_titulo",
			titulo:   "É falso que o banco vai cobrar nova taxa",
			link:     "https://g1.globo.com/economia/exemplo.ghtml",
			esperado: true,
		},
		{
			name:     "sem_secao_e_sem_palavra",
			titulo:   "Reunião discute pauta econômica",
			link:     "https://g1.globo.com/politica/exemplo.ghtml",
			esperado: false,
		},
		{
			name:     "ambos_vazios",
			titulo:   "",
			link:     "",
			esperado: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.esperado, EhChecagem(tc.titulo, tc.link))
		})
	}
}
