// Package extrator implementa os três métodos de extração de checagens
// Fato ou Fake (scraping da listagem, API e feed RSS). Cada extrator é
// independente, roda sequencialmente e devolve um dataset próprio; a
// combinação fica a cargo do pacote dataset.
package extrator

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/fatoufake/extrator/pkg/dataset"
)

// Fetcher busca o conteúdo bruto de uma URL. Os extratores dependem
// desta abstração, não de um cliente HTTP concreto.
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// JSONFetcher busca uma URL anunciando Accept: application/json e
// decodifica a resposta no destino.
type JSONFetcher interface {
	FetchJSON(ctx context.Context, url string, destino any) error
}

// Extrator é o contrato comum dos três métodos de extração.
type Extrator interface {
	// Nome identifica o método nos registros de progresso.
	Nome() string
	// Executar roda a extração completa do método e devolve o dataset
	// resultante. Falhas de rede degradam para um dataset vazio.
	Executar(ctx context.Context) (dataset.Dataset, error)
}

// novaEspera devolve a função de espera aleatória da configuração,
// usada entre a listagem e as buscas de conteúdo completo. Uma janela
// zerada desliga a espera (útil em testes).
func novaEspera(cfg Config) func() {
	if cfg.EsperaMax <= 0 {
		return func() {}
	}
	return func() {
		intervalo := cfg.EsperaMax - cfg.EsperaMin
		espera := cfg.EsperaMin
		if intervalo > 0 {
			espera += rand.N(intervalo)
		}
		time.Sleep(espera)
	}
}
