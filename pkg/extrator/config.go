package extrator

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfiguracao indica configuração inválida, detectada antes de
// qualquer atividade de rede.
var ErrConfiguracao = errors.New("configuração inválida")

// Valores padrão, apontando para a seção Fato ou Fake do G1.
const (
	DefaultBaseURL    = "https://g1.globo.com/fato-ou-fake/"
	DefaultRSSURL     = "https://g1.globo.com/rss/g1/fato-ou-fake/"
	DefaultAPIURL     = "https://api.globo.com/fato-ou-fake"
	DefaultMaxPaginas = 5

	// Janela da espera aleatória entre a listagem e a busca do conteúdo
	// completo de cada notícia, para limitar a taxa de requisições.
	DefaultEsperaMin = 1 * time.Second
	DefaultEsperaMax = 3 * time.Second
)

// Config concentra os parâmetros dos métodos de extração. Os valores
// chegam explícitos na construção de cada extrator; não há estado
// global mutável.
type Config struct {
	BaseURL    string
	RSSURL     string
	APIURL     string
	MaxPaginas int
	EsperaMin  time.Duration
	EsperaMax  time.Duration
}

// configArquivo é o formato do arquivo YAML. Os campos são ponteiros
// para distinguir "ausente" (mantém o padrão) de "presente".
type configArquivo struct {
	BaseURL    *string `yaml:"base_url"`
	RSSURL     *string `yaml:"rss_url"`
	APIURL     *string `yaml:"api_url"`
	MaxPaginas *int    `yaml:"max_paginas"`
	EsperaMin  *string `yaml:"espera_min"`
	EsperaMax  *string `yaml:"espera_max"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		RSSURL:     DefaultRSSURL,
		APIURL:     DefaultAPIURL,
		MaxPaginas: DefaultMaxPaginas,
		EsperaMin:  DefaultEsperaMin,
		EsperaMax:  DefaultEsperaMax,
	}
}

// CarregarConfig lê um arquivo YAML e sobrepõe os campos presentes aos
// valores padrão. Um caminho vazio devolve a configuração padrão.
func CarregarConfig(caminho string) (Config, error) {
	cfg := DefaultConfig()
	if caminho == "" {
		return cfg, nil
	}

	conteudo, err := os.ReadFile(caminho)
	if err != nil {
		return Config{}, fmt.Errorf("%w: falha ao ler %s: %v", ErrConfiguracao, caminho, err)
	}

	var arquivo configArquivo
	if err := yaml.Unmarshal(conteudo, &arquivo); err != nil {
		return Config{}, fmt.Errorf("%w: falha ao interpretar %s: %v", ErrConfiguracao, caminho, err)
	}

	if arquivo.BaseURL != nil {
		cfg.BaseURL = *arquivo.BaseURL
	}
	if arquivo.RSSURL != nil {
		cfg.RSSURL = *arquivo.RSSURL
	}
	if arquivo.APIURL != nil {
		cfg.APIURL = *arquivo.APIURL
	}
	if arquivo.MaxPaginas != nil {
		cfg.MaxPaginas = *arquivo.MaxPaginas
	}
	if cfg.EsperaMin, err = duracao(arquivo.EsperaMin, cfg.EsperaMin); err != nil {
		return Config{}, fmt.Errorf("%w: espera_min: %v", ErrConfiguracao, err)
	}
	if cfg.EsperaMax, err = duracao(arquivo.EsperaMax, cfg.EsperaMax); err != nil {
		return Config{}, fmt.Errorf("%w: espera_max: %v", ErrConfiguracao, err)
	}

	if err := cfg.Validar(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// duracao interpreta uma duração opcional do YAML ("1s", "500ms").
func duracao(valor *string, padrao time.Duration) (time.Duration, error) {
	if valor == nil {
		return padrao, nil
	}
	return time.ParseDuration(*valor)
}

// Validar checa os invariantes da configuração.
func (c Config) Validar() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base_url não pode ser vazia", ErrConfiguracao)
	}
	if c.MaxPaginas <= 0 {
		return fmt.Errorf("%w: max_paginas deve ser positivo (recebido %d)", ErrConfiguracao, c.MaxPaginas)
	}
	if c.EsperaMin < 0 || c.EsperaMax < c.EsperaMin {
		return fmt.Errorf("%w: janela de espera inválida (%s a %s)", ErrConfiguracao, c.EsperaMin, c.EsperaMax)
	}
	return nil
}
