package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fatoufake/extrator/internal/pipeline"
	"github.com/fatoufake/extrator/pkg/extrator"
)

// Flags do subcomando extrair.
var (
	metodoFlag  string
	paginasFlag int
	formatoFlag string
	saidaFlag   string
	configFlag  string
)

var extrairCmd = &cobra.Command{
	Use:   "extrair",
	Short: "Executa a extração, classifica e grava o dataset",
	Long: `Roda os métodos de extração selecionados (scraping, api, rss ou todos),
combina os resultados removendo duplicatas pelo link e grava o dataset
em CSV e/ou JSON no diretório de saída.`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuração, validada antes de qualquer atividade de rede
		cfg, err := configEfetiva(configFlag, paginasFlag, cmd.Flags().Changed("paginas"))
		if err != nil {
			return err
		}

		opcoes := pipeline.Opcoes{
			Metodo:  metodoFlag,
			Formato: formatoFlag,
			Saida:   saidaFlag,
			Config:  cfg,
		}

		p, err := pipeline.Novo(opcoes, GetGlobalFetcher(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		// 2. Tempo limite global da execução: cresce com o número de
		// páginas por causa da espera entre as buscas de conteúdo
		limite := time.Duration(Flags.TimeoutSec) * time.Second * time.Duration(4*cfg.MaxPaginas)
		ctx, cancel := context.WithTimeout(context.Background(), limite)
		defer cancel()

		log.Printf("Iniciando extração usando método(s): %s", metodoFlag)

		// 3. Execução
		resultado, err := p.Executar(ctx)
		if err != nil {
			return fmt.Errorf("falha na execução da extração: %w", err)
		}

		if resultado.NadaExtraido {
			fmt.Fprintln(cmd.OutOrStdout(), "Nenhum dado extraído; nenhum arquivo foi gravado.")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), "\nProcesso de extração concluído!")
		return nil
	},
}

// configEfetiva resolve a precedência da configuração: o arquivo YAML
// sobrepõe os padrões e --paginas, quando passada explicitamente na
// linha de comando, vence o arquivo. O padrão da flag nunca sobrescreve
// um max_paginas vindo do arquivo.
func configEfetiva(caminhoConfig string, paginas int, paginasDefinida bool) (extrator.Config, error) {
	cfg, err := extrator.CarregarConfig(caminhoConfig)
	if err != nil {
		return extrator.Config{}, err
	}
	if paginasDefinida {
		cfg.MaxPaginas = paginas
	}
	return cfg, nil
}

func init() {
	extrairCmd.Flags().StringVar(&metodoFlag, "metodo", pipeline.MetodoTodos,
		"método de extração (scraping, api, rss ou todos)")
	extrairCmd.Flags().IntVar(&paginasFlag, "paginas", extrator.DefaultMaxPaginas,
		"número de páginas para extrair no modo scraping")
	extrairCmd.Flags().StringVar(&formatoFlag, "formato", pipeline.FormatoCSV,
		"formato de saída (csv, json ou ambos)")
	extrairCmd.Flags().StringVar(&saidaFlag, "saida", "datasets",
		"diretório de saída dos arquivos")
	extrairCmd.Flags().StringVar(&configFlag, "config", "",
		"arquivo YAML de configuração (opcional)")

	// A validação fina de método/formato acontece em pipeline.Opcoes;
	// aqui só garantimos que o processo sai com erro de uso claro.
	extrairCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if paginasFlag <= 0 {
			return fmt.Errorf("%w: --paginas deve ser positivo (recebido %d)", extrator.ErrConfiguracao, paginasFlag)
		}
		if _, err := os.Stat(configFlag); configFlag != "" && err != nil {
			return fmt.Errorf("%w: arquivo de configuração %s: %v", extrator.ErrConfiguracao, configFlag, err)
		}
		return nil
	}
}
