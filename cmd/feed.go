package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/spf13/cobra"

	"github.com/fatoufake/extrator/pkg/extrator"
)

var feedURL string

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Busca e lista o feed RSS da seção Fato ou Fake",
	Long: `Busca o feed RSS da seção (ou outro informado em --url) e lista o
título, o link e a data de publicação de cada entrada. Útil para
inspecionar o feed antes de uma extração completa.`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		url := feedURL
		if url == "" {
			url = extrator.DefaultRSSURL
		}

		// Tempo limite global: o dobro do tempo limite do cliente
		limite := time.Duration(Flags.TimeoutSec*2) * time.Second
		ctx, cancel := context.WithTimeout(context.Background(), limite)
		defer cancel()

		log.Printf("Processando o feed %s (tempo limite: %s)", url, limite)

		corpo, err := GetGlobalFetcher().FetchBytes(ctx, url)
		if err != nil {
			return fmt.Errorf("falha ao buscar o feed %s: %w", url, err)
		}

		parsed, err := gofeed.NewParser().Parse(bytes.NewReader(corpo))
		if err != nil {
			return fmt.Errorf("falha ao interpretar o feed %s: %w", url, err)
		}

		saida := cmd.OutOrStdout()
		fmt.Fprintln(saida, "--- Feed ---")
		fmt.Fprintf(saida, "Título: %s\n", parsed.Title)
		fmt.Fprintf(saida, "Total de entradas: %d\n", len(parsed.Items))
		fmt.Fprintln(saida, "------------")

		for i, item := range parsed.Items {
			fmt.Fprintf(saida, "[%d] %s\n", i+1, item.Title)
			fmt.Fprintf(saida, "    URL: %s\n", item.Link)
			if item.PublishedParsed != nil {
				fmt.Fprintf(saida, "    Publicado em: %s\n", item.PublishedParsed.Local().Format("2006-01-02 15:04:05"))
			}
		}

		return nil
	},
}

func init() {
	feedCmd.Flags().StringVarP(&feedURL, "url", "u", "", "URL do feed RSS (padrão: feed da seção Fato ou Fake)")
}
