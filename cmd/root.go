package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fatoufake/extrator/pkg/httpclient"
)

const (
	appName           = "fatoufake"
	defaultTimeoutSec = 10
	defaultMaxRetries = 3
)

// AppFlags guarda as flags persistentes da aplicação.
type AppFlags struct {
	TimeoutSec int // --timeout por requisição, em segundos
	MaxRetries int // --max-retries por requisição
}

var Flags AppFlags

// globalFetcher é o cliente HTTP compartilhado pelos subcomandos,
// inicializado no PersistentPreRunE do comando raiz.
var globalFetcher *httpclient.Client

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Extrator de notícias Fato ou Fake do G1",
	Long: `Extrai as checagens da seção Fato ou Fake do G1 por scraping direto,
API ou feed RSS, classifica cada uma como FATO, FAKE ou INDETERMINADO e
gera um dataset combinado sem duplicatas em CSV e/ou JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A conversão para uint64 exige um valor não negativo; um valor
		// negativo viraria um limite de tentativas gigantesco.
		if Flags.MaxRetries < 0 {
			return fmt.Errorf("--max-retries não pode ser negativo (recebido %d)", Flags.MaxRetries)
		}
		timeout := time.Duration(Flags.TimeoutSec) * time.Second
		globalFetcher = httpclient.New(
			timeout,
			httpclient.WithMaxRetries(uint64(Flags.MaxRetries)),
		)
		return nil
	},
}

// GetGlobalFetcher devolve o cliente HTTP compartilhado.
func GetGlobalFetcher() *httpclient.Client {
	return globalFetcher
}

// Execute roda o comando raiz e encerra o processo em caso de erro.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(
		&Flags.TimeoutSec,
		"timeout",
		defaultTimeoutSec,
		"tempo limite de cada requisição HTTP (segundos)",
	)
	rootCmd.PersistentFlags().IntVar(
		&Flags.MaxRetries,
		"max-retries",
		defaultMaxRetries,
		"número máximo de novas tentativas por requisição HTTP",
	)

	rootCmd.AddCommand(extrairCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(classificarCmd)
}
