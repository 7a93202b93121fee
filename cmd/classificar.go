package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fatoufake/extrator/pkg/checagem"
)

var (
	tituloFlag string
	linkFlag   string
)

var classificarCmd = &cobra.Command{
	Use:   "classificar",
	Short: "Classifica um título de checagem como FATO, FAKE ou INDETERMINADO",
	Long: `Aplica as mesmas regras de classificação usadas na extração a um único
título, informado em --titulo ou pela entrada padrão. Com --link, também
informa se a notícia passaria pela triagem de checagens.`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		titulo := tituloFlag
		if titulo == "" {
			scanner := bufio.NewScanner(os.Stdin)
			fmt.Fprint(cmd.OutOrStdout(), "Informe o título a classificar: ")
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("falha ao ler a entrada padrão: %w", err)
				}
				return fmt.Errorf("nenhum título informado")
			}
			titulo = scanner.Text()
		}

		if titulo == "" {
			return fmt.Errorf("nenhum título informado")
		}

		saida := cmd.OutOrStdout()
		fmt.Fprintf(saida, "Classificação: %s\n", checagem.Classificar(titulo, ""))

		if linkFlag != "" {
			if checagem.EhChecagem(titulo, linkFlag) {
				fmt.Fprintln(saida, "Triagem: é uma checagem Fato ou Fake")
			} else {
				fmt.Fprintln(saida, "Triagem: não é uma checagem Fato ou Fake")
			}
		}

		return nil
	},
}

func init() {
	classificarCmd.Flags().StringVarP(&tituloFlag, "titulo", "t", "", "título da notícia a classificar")
	classificarCmd.Flags().StringVarP(&linkFlag, "link", "l", "", "link da notícia, para a triagem (opcional)")
}
