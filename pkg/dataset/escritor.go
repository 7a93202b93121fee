package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatoufake/extrator/pkg/noticia"
)

// ErrDatasetVazio indica que não há registros e nenhum arquivo foi gravado.
var ErrDatasetVazio = errors.New("dataset vazio, nada para salvar")

// SeparadorTagsCSV separa as tags dentro de uma célula de CSV.
const SeparadorTagsCSV = "; "

// Escritor grava datasets em disco com nome de arquivo datado.
type Escritor struct {
	// Diretorio é a pasta de saída, criada sob demanda.
	Diretorio string
	// Prefixo compõe o nome do arquivo: fato_ou_fake_<Prefixo><timestamp>.<ext>
	Prefixo string
	// agora permite fixar o relógio nos testes; nil usa time.Now.
	agora func() time.Time
}

// NovoEscritor cria um escritor para o diretório e prefixo informados.
func NovoEscritor(diretorio, prefixo string) *Escritor {
	return &Escritor{Diretorio: diretorio, Prefixo: prefixo}
}

// SalvarCSV grava o dataset como CSV e retorna o caminho do arquivo.
// Um dataset vazio nunca gera arquivo (ErrDatasetVazio).
func (e *Escritor) SalvarCSV(d Dataset) (string, error) {
	if d.Vazio() {
		return "", ErrDatasetVazio
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(d.Colunas); err != nil {
		return "", fmt.Errorf("falha ao escrever o cabeçalho do CSV: %w", err)
	}

	for _, n := range d.Noticias {
		linha := make([]string, 0, len(d.Colunas))
		for _, coluna := range d.Colunas {
			linha = append(linha, valorTexto(n, coluna))
		}
		if err := w.Write(linha); err != nil {
			return "", fmt.Errorf("falha ao escrever uma linha do CSV: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("falha ao finalizar o CSV: %w", err)
	}

	return e.gravar(buf.Bytes(), "csv")
}

// SalvarJSON grava o dataset como uma lista JSON de objetos, com os
// campos na ordem das colunas, e retorna o caminho do arquivo.
func (e *Escritor) SalvarJSON(d Dataset) (string, error) {
	if d.Vazio() {
		return "", ErrDatasetVazio
	}

	corpo, err := codificarJSON(d)
	if err != nil {
		return "", err
	}

	return e.gravar(corpo, "json")
}

// codificarJSON monta o documento manualmente para preservar a ordem
// das colunas dentro de cada objeto (encoding/json ordenaria mapas
// alfabeticamente).
func codificarJSON(d Dataset) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("[\n")

	for i, n := range d.Noticias {
		buf.WriteString("    {\n")
		for j, coluna := range d.Colunas {
			nome, err := json.Marshal(coluna)
			if err != nil {
				return nil, fmt.Errorf("falha ao codificar o nome da coluna %q: %w", coluna, err)
			}
			valor, err := json.Marshal(valorJSON(n, coluna))
			if err != nil {
				return nil, fmt.Errorf("falha ao codificar a coluna %q: %w", coluna, err)
			}

			buf.WriteString("        ")
			buf.Write(nome)
			buf.WriteString(": ")
			buf.Write(valor)
			if j < len(d.Colunas)-1 {
				buf.WriteString(",")
			}
			buf.WriteString("\n")
		}
		buf.WriteString("    }")
		if i < len(d.Noticias)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}

	buf.WriteString("]\n")
	return buf.Bytes(), nil
}

// gravar cria o diretório de saída se necessário e grava o conteúdo com
// nome datado.
func (e *Escritor) gravar(conteudo []byte, extensao string) (string, error) {
	if err := os.MkdirAll(e.Diretorio, 0o755); err != nil {
		return "", fmt.Errorf("falha ao criar o diretório %s: %w", e.Diretorio, err)
	}

	agora := time.Now
	if e.agora != nil {
		agora = e.agora
	}
	timestamp := agora().Format("20060102_150405")

	caminho := filepath.Join(e.Diretorio, fmt.Sprintf("fato_ou_fake_%s%s.%s", e.Prefixo, timestamp, extensao))
	if err := os.WriteFile(caminho, conteudo, 0o644); err != nil {
		return "", fmt.Errorf("falha ao gravar o arquivo %s: %w", caminho, err)
	}

	return caminho, nil
}

// valorTexto devolve o valor textual da coluna para uma linha de CSV.
func valorTexto(n noticia.Noticia, coluna string) string {
	switch coluna {
	case noticia.ColunaTitulo:
		return n.Titulo
	case noticia.ColunaLink:
		return n.Link
	case noticia.ColunaDataPublicacao:
		return n.DataPublicacao
	case noticia.ColunaResumo:
		return n.Resumo
	case noticia.ColunaClassificacao:
		return string(n.Classificacao)
	case noticia.ColunaImagemURL:
		return n.ImagemURL
	case noticia.ColunaConteudo:
		return n.Conteudo
	case noticia.ColunaTags:
		return strings.Join(n.Tags, SeparadorTagsCSV)
	case noticia.ColunaAutor:
		return n.Autor
	case noticia.ColunaDataExtracao:
		return n.DataExtracao
	case noticia.ColunaMetodo:
		return string(n.MetodoExtracao)
	case noticia.ColunaFonte:
		return n.Fonte
	}
	return ""
}

// valorJSON devolve o valor tipado da coluna para a saída JSON.
// Tags permanecem como lista; o restante sai como texto.
func valorJSON(n noticia.Noticia, coluna string) any {
	if coluna == noticia.ColunaTags {
		if n.Tags == nil {
			return []string{}
		}
		return n.Tags
	}
	return valorTexto(n, coluna)
}
