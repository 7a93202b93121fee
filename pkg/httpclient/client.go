package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fatoufake/extrator/pkg/retry"
)

const (
	// DefaultHTTPTimeout é o tempo limite padrão por requisição.
	DefaultHTTPTimeout = 30 * time.Second

	// MaxBodySize limita a leitura do corpo da resposta (10MB).
	MaxBodySize = int64(10 * 1024 * 1024)

	// UserAgent de navegador para evitar bloqueio pelo site.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Doer é compatível com o método Do do *http.Client padrão.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NonRetryableHTTPError indica um status 4xx, que não deve ser repetido.
type NonRetryableHTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *NonRetryableHTTPError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("erro HTTP do cliente (sem nova tentativa): status %d, corpo: %s", e.StatusCode, strings.TrimSpace(string(e.Body)))
	}
	return fmt.Sprintf("erro HTTP do cliente (sem nova tentativa): status %d", e.StatusCode)
}

// Client executa requisições HTTP com novas tentativas por backoff exponencial.
type Client struct {
	httpClient  Doer
	retryConfig retry.Config
}

// Option configura o Client na construção.
type Option func(*Client)

// WithHTTPClient substitui o Doer interno (usado em testes).
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithMaxRetries define o número máximo de novas tentativas.
func WithMaxRetries(max uint64) Option {
	return func(c *Client) {
		c.retryConfig.MaxRetries = max
	}
}

// New cria um novo Client com o tempo limite informado.
func New(timeout time.Duration, options ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retryConfig: retry.DefaultConfig(),
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// FetchBytes busca a URL e devolve o corpo da resposta como bytes.
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	return c.fetch(ctx, url, "")
}

// FetchJSON busca a URL com Accept: application/json e decodifica o corpo em destino.
func (c *Client) FetchJSON(ctx context.Context, url string, destino any) error {
	corpo, err := c.fetch(ctx, url, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(corpo, destino); err != nil {
		return fmt.Errorf("falha ao decodificar o JSON de %s: %w", url, err)
	}
	return nil
}

// fetch executa o GET com novas tentativas e devolve o corpo limitado a MaxBodySize.
func (c *Client) fetch(ctx context.Context, url, accept string) ([]byte, error) {
	var corpo []byte

	op := func() error {
		var fetchErr error
		corpo, fetchErr = c.doGet(ctx, url, accept)
		return fetchErr
	}

	err := retry.Do(
		ctx,
		c.retryConfig,
		fmt.Sprintf("busca da URL %s", url),
		op,
		c.isRetryableError,
	)
	if err != nil {
		return nil, err
	}
	return corpo, nil
}

// doGet executa uma única requisição GET.
func (c *Client) doGet(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("falha ao montar a requisição GET: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("falha na requisição HTTP (rede/conexão): %w", err)
	}
	defer resp.Body.Close()

	if err := checarResposta(resp); err != nil {
		return nil, err
	}

	limitado := io.LimitReader(resp.Body, MaxBodySize)
	corpo, err := io.ReadAll(limitado)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler o corpo da resposta: %w", err)
	}

	if resp.ContentLength > 0 && resp.ContentLength > MaxBodySize {
		return nil, fmt.Errorf("corpo da resposta excede o tamanho máximo (%d bytes)", MaxBodySize)
	}

	return corpo, nil
}

// checarResposta classifica o status HTTP entre sucesso, erro repetível (5xx)
// e erro permanente (4xx, embrulhado em NonRetryableHTTPError).
func checarResposta(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	limitado := io.LimitReader(resp.Body, MaxBodySize)
	corpo, readErr := io.ReadAll(limitado)

	// 5xx: erro de servidor, passível de nova tentativa
	if resp.StatusCode >= 500 && resp.StatusCode <= 599 {
		if readErr != nil {
			return fmt.Errorf("erro de status HTTP (5xx, repetível; falha ao ler o corpo): %d: %w", resp.StatusCode, readErr)
		}
		return fmt.Errorf("erro de status HTTP (5xx, repetível): %d, detalhe: %s", resp.StatusCode, strings.TrimSpace(string(corpo)))
	}

	// 4xx: erro do cliente, sem nova tentativa
	if readErr != nil {
		return &NonRetryableHTTPError{StatusCode: resp.StatusCode}
	}
	return &NonRetryableHTTPError{
		StatusCode: resp.StatusCode,
		Body:       corpo,
	}
}

// IsNonRetryableError informa se o erro é um erro HTTP permanente (4xx).
func IsNonRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var nonRetryable *NonRetryableHTTPError
	return errors.As(err, &nonRetryable)
}

// isRetryableError satisfaz retry.ShouldRetryFunc.
func (c *Client) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Erros de contexto encerram pelo próprio backoff
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// 4xx não se repete
	if IsNonRetryableError(err) {
		return false
	}

	// 5xx e erros de rede se repetem
	return true
}
