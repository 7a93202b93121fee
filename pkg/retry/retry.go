package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultMaxRetries é o número máximo de novas tentativas por operação.
	DefaultMaxRetries = 3

	// Intervalos do backoff exponencial.
	InitialBackoffInterval = 500 * time.Millisecond
	MaxBackoffInterval     = 5 * time.Second
)

// Operation representa uma operação que pode ser repetida. Retorna nil em caso de sucesso.
type Operation func() error

// ShouldRetryFunc recebe um erro e decide se a operação deve ser repetida.
type ShouldRetryFunc func(error) bool

// Config controla o comportamento das novas tentativas.
type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultConfig retorna a configuração padrão recomendada.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      DefaultMaxRetries,
		InitialInterval: InitialBackoffInterval,
		MaxInterval:     MaxBackoffInterval,
	}
}

// Do executa a operação com backoff exponencial e um julgamento de erro customizado.
// A Config chega por parâmetro para que o pacote não dependa de nenhum cliente concreto.
func Do(ctx context.Context, cfg Config, nomeOperacao string, op Operation, shouldRetryFn ShouldRetryFunc) error {

	// Configuração do backoff
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.MaxInterval = cfg.MaxInterval

	bo := backoff.WithMaxRetries(b, cfg.MaxRetries)
	bo = backoff.WithContext(bo, ctx)

	var ultimoErr error

	operacao := func() error {
		err := op()

		if err == nil {
			return nil // sucesso
		}

		// Julgamento delegado à função recebida
		if shouldRetryFn(err) {
			ultimoErr = fmt.Errorf("erro temporário, tentando novamente: %w", err)
			return ultimoErr
		}

		ultimoErr = fmt.Errorf("erro permanente, novas tentativas canceladas: %w", err)
		return backoff.Permanent(ultimoErr) // encerra imediatamente
	}

	err := backoff.Retry(operacao, bo)

	if err != nil {
		// Cancelamento ou estouro de tempo do contexto
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("falha em %s: contexto cancelado ou expirado: %w", nomeOperacao, err)
		}

		// Recupera o erro original embrulhado por backoff.Permanent
		var pErr *backoff.PermanentError
		if errors.As(err, &pErr) {
			return pErr.Err
		}

		return fmt.Errorf("falha em %s: limite de %d tentativas atingido. último erro: %w", nomeOperacao, cfg.MaxRetries, ultimoErr)
	}
	return nil
}
