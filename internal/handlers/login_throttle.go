package handlers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// ======================================================
// LOGIN THROTTLE
// ======================================================

const (
	loginMaxAttempts = 5
	loginWindow      = 15 * time.Minute
)

// LoginThrottle conta tentativas de login por e-mail em uma janela deslizante.
// Sem redis configurado o throttle vira no-op: indisponibilidade do contador
// nunca pode derrubar o login.
type LoginThrottle struct {
	rdb *redis.Client
}

func NewLoginThrottle(redisURL string) *LoginThrottle {
	if redisURL == "" {
		return &LoginThrottle{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("login throttle: REDIS_URL inválida, throttle desligado: %v", err)
		return &LoginThrottle{}
	}
	return &LoginThrottle{rdb: redis.NewClient(opts)}
}

func throttleKey(email string) string {
	return "login_attempts:" + strings.ToLower(strings.TrimSpace(email))
}

// Allow informa se o e-mail ainda pode tentar. Erros de redis contam como
// permitido.
func (t *LoginThrottle) Allow(ctx context.Context, email string) bool {
	if t.rdb == nil {
		return true
	}

	n, err := t.rdb.Get(ctx, throttleKey(email)).Int()
	if err != nil && err != redis.Nil {
		log.Printf("login throttle: erro ao consultar: %v", err)
		return true
	}
	return n < loginMaxAttempts
}

// RecordFailure incrementa o contador e renova a janela.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) {
	if t.rdb == nil {
		return
	}

	key := throttleKey(email)
	if err := t.rdb.Incr(ctx, key).Err(); err != nil {
		log.Printf("login throttle: erro ao incrementar: %v", err)
		return
	}
	t.rdb.Expire(ctx, key, loginWindow)
}

// Reset zera o contador após login bem-sucedido.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	if t.rdb == nil {
		return
	}
	t.rdb.Del(ctx, throttleKey(email))
}
