package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/noteful/pkg/cryptox"
	"github.com/aussiebroadwan/noteful/pkg/jwtx"
)

// InitCodecs builds the access and refresh token codecs.
//
// A secret left unset is replaced by a random one that only lives as long
// as the process: every session is lost on restart and replicas cannot
// verify each other's tokens. That is fine for development only.
func InitCodecs(cfg Config, logger *slog.Logger, opts ...jwtx.Option) (access, refresh *jwtx.Codec, err error) {
	accessSecret, err := secretOrEphemeral(cfg.AccessTokenSecret, "ACCESS_TOKEN_SECRET", logger)
	if err != nil {
		return nil, nil, err
	}
	refreshSecret, err := secretOrEphemeral(cfg.RefreshTokenSecret, "REFRESH_TOKEN_SECRET", logger)
	if err != nil {
		return nil, nil, err
	}

	access, refresh, err = jwtx.NewCodecPair(
		accessSecret, refreshSecret,
		cfg.AccessTokenLife, cfg.RefreshTokenLife,
		opts...,
	)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("token codecs ready",
		"algorithm", "HS256",
		"access_ttl", cfg.AccessTokenLife,
		"refresh_ttl", cfg.RefreshTokenLife,
	)
	return access, refresh, nil
}

func secretOrEphemeral(secret, envVar string, logger *slog.Logger) ([]byte, error) {
	if secret != "" {
		return []byte(secret), nil
	}

	generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", envVar, err)
	}
	logger.Warn("token secret not configured, using an ephemeral one; sessions will not survive a restart",
		"env", envVar,
	)
	return []byte(generated), nil
}
