package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/common/logger"
	"github.com/yashrajoria/streetwear-backend/config"
	awspkg "github.com/yashrajoria/streetwear-backend/pkg/aws"
)

// Bootstrap loads configuration, builds the process logger (tee'd to
// CloudWatch Logs when a log group is set) and overlays Secrets Manager
// values when AWS_USE_SECRETS=true.
func Bootstrap(ctx context.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	awsCfg, err := awspkg.LoadAWSConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	var cwWriter io.Writer
	var cwErr error
	if cfg.CloudWatchLogGroup != "" {
		cw, err := awspkg.NewCloudWatchLogsClient(ctx, awsCfg, cfg.CloudWatchLogGroup, cfg.ServiceName)
		if err != nil {
			cwErr = err
		} else {
			cwWriter = cw
		}
	}

	log, err := logger.New(cfg.Env, cfg.ServiceName, cfg.LogLevel, cwWriter)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	if cwErr != nil {
		log.Warn("CloudWatch logs client init failed (non-fatal)", zap.Error(cwErr))
	}

	if config.UseSecrets() {
		cfg.ApplySecrets(ctx, awspkg.NewSecretsClient(awsCfg))
		log.Info("Applied Secrets Manager overrides")
	}

	if err := cfg.Validate(); err != nil {
		return nil, log, err
	}
	return cfg, log, nil
}
