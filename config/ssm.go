package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// LoadSSM reads every parameter below path, decrypted and recursively. Each value is keyed
// by the last segment of its parameter name, so /portfolio/prod/JWT_SECRET becomes JWT_SECRET.
func LoadSSM(ctx context.Context, client ssm.GetParametersByPathAPIClient, path string) (map[string]string, error) {
	params := make(map[string]string)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("read SSM parameters under %s: %w", path, err)
		}
		for _, p := range page.Parameters {
			name := aws.ToString(p.Name)
			params[name[strings.LastIndex(name, "/")+1:]] = aws.ToString(p.Value)
		}
	}
	return params, nil
}

// WithSSM overlays the parameters under SSM_PARAMETER_PATH onto config. Without the key,
// config is returned unchanged.
func WithSSM(ctx context.Context, config map[string]string) (map[string]string, error) {
	path := GetString(config, "SSM_PARAMETER_PATH", "")
	if path == "" {
		return config, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	params, err := LoadSSM(ctx, ssm.NewFromConfig(awsCfg), path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Int("parameters", len(params)).Msg("Loaded configuration from SSM")
	return Merge(config, params), nil
}
