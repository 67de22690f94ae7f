// Package config reads the service configuration from the Lambda
// environment and resolves the app-client secret from SSM Parameter Store.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSMClient defines the interface for parameter retrieval.
type SSMClient interface {
	GetParameter(ctx context.Context, input *ssm.GetParameterInput, opts ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Config holds the service configuration.
type Config struct {
	EntitiesTable    string
	UserPoolID       string
	UserPoolClientID string
	ClientSecretName string
	ClientSecret     string
	EmailQueueURL    string
	FrontendURL      string
	Stage            string
}

// Load reads configuration from the environment.
func Load() Config {
	return Config{
		EntitiesTable:    os.Getenv("ENTITIES_TABLE"),
		UserPoolID:       os.Getenv("USER_POOL_ID"),
		UserPoolClientID: os.Getenv("USER_POOL_CLIENT_ID"),
		ClientSecretName: os.Getenv("CLIENT_SECRET_NAME"),
		EmailQueueURL:    os.Getenv("EMAIL_QUEUE"),
		FrontendURL:      os.Getenv("FRONTEND_URL"),
		Stage:            os.Getenv("STAGE"),
	}
}

// ResolveClientSecret fetches and decrypts the app-client secret named by
// ClientSecretName.
func (c *Config) ResolveClientSecret(ctx context.Context, client SSMClient) error {
	if c.ClientSecretName == "" {
		return fmt.Errorf("CLIENT_SECRET_NAME is not set")
	}

	output, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(c.ClientSecretName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("get secret %s: %w", c.ClientSecretName, err)
	}

	c.ClientSecret = aws.ToString(output.Parameter.Value)
	return nil
}
