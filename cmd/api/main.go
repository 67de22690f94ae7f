// Package main implements the authentication API Lambda handler.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda/xrayconfig"
	"go.opentelemetry.io/otel"

	"github.com/sparcsup/auth-service/internal/admin"
	"github.com/sparcsup/auth-service/internal/cognito"
	"github.com/sparcsup/auth-service/internal/config"
	"github.com/sparcsup/auth-service/internal/entry"
	"github.com/sparcsup/auth-service/internal/httpapi"
	"github.com/sparcsup/auth-service/internal/notify"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// handler bridges API Gateway proxy events onto the HTTP router.
type handler struct {
	adapter *chiadapter.ChiLambda
}

func (h *handler) handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return h.adapter.ProxyWithContext(ctx, request)
}

func main() {
	ctx := context.Background()

	tp, err := xrayconfig.NewTracerProvider(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to initialize tracer provider", slog.String("error", err.Error()))
		panic(err)
	}
	otel.SetTracerProvider(tp)

	cfg := config.Load()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to load AWS config", slog.String("error", err.Error()))
		panic(err)
	}

	if err := cfg.ResolveClientSecret(ctx, ssm.NewFromConfig(awsCfg)); err != nil {
		logger.Error("FATAL: Failed to resolve client secret", slog.String("error", err.Error()))
		panic(err)
	}

	repo := entry.NewDynamoDBRepository(dynamodb.NewFromConfig(awsCfg), cfg.EntitiesTable)
	admins := admin.NewService(repo)
	auth := cognito.NewAdapter(
		cognitoidentityprovider.NewFromConfig(awsCfg),
		cfg.UserPoolID,
		cfg.UserPoolClientID,
		cfg.ClientSecret,
	)
	notifier := notify.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.EmailQueueURL)

	api := httpapi.New(auth, admins, notifier, cfg.FrontendURL)
	h := &handler{adapter: chiadapter.New(api.Router())}

	lambda.Start(otellambda.InstrumentHandler(h.handle, xrayconfig.WithRecommendedOptions(tp)...))
}
