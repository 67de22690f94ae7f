// Package main implements the Lambda authorizer guarding the API
// documentation pages with basic auth.
package main

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda/xrayconfig"
	"go.opentelemetry.io/otel"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// errUnauthorized makes API Gateway respond 401 instead of 403.
var errUnauthorized = errors.New("Unauthorized")

// handler validates basic-auth tokens against the configured credentials.
type handler struct {
	username string
	password string
}

func newHandler(username, password string) *handler {
	return &handler{username: username, password: password}
}

// handle checks the Authorization token and returns an allow policy for the
// requested method on success.
func (h *handler) handle(ctx context.Context, request events.APIGatewayCustomAuthorizerRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	username, password, ok := parseBasicAuth(request.AuthorizationToken)
	if !ok {
		return events.APIGatewayCustomAuthorizerResponse{}, errUnauthorized
	}

	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(h.username))
	passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(h.password))
	if userMatch&passMatch != 1 {
		logger.WarnContext(ctx, "docs authorization rejected", slog.String("username", username))
		return events.APIGatewayCustomAuthorizerResponse{}, errUnauthorized
	}

	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID: username,
		PolicyDocument: events.APIGatewayCustomAuthorizerPolicy{
			Version: "2012-10-17",
			Statement: []events.IAMPolicyStatement{
				{
					Action:   []string{"execute-api:Invoke"},
					Effect:   "Allow",
					Resource: []string{request.MethodArn},
				},
			},
		},
	}, nil
}

func parseBasicAuth(token string) (username, password string, ok bool) {
	const prefix = "Basic "
	if len(token) < len(prefix) || !strings.EqualFold(token[:len(prefix)], prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(token[len(prefix):])
	if err != nil {
		return "", "", false
	}
	username, password, ok = strings.Cut(string(decoded), ":")
	return username, password, ok
}

func main() {
	ctx := context.Background()

	tp, err := xrayconfig.NewTracerProvider(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to initialize tracer provider", slog.String("error", err.Error()))
		panic(err)
	}
	otel.SetTracerProvider(tp)

	h := newHandler(os.Getenv("DOCS_USERNAME"), os.Getenv("DOCS_PASSWORD"))
	lambda.Start(otellambda.InstrumentHandler(h.handle, xrayconfig.WithRecommendedOptions(tp)...))
}
