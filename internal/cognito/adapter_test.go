package cognito

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// mockClient is a test double for the identity-provider operations.
type mockClient struct {
	signUpFunc                 func(ctx context.Context, input *cip.SignUpInput, opts ...func(*cip.Options)) (*cip.SignUpOutput, error)
	confirmSignUpFunc          func(ctx context.Context, input *cip.ConfirmSignUpInput, opts ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
	initiateAuthFunc           func(ctx context.Context, input *cip.InitiateAuthInput, opts ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	globalSignOutFunc          func(ctx context.Context, input *cip.GlobalSignOutInput, opts ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error)
	forgotPasswordFunc         func(ctx context.Context, input *cip.ForgotPasswordInput, opts ...func(*cip.Options)) (*cip.ForgotPasswordOutput, error)
	confirmForgotPasswordFunc  func(ctx context.Context, input *cip.ConfirmForgotPasswordInput, opts ...func(*cip.Options)) (*cip.ConfirmForgotPasswordOutput, error)
	changePasswordFunc         func(ctx context.Context, input *cip.ChangePasswordInput, opts ...func(*cip.Options)) (*cip.ChangePasswordOutput, error)
	respondToAuthChallengeFunc func(ctx context.Context, input *cip.RespondToAuthChallengeInput, opts ...func(*cip.Options)) (*cip.RespondToAuthChallengeOutput, error)
	adminCreateUserFunc        func(ctx context.Context, input *cip.AdminCreateUserInput, opts ...func(*cip.Options)) (*cip.AdminCreateUserOutput, error)
	adminAddUserToGroupFunc    func(ctx context.Context, input *cip.AdminAddUserToGroupInput, opts ...func(*cip.Options)) (*cip.AdminAddUserToGroupOutput, error)
	adminDeleteUserFunc        func(ctx context.Context, input *cip.AdminDeleteUserInput, opts ...func(*cip.Options)) (*cip.AdminDeleteUserOutput, error)
	adminGetUserFunc           func(ctx context.Context, input *cip.AdminGetUserInput, opts ...func(*cip.Options)) (*cip.AdminGetUserOutput, error)
}

func (m *mockClient) SignUp(ctx context.Context, input *cip.SignUpInput, opts ...func(*cip.Options)) (*cip.SignUpOutput, error) {
	if m.signUpFunc != nil {
		return m.signUpFunc(ctx, input, opts...)
	}
	return &cip.SignUpOutput{}, nil
}

func (m *mockClient) ConfirmSignUp(ctx context.Context, input *cip.ConfirmSignUpInput, opts ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error) {
	if m.confirmSignUpFunc != nil {
		return m.confirmSignUpFunc(ctx, input, opts...)
	}
	return &cip.ConfirmSignUpOutput{}, nil
}

func (m *mockClient) InitiateAuth(ctx context.Context, input *cip.InitiateAuthInput, opts ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
	if m.initiateAuthFunc != nil {
		return m.initiateAuthFunc(ctx, input, opts...)
	}
	return &cip.InitiateAuthOutput{}, nil
}

func (m *mockClient) GlobalSignOut(ctx context.Context, input *cip.GlobalSignOutInput, opts ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error) {
	if m.globalSignOutFunc != nil {
		return m.globalSignOutFunc(ctx, input, opts...)
	}
	return &cip.GlobalSignOutOutput{}, nil
}

func (m *mockClient) ForgotPassword(ctx context.Context, input *cip.ForgotPasswordInput, opts ...func(*cip.Options)) (*cip.ForgotPasswordOutput, error) {
	if m.forgotPasswordFunc != nil {
		return m.forgotPasswordFunc(ctx, input, opts...)
	}
	return &cip.ForgotPasswordOutput{}, nil
}

func (m *mockClient) ConfirmForgotPassword(ctx context.Context, input *cip.ConfirmForgotPasswordInput, opts ...func(*cip.Options)) (*cip.ConfirmForgotPasswordOutput, error) {
	if m.confirmForgotPasswordFunc != nil {
		return m.confirmForgotPasswordFunc(ctx, input, opts...)
	}
	return &cip.ConfirmForgotPasswordOutput{}, nil
}

func (m *mockClient) ChangePassword(ctx context.Context, input *cip.ChangePasswordInput, opts ...func(*cip.Options)) (*cip.ChangePasswordOutput, error) {
	if m.changePasswordFunc != nil {
		return m.changePasswordFunc(ctx, input, opts...)
	}
	return &cip.ChangePasswordOutput{}, nil
}

func (m *mockClient) RespondToAuthChallenge(ctx context.Context, input *cip.RespondToAuthChallengeInput, opts ...func(*cip.Options)) (*cip.RespondToAuthChallengeOutput, error) {
	if m.respondToAuthChallengeFunc != nil {
		return m.respondToAuthChallengeFunc(ctx, input, opts...)
	}
	return &cip.RespondToAuthChallengeOutput{}, nil
}

func (m *mockClient) AdminCreateUser(ctx context.Context, input *cip.AdminCreateUserInput, opts ...func(*cip.Options)) (*cip.AdminCreateUserOutput, error) {
	if m.adminCreateUserFunc != nil {
		return m.adminCreateUserFunc(ctx, input, opts...)
	}
	return &cip.AdminCreateUserOutput{}, nil
}

func (m *mockClient) AdminAddUserToGroup(ctx context.Context, input *cip.AdminAddUserToGroupInput, opts ...func(*cip.Options)) (*cip.AdminAddUserToGroupOutput, error) {
	if m.adminAddUserToGroupFunc != nil {
		return m.adminAddUserToGroupFunc(ctx, input, opts...)
	}
	return &cip.AdminAddUserToGroupOutput{}, nil
}

func (m *mockClient) AdminDeleteUser(ctx context.Context, input *cip.AdminDeleteUserInput, opts ...func(*cip.Options)) (*cip.AdminDeleteUserOutput, error) {
	if m.adminDeleteUserFunc != nil {
		return m.adminDeleteUserFunc(ctx, input, opts...)
	}
	return &cip.AdminDeleteUserOutput{}, nil
}

func (m *mockClient) AdminGetUser(ctx context.Context, input *cip.AdminGetUserInput, opts ...func(*cip.Options)) (*cip.AdminGetUserOutput, error) {
	if m.adminGetUserFunc != nil {
		return m.adminGetUserFunc(ctx, input, opts...)
	}
	return &cip.AdminGetUserOutput{}, nil
}

func newTestAdapter(client Client) *Adapter {
	return NewAdapter(client, "pool-1", "client-1", "shared-secret")
}

func TestSignUp(t *testing.T) {
	mock := &mockClient{
		signUpFunc: func(ctx context.Context, input *cip.SignUpInput, opts ...func(*cip.Options)) (*cip.SignUpOutput, error) {
			if got := aws.ToString(input.Username); got != "a@x.com" {
				t.Errorf("Username = %q, want a@x.com", got)
			}
			if got := aws.ToString(input.SecretHash); got != SecretHash("shared-secret", "a@x.com", "client-1") {
				t.Errorf("SecretHash = %q, want hash keyed by username", got)
			}
			return &cip.SignUpOutput{UserSub: aws.String("sub-1")}, nil
		},
	}

	sub, err := newTestAdapter(mock).SignUp(context.Background(), "a@x.com", "pw")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if sub != "sub-1" {
		t.Errorf("sub = %q, want sub-1", sub)
	}
}

// unsignedIDToken builds a JWT-shaped token carrying the given subject.
func unsignedIDToken(sub string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"` + sub + `"}`))
	return header + "." + payload + "."
}

func TestLogin(t *testing.T) {
	mock := &mockClient{
		initiateAuthFunc: func(ctx context.Context, input *cip.InitiateAuthInput, opts ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
			if input.AuthFlow != types.AuthFlowTypeUserPasswordAuth {
				t.Errorf("AuthFlow = %v", input.AuthFlow)
			}
			if input.AuthParameters["SECRET_HASH"] == "" {
				t.Errorf("SECRET_HASH missing from auth parameters")
			}
			return &cip.InitiateAuthOutput{
				AuthenticationResult: &types.AuthenticationResultType{
					AccessToken:  aws.String("access"),
					RefreshToken: aws.String("refresh"),
					IdToken:      aws.String(unsignedIDToken("sub-9")),
					TokenType:    aws.String("Bearer"),
					ExpiresIn:    3600,
				},
			}, nil
		},
	}

	result, err := newTestAdapter(mock).Login(context.Background(), "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Challenge != "" {
		t.Errorf("Challenge = %q, want empty", result.Challenge)
	}
	if result.Tokens == nil || result.Tokens.AccessToken != "access" || result.Tokens.ExpiresIn != 3600 {
		t.Errorf("Tokens = %+v", result.Tokens)
	}
	if result.Sub != "sub-9" {
		t.Errorf("Sub = %q, want the id-token subject", result.Sub)
	}
}

func TestLogin_NewPasswordChallenge(t *testing.T) {
	mock := &mockClient{
		initiateAuthFunc: func(ctx context.Context, input *cip.InitiateAuthInput, opts ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
			return &cip.InitiateAuthOutput{
				ChallengeName: types.ChallengeNameTypeNewPasswordRequired,
				Session:       aws.String("session-token"),
			}, nil
		},
	}

	result, err := newTestAdapter(mock).Login(context.Background(), "a@x.com", "temp-pw")
	if err != nil {
		t.Fatalf("Login() error = %v, challenge is not an error", err)
	}
	if result.Tokens != nil {
		t.Errorf("Tokens = %+v, want nil on challenge", result.Tokens)
	}
	if result.Challenge != ChallengeNewPasswordRequired {
		t.Errorf("Challenge = %q, want %q", result.Challenge, ChallengeNewPasswordRequired)
	}
	if result.Session != "session-token" {
		t.Errorf("Session = %q, want session-token", result.Session)
	}
}

func TestLogin_ProviderErrorPublicMessage(t *testing.T) {
	mock := &mockClient{
		initiateAuthFunc: func(ctx context.Context, input *cip.InitiateAuthInput, opts ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
			return nil, &types.NotAuthorizedException{Message: aws.String("Incorrect username or password.")}
		},
	}

	_, err := newTestAdapter(mock).Login(context.Background(), "a@x.com", "wrong")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ProviderError", err)
	}
	if perr.PublicMessage != "Incorrect username or password." {
		t.Errorf("PublicMessage = %q", perr.PublicMessage)
	}
}

func TestLogin_OpaqueErrorHidesDetail(t *testing.T) {
	mock := &mockClient{
		initiateAuthFunc: func(ctx context.Context, input *cip.InitiateAuthInput, opts ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
			return nil, errors.New("dial tcp 10.0.0.1: connection refused")
		},
	}

	_, err := newTestAdapter(mock).Login(context.Background(), "a@x.com", "pw")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ProviderError", err)
	}
	if perr.PublicMessage != defaultPublicMessage {
		t.Errorf("PublicMessage = %q, internal detail must not leak", perr.PublicMessage)
	}
}

func TestRefresh_SecretHashKeyedBySub(t *testing.T) {
	mock := &mockClient{
		initiateAuthFunc: func(ctx context.Context, input *cip.InitiateAuthInput, opts ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
			if input.AuthFlow != types.AuthFlowTypeRefreshTokenAuth {
				t.Errorf("AuthFlow = %v", input.AuthFlow)
			}
			if got := input.AuthParameters["SECRET_HASH"]; got != SecretHash("shared-secret", "sub-1", "client-1") {
				t.Errorf("SECRET_HASH = %q, want hash keyed by subject id", got)
			}
			return &cip.InitiateAuthOutput{
				AuthenticationResult: &types.AuthenticationResultType{AccessToken: aws.String("access")},
			}, nil
		},
	}

	tokens, err := newTestAdapter(mock).Refresh(context.Background(), "sub-1", "refresh-token")
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if tokens.AccessToken != "access" {
		t.Errorf("AccessToken = %q", tokens.AccessToken)
	}
}

func TestAdminCreateUser(t *testing.T) {
	mock := &mockClient{
		adminCreateUserFunc: func(ctx context.Context, input *cip.AdminCreateUserInput, opts ...func(*cip.Options)) (*cip.AdminCreateUserOutput, error) {
			if input.MessageAction != types.MessageActionTypeSuppress {
				t.Errorf("MessageAction = %v, want SUPPRESS (invitation is sent through the queue)", input.MessageAction)
			}
			if got := aws.ToString(input.UserPoolId); got != "pool-1" {
				t.Errorf("UserPoolId = %q", got)
			}
			return &cip.AdminCreateUserOutput{
				User: &types.UserType{
					Username: aws.String("a@x.com"),
					Attributes: []types.AttributeType{
						{Name: aws.String("sub"), Value: aws.String("sub-9")},
					},
				},
			}, nil
		},
	}

	sub, err := newTestAdapter(mock).AdminCreateUser(context.Background(), "a@x.com", "Temp-pw1!")
	if err != nil {
		t.Fatalf("AdminCreateUser() error = %v", err)
	}
	if sub != "sub-9" {
		t.Errorf("sub = %q, want sub-9", sub)
	}
}

func TestRespondToNewPasswordChallenge(t *testing.T) {
	mock := &mockClient{
		respondToAuthChallengeFunc: func(ctx context.Context, input *cip.RespondToAuthChallengeInput, opts ...func(*cip.Options)) (*cip.RespondToAuthChallengeOutput, error) {
			if input.ChallengeName != types.ChallengeNameTypeNewPasswordRequired {
				t.Errorf("ChallengeName = %v", input.ChallengeName)
			}
			if got := aws.ToString(input.Session); got != "session-token" {
				t.Errorf("Session = %q", got)
			}
			if input.ChallengeResponses["NEW_PASSWORD"] != "New-pw1!" {
				t.Errorf("NEW_PASSWORD = %q", input.ChallengeResponses["NEW_PASSWORD"])
			}
			return &cip.RespondToAuthChallengeOutput{
				AuthenticationResult: &types.AuthenticationResultType{AccessToken: aws.String("access")},
			}, nil
		},
	}

	tokens, err := newTestAdapter(mock).RespondToNewPasswordChallenge(context.Background(), "a@x.com", "New-pw1!", "session-token")
	if err != nil {
		t.Fatalf("RespondToNewPasswordChallenge() error = %v", err)
	}
	if tokens.AccessToken != "access" {
		t.Errorf("AccessToken = %q", tokens.AccessToken)
	}
}

func TestAdminGetUser(t *testing.T) {
	mock := &mockClient{
		adminGetUserFunc: func(ctx context.Context, input *cip.AdminGetUserInput, opts ...func(*cip.Options)) (*cip.AdminGetUserOutput, error) {
			return &cip.AdminGetUserOutput{
				Username:   aws.String("a@x.com"),
				Enabled:    true,
				UserStatus: types.UserStatusTypeForceChangePassword,
				UserAttributes: []types.AttributeType{
					{Name: aws.String("sub"), Value: aws.String("sub-9")},
					{Name: aws.String("email"), Value: aws.String("a@x.com")},
				},
			}, nil
		},
	}

	user, err := newTestAdapter(mock).AdminGetUser(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("AdminGetUser() error = %v", err)
	}
	if user.Sub != "sub-9" || user.Email != "a@x.com" || !user.Enabled {
		t.Errorf("user = %+v", user)
	}
	if user.Status != string(types.UserStatusTypeForceChangePassword) {
		t.Errorf("Status = %q", user.Status)
	}
}
