package cognito

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/golang-jwt/jwt/v5"
)

// Tokens is the bundle issued on a successful authentication.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	ExpiresIn    int32  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
	RefreshToken string `json:"refreshToken,omitempty"`
	IDToken      string `json:"idToken,omitempty"`
}

// LoginResult is the outcome of a login attempt. Either Tokens is set, or
// Challenge names a follow-up step the user must complete (with Session
// carrying the provider's challenge state).
type LoginResult struct {
	Tokens    *Tokens `json:"tokens,omitempty"`
	Sub       string  `json:"sub,omitempty"`
	Challenge string  `json:"challenge,omitempty"`
	Session   string  `json:"session,omitempty"`
}

// ChallengeNewPasswordRequired is the forced-password-change login outcome.
const ChallengeNewPasswordRequired = string(types.ChallengeNameTypeNewPasswordRequired)

// User is the provider's view of one user account.
type User struct {
	Username string
	Sub      string
	Email    string
	Status   string
	Enabled  bool
}

// Adapter implements the auth-provider operations against Cognito.
type Adapter struct {
	client       Client
	userPoolID   string
	clientID     string
	clientSecret string
}

// NewAdapter creates a new Adapter.
func NewAdapter(client Client, userPoolID, clientID, clientSecret string) *Adapter {
	return &Adapter{
		client:       client,
		userPoolID:   userPoolID,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

func (a *Adapter) secretHash(username string) string {
	return SecretHash(a.clientSecret, username, a.clientID)
}

// SignUp registers a new user and returns the provider-assigned subject id.
func (a *Adapter) SignUp(ctx context.Context, email, password string) (string, error) {
	output, err := a.client.SignUp(ctx, &cip.SignUpInput{
		ClientId:   aws.String(a.clientID),
		Username:   aws.String(email),
		Password:   aws.String(password),
		SecretHash: aws.String(a.secretHash(email)),
	})
	if err != nil {
		return "", providerError("sign up", err)
	}
	return aws.ToString(output.UserSub), nil
}

// ConfirmSignUp confirms a registration with the emailed code.
func (a *Adapter) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := a.client.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(a.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		SecretHash:       aws.String(a.secretHash(email)),
	})
	if err != nil {
		return providerError("confirm sign up", err)
	}
	return nil
}

// Login authenticates with email and password. A provider response naming
// the forced-password-change challenge is returned as a challenge result,
// not an error.
func (a *Adapter) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	output, err := a.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId: aws.String(a.clientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME":    email,
			"PASSWORD":    password,
			"SECRET_HASH": a.secretHash(email),
		},
	})
	if err != nil {
		return nil, providerError("login", err)
	}

	if output.AuthenticationResult == nil && output.ChallengeName == types.ChallengeNameTypeNewPasswordRequired {
		return &LoginResult{
			Challenge: ChallengeNewPasswordRequired,
			Session:   aws.ToString(output.Session),
		}, nil
	}

	result := &LoginResult{Tokens: tokensFromResult(output.AuthenticationResult)}
	if result.Tokens != nil {
		result.Sub = subjectFromIDToken(result.Tokens.IDToken)
	}
	return result, nil
}

// subjectFromIDToken extracts the subject claim without verifying the
// signature; the token was issued by the provider on this same call. The
// gateway authorizer does the real verification on later requests.
func subjectFromIDToken(idToken string) string {
	token, _, err := jwt.NewParser().ParseUnverified(idToken, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// Refresh exchanges a refresh token for a fresh token bundle. The secret
// hash is keyed by the subject id for this flow.
func (a *Adapter) Refresh(ctx context.Context, sub, refreshToken string) (*Tokens, error) {
	output, err := a.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId: aws.String(a.clientID),
		AuthFlow: types.AuthFlowTypeRefreshTokenAuth,
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": refreshToken,
			"SECRET_HASH":   a.secretHash(sub),
		},
	})
	if err != nil {
		return nil, providerError("refresh", err)
	}
	return tokensFromResult(output.AuthenticationResult), nil
}

// Logout revokes every token issued for the access token's session.
func (a *Adapter) Logout(ctx context.Context, accessToken string) error {
	_, err := a.client.GlobalSignOut(ctx, &cip.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return providerError("logout", err)
	}
	return nil
}

// ForgotPassword starts the password-reset flow for a user.
func (a *Adapter) ForgotPassword(ctx context.Context, email string) error {
	_, err := a.client.ForgotPassword(ctx, &cip.ForgotPasswordInput{
		ClientId:   aws.String(a.clientID),
		Username:   aws.String(email),
		SecretHash: aws.String(a.secretHash(email)),
	})
	if err != nil {
		return providerError("forgot password", err)
	}
	return nil
}

// ConfirmForgotPassword completes the password-reset flow.
func (a *Adapter) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	_, err := a.client.ConfirmForgotPassword(ctx, &cip.ConfirmForgotPasswordInput{
		ClientId:         aws.String(a.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(newPassword),
		SecretHash:       aws.String(a.secretHash(email)),
	})
	if err != nil {
		return providerError("confirm forgot password", err)
	}
	return nil
}

// ChangePassword changes the password of the authenticated user.
func (a *Adapter) ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error {
	_, err := a.client.ChangePassword(ctx, &cip.ChangePasswordInput{
		AccessToken:      aws.String(accessToken),
		PreviousPassword: aws.String(oldPassword),
		ProposedPassword: aws.String(newPassword),
	})
	if err != nil {
		return providerError("change password", err)
	}
	return nil
}

// RespondToNewPasswordChallenge completes the forced-password-change
// challenge issued on an invited admin's first login.
func (a *Adapter) RespondToNewPasswordChallenge(ctx context.Context, email, newPassword, session string) (*Tokens, error) {
	output, err := a.client.RespondToAuthChallenge(ctx, &cip.RespondToAuthChallengeInput{
		ClientId:      aws.String(a.clientID),
		ChallengeName: types.ChallengeNameTypeNewPasswordRequired,
		Session:       aws.String(session),
		ChallengeResponses: map[string]string{
			"USERNAME":     email,
			"NEW_PASSWORD": newPassword,
			"SECRET_HASH":  a.secretHash(email),
		},
	})
	if err != nil {
		return nil, providerError("respond to new password challenge", err)
	}
	return tokensFromResult(output.AuthenticationResult), nil
}

// AdminCreateUser provisions a user with a temporary password. The
// provider's own invitation email is suppressed; the caller sends its own
// through the notification queue.
func (a *Adapter) AdminCreateUser(ctx context.Context, email, temporaryPassword string) (string, error) {
	output, err := a.client.AdminCreateUser(ctx, &cip.AdminCreateUserInput{
		UserPoolId:        aws.String(a.userPoolID),
		Username:          aws.String(email),
		TemporaryPassword: aws.String(temporaryPassword),
		MessageAction:     types.MessageActionTypeSuppress,
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
		},
	})
	if err != nil {
		return "", providerError("admin create user", err)
	}
	if output.User != nil {
		for _, attr := range output.User.Attributes {
			if aws.ToString(attr.Name) == "sub" {
				return aws.ToString(attr.Value), nil
			}
		}
	}
	return "", nil
}

// AdminAddToGroup adds a user to a group.
func (a *Adapter) AdminAddToGroup(ctx context.Context, email, group string) error {
	_, err := a.client.AdminAddUserToGroup(ctx, &cip.AdminAddUserToGroupInput{
		UserPoolId: aws.String(a.userPoolID),
		Username:   aws.String(email),
		GroupName:  aws.String(group),
	})
	if err != nil {
		return providerError("admin add to group", err)
	}
	return nil
}

// AdminDeleteUser removes a user from the pool.
func (a *Adapter) AdminDeleteUser(ctx context.Context, email string) error {
	_, err := a.client.AdminDeleteUser(ctx, &cip.AdminDeleteUserInput{
		UserPoolId: aws.String(a.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		return providerError("admin delete user", err)
	}
	return nil
}

// AdminGetUser looks a user up by username.
func (a *Adapter) AdminGetUser(ctx context.Context, email string) (*User, error) {
	output, err := a.client.AdminGetUser(ctx, &cip.AdminGetUserInput{
		UserPoolId: aws.String(a.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		return nil, providerError("admin get user", err)
	}

	user := &User{
		Username: aws.ToString(output.Username),
		Status:   string(output.UserStatus),
		Enabled:  output.Enabled,
	}
	for _, attr := range output.UserAttributes {
		switch aws.ToString(attr.Name) {
		case "sub":
			user.Sub = aws.ToString(attr.Value)
		case "email":
			user.Email = aws.ToString(attr.Value)
		}
	}
	return user, nil
}

func tokensFromResult(result *types.AuthenticationResultType) *Tokens {
	if result == nil {
		return nil
	}
	return &Tokens{
		AccessToken:  aws.ToString(result.AccessToken),
		ExpiresIn:    result.ExpiresIn,
		TokenType:    aws.ToString(result.TokenType),
		RefreshToken: aws.ToString(result.RefreshToken),
		IDToken:      aws.ToString(result.IdToken),
	}
}
