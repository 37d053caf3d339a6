package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"edureg/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ctypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/sirupsen/logrus"
)

const roleAttribute = "custom:role"

// CognitoAPI is the subset of the Cognito client used here.
type CognitoAPI interface {
	SignUp(ctx context.Context, params *cognitoidentityprovider.SignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *cognitoidentityprovider.ConfirmSignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmSignUpOutput, error)
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
}

// Session is the result of a successful password sign in.
type Session struct {
	AccessToken string
	ExpiresIn   int
}

// Cognito is the identity collaborator backed by a Cognito user pool app
// client. Accounts use the email address as username.
type Cognito struct {
	logger   *logrus.Logger
	client   CognitoAPI
	clientID string
}

func NewCognito(logger *logrus.Logger, client CognitoAPI, clientID string) *Cognito {
	return &Cognito{logger: logger, client: client, clientID: clientID}
}

// CreateAccount signs up a new account tagged with the role and display name
// in hints and returns its subject id.
func (c *Cognito) CreateAccount(ctx context.Context, email, secret string, hints types.AccountHints) (string, error) {
	email = strings.TrimSpace(email)

	input := &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(email),
		Password: aws.String(secret),
		UserAttributes: []ctypes.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("name"), Value: aws.String(hints.DisplayName)},
			{Name: aws.String(roleAttribute), Value: aws.String(hints.Role)},
		},
	}

	out, err := c.client.SignUp(ctx, input)
	if err != nil {
		return "", &Error{Message: c.signUpMessage(err), Err: err}
	}

	accountID := aws.ToString(out.UserSub)
	if accountID == "" {
		return "", &Error{Message: "Account was created without an id.", Err: errors.New("empty user sub")}
	}

	return accountID, nil
}

// ConfirmAccount submits the email verification code for email.
func (c *Cognito) ConfirmAccount(ctx context.Context, email, code string) error {
	input := &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(strings.TrimSpace(email)),
		ConfirmationCode: aws.String(strings.TrimSpace(code)),
	}

	_, err := c.client.ConfirmSignUp(ctx, input)
	if err != nil {
		var codeMismatch *ctypes.CodeMismatchException
		var expired *ctypes.ExpiredCodeException
		switch {
		case errors.As(err, &codeMismatch):
			return &Error{Message: "Invalid confirmation code. Please check the code and try again.", Err: err}
		case errors.As(err, &expired):
			return &Error{Message: "Confirmation code has expired. Request a new one.", Err: err}
		default:
			return &Error{Message: "Unable to confirm account. Please try again.", Err: err}
		}
	}

	return nil
}

// SignIn runs the user-password auth flow.
func (c *Cognito) SignIn(ctx context.Context, email, password string) (*Session, error) {
	input := &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: ctypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(c.clientID),
		AuthParameters: map[string]string{
			"USERNAME": strings.TrimSpace(email),
			"PASSWORD": password,
		},
	}

	resp, err := c.client.InitiateAuth(ctx, input)
	if err != nil {
		// NotAuthorizedException, UserNotConfirmedException, etc.
		var notConfirmed *ctypes.UserNotConfirmedException
		if errors.As(err, &notConfirmed) {
			return nil, &Error{Message: "Please verify your email before logging in.", Err: err}
		}
		return nil, &Error{Message: "Invalid credentials.", Err: err}
	}

	if resp.AuthenticationResult == nil || resp.AuthenticationResult.AccessToken == nil {
		return nil, &Error{Message: "Login failed.", Err: fmt.Errorf("no authentication result, challenge %q", resp.ChallengeName)}
	}

	return &Session{
		AccessToken: aws.ToString(resp.AuthenticationResult.AccessToken),
		ExpiresIn:   int(resp.AuthenticationResult.ExpiresIn),
	}, nil
}

func (c *Cognito) signUpMessage(err error) string {
	var invalidPw *ctypes.InvalidPasswordException
	if errors.As(err, &invalidPw) {
		return types.PasswordRuleMessage
	}

	var userExists *ctypes.UsernameExistsException
	if errors.As(err, &userExists) {
		return "An account with this email already exists."
	}

	var invalidParam *ctypes.InvalidParameterException
	if errors.As(err, &invalidParam) {
		return "Some details are invalid. Please review and try again."
	}

	c.logger.WithError(err).Error("unhandled cognito signup error")

	return "Unable to create account right now. Please try again."
}

// Error carries a user-facing message for a failed identity call.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
