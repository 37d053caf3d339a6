package identity

import (
	"context"
	"errors"
	"io"
	"testing"

	"edureg/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ctypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/sirupsen/logrus"
)

type fakeCognito struct {
	signUpIn   *cognitoidentityprovider.SignUpInput
	signUpErr  error
	confirmErr error
	authOut    *cognitoidentityprovider.InitiateAuthOutput
	authErr    error
}

func (f *fakeCognito) SignUp(ctx context.Context, in *cognitoidentityprovider.SignUpInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error) {
	f.signUpIn = in
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &cognitoidentityprovider.SignUpOutput{UserSub: aws.String("sub-123")}, nil
}

func (f *fakeCognito) ConfirmSignUp(ctx context.Context, in *cognitoidentityprovider.ConfirmSignUpInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmSignUpOutput, error) {
	return &cognitoidentityprovider.ConfirmSignUpOutput{}, f.confirmErr
}

func (f *fakeCognito) InitiateAuth(ctx context.Context, in *cognitoidentityprovider.InitiateAuthInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error) {
	return f.authOut, f.authErr
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestCreateAccountTagsRole(t *testing.T) {
	fake := &fakeCognito{}
	c := NewCognito(quietLogger(), fake, "client")

	id, err := c.CreateAccount(context.Background(), " owner@inst.example ", "Sup3rSecret!", types.AccountHints{
		Role:        types.RoleInstitution,
		DisplayName: "Green Valley School",
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if id != "sub-123" {
		t.Fatalf("unexpected id %q", id)
	}
	if aws.ToString(fake.signUpIn.Username) != "owner@inst.example" {
		t.Fatalf("username not trimmed: %q", aws.ToString(fake.signUpIn.Username))
	}

	attrs := map[string]string{}
	for _, a := range fake.signUpIn.UserAttributes {
		attrs[aws.ToString(a.Name)] = aws.ToString(a.Value)
	}
	if attrs[roleAttribute] != types.RoleInstitution || attrs["name"] != "Green Valley School" {
		t.Fatalf("unexpected attributes %v", attrs)
	}
}

func TestCreateAccountErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"exists", &ctypes.UsernameExistsException{}, "An account with this email already exists."},
		{"password", &ctypes.InvalidPasswordException{}, types.PasswordRuleMessage},
		{"param", &ctypes.InvalidParameterException{}, "Some details are invalid. Please review and try again."},
		{"other", errors.New("boom"), "Unable to create account right now. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCognito(quietLogger(), &fakeCognito{signUpErr: tt.err}, "client")
			_, err := c.CreateAccount(context.Background(), "a@b.example", "x", types.AccountHints{})

			var idErr *Error
			if !errors.As(err, &idErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if idErr.Message != tt.want {
				t.Fatalf("message = %q, want %q", idErr.Message, tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Fatal("cause should be preserved")
			}
		})
	}
}

func TestConfirmAccountCodeMismatch(t *testing.T) {
	c := NewCognito(quietLogger(), &fakeCognito{confirmErr: &ctypes.CodeMismatchException{}}, "client")

	err := c.ConfirmAccount(context.Background(), "a@b.example", "000000")
	if err == nil || err.Error() != "Invalid confirmation code. Please check the code and try again." {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSignIn(t *testing.T) {
	c := NewCognito(quietLogger(), &fakeCognito{authOut: &cognitoidentityprovider.InitiateAuthOutput{
		AuthenticationResult: &ctypes.AuthenticationResultType{AccessToken: aws.String("tok"), ExpiresIn: 3600},
	}}, "client")

	sess, err := c.SignIn(context.Background(), "a@b.example", "pw")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if sess.AccessToken != "tok" || sess.ExpiresIn != 3600 {
		t.Fatalf("unexpected session %+v", sess)
	}

	c = NewCognito(quietLogger(), &fakeCognito{authOut: &cognitoidentityprovider.InitiateAuthOutput{}}, "client")
	if _, err := c.SignIn(context.Background(), "a@b.example", "pw"); err == nil {
		t.Fatal("expected error without an authentication result")
	}
}
