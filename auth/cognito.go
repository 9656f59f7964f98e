package auth

import (
	"context"

	"github.com/Luismorlan/logosarena/model"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/pkg/errors"
)

// CognitoAPI is the part of the cognito client the provider uses.
type CognitoAPI interface {
	GetUser(ctx context.Context, params *cognitoidentityprovider.GetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error)
	GlobalSignOut(ctx context.Context, params *cognitoidentityprovider.GlobalSignOutInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GlobalSignOutOutput, error)
}

// CognitoProvider validates access tokens by asking Cognito for their user.
type CognitoProvider struct {
	client CognitoAPI
}

func NewCognitoProvider(client CognitoAPI) *CognitoProvider {
	return &CognitoProvider{client: client}
}

// NewCognitoProviderFromDefaultConfig creates a client with the default aws
// config chain (env, ~/.aws/config, instance role).
func NewCognitoProviderFromDefaultConfig(ctx context.Context) (*CognitoProvider, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	return NewCognitoProvider(cognitoidentityprovider.NewFromConfig(cfg)), nil
}

func (p *CognitoProvider) GetUser(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	user, err := p.client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{AccessToken: &token})
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}

	ident := &model.Identity{}
	if user.Username != nil {
		ident.Id = *user.Username
	}
	for _, attr := range user.UserAttributes {
		if attr.Name == nil || attr.Value == nil {
			continue
		}
		switch *attr.Name {
		case "sub":
			ident.Id = *attr.Value
		case "email":
			ident.Email = *attr.Value
		}
	}
	if ident.Id == "" {
		return nil, ErrInvalidToken
	}
	return ident, nil
}

func (p *CognitoProvider) SignOut(ctx context.Context, token string) error {
	_, err := p.client.GlobalSignOut(ctx, &cognitoidentityprovider.GlobalSignOutInput{AccessToken: &token})
	return errors.Wrap(err, "cognito sign out")
}
