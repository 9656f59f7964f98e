package auth

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/Luismorlan/logosarena/model"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCognito struct {
	users     map[string]*cognitoidentityprovider.GetUserOutput
	signedOut []string
}

func (f *fakeCognito) GetUser(ctx context.Context, in *cognitoidentityprovider.GetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error) {
	if out, ok := f.users[*in.AccessToken]; ok {
		return out, nil
	}
	return nil, errors.New("NotAuthorizedException: Access Token has expired")
}

func (f *fakeCognito) GlobalSignOut(ctx context.Context, in *cognitoidentityprovider.GlobalSignOutInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GlobalSignOutOutput, error) {
	f.signedOut = append(f.signedOut, *in.AccessToken)
	return &cognitoidentityprovider.GlobalSignOutOutput{}, nil
}

func TestCognitoProvider(t *testing.T) {
	client := &fakeCognito{users: map[string]*cognitoidentityprovider.GetUserOutput{
		"good": {
			Username: aws.String("google_123"),
			UserAttributes: []types.AttributeType{
				{Name: aws.String("sub"), Value: aws.String("7d1c-uuid")},
				{Name: aws.String("email"), Value: aws.String("alice@example.com")},
			},
		},
		"no_attrs": {Username: aws.String("plain_user")},
	}}
	p := NewCognitoProvider(client)

	ident, err := p.GetUser(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, &model.Identity{Id: "7d1c-uuid", Email: "alice@example.com"}, ident)

	ident, err = p.GetUser(context.Background(), "no_attrs")
	require.NoError(t, err)
	assert.Equal(t, "plain_user", ident.Id)

	_, err = p.GetUser(context.Background(), "expired")
	assert.True(t, errors.Is(err, ErrInvalidToken))
	_, err = p.GetUser(context.Background(), "")
	assert.True(t, errors.Is(err, ErrInvalidToken))

	require.NoError(t, p.SignOut(context.Background(), "good"))
	assert.Equal(t, []string{"good"}, client.signedOut)
}

func TestFakeProvider(t *testing.T) {
	p := NewFakeProvider()
	p.Add("token", &model.Identity{Id: "user_a"})

	ident, err := p.GetUser(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "user_a", ident.Id)

	require.NoError(t, p.SignOut(context.Background(), "token"))
	_, err = p.GetUser(context.Background(), "token")
	assert.Equal(t, ErrInvalidToken, err)
}

func TestOAuthConfig(t *testing.T) {
	cfg := NewOAuthConfig("https://arena.auth.ap-northeast-2.amazoncognito.com", "client", "secret", "https://logosarena.com/auth/callback")
	assert.Equal(t, "https://arena.auth.ap-northeast-2.amazoncognito.com/oauth2/token", cfg.Endpoint.TokenURL)

	u, err := url.Parse(cfg.AuthCodeURL("state_1"))
	require.NoError(t, err)
	assert.Equal(t, "/oauth2/authorize", u.Path)
	assert.Equal(t, "state_1", u.Query().Get("state"))
	assert.Equal(t, "client", u.Query().Get("client_id"))
	assert.Equal(t, "https://logosarena.com/auth/callback", u.Query().Get("redirect_uri"))
}
