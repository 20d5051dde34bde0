package mailclient

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Client wraps the Gmail API for outcome notification delivery
type Client struct {
	service      *gmail.Service
	userID       string
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// Credentials holds the OAuth client credentials and refresh token used
// to send mail without an interactive flow.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// CredentialsFromEnv reads Gmail credentials from the environment.
// Returns ok=false if any variable is missing, which callers treat as
// "notifications not configured" rather than an error.
func CredentialsFromEnv() (Credentials, bool) {
	creds := Credentials{
		ClientID:     os.Getenv("GMAIL_CLIENT_ID"),
		ClientSecret: os.Getenv("GMAIL_CLIENT_SECRET"),
		RefreshToken: os.Getenv("GMAIL_REFRESH_TOKEN"),
	}
	if creds.ClientID == "" || creds.ClientSecret == "" || creds.RefreshToken == "" {
		return Credentials{}, false
	}
	return creds, true
}

// NewClient creates a Gmail client from stored credentials. userID is the
// Gmail user to send as; empty means the authenticated user ("me").
func NewClient(ctx context.Context, creds Credentials, userID string) (*Client, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}

	tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})

	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	if userID == "" {
		userID = "me"
	}

	return &Client{
		service: service,
		userID:  userID,
	}, nil
}
