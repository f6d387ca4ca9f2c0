// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/constants"
	"github.com/av3hub/avhub/internal/platform/sec"
	"github.com/av3hub/avhub/internal/users/provision"
)

// spyCredentialRepository records every call so tests can prove the
// signup checks short-circuit before the credential store is touched.
type spyCredentialRepository struct {
	created     []*Credential
	byEmail     map[string]*Credential
	updatedHash map[string]string
}

func newSpyCredentialRepository() *spyCredentialRepository {
	return &spyCredentialRepository{
		byEmail:     make(map[string]*Credential),
		updatedHash: make(map[string]string),
	}
}

func (repo *spyCredentialRepository) Create(_ context.Context, credential *Credential) error {
	repo.created = append(repo.created, credential)
	repo.byEmail[credential.Email] = credential
	return nil
}

func (repo *spyCredentialRepository) FindByEmail(_ context.Context, email string) (*Credential, error) {
	if credential, ok := repo.byEmail[email]; ok {
		return credential, nil
	}
	return nil, apperr.NotFound("Credential")
}

func (repo *spyCredentialRepository) FindByID(_ context.Context, id string) (*Credential, error) {
	for _, credential := range repo.byEmail {
		if credential.ID == id {
			return credential, nil
		}
	}
	return nil, apperr.NotFound("Credential")
}

func (repo *spyCredentialRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	repo.updatedHash[id] = passwordHash
	for _, credential := range repo.byEmail {
		if credential.ID == id {
			credential.PasswordHash = passwordHash
		}
	}
	return nil
}

// fakeDirectory marks specific usernames and emails as taken.
type fakeDirectory struct {
	usernames map[string]bool
	emails    map[string]bool
}

func (directory *fakeDirectory) UsernameExists(_ context.Context, username string) (bool, error) {
	return directory.usernames[username], nil
}

func (directory *fakeDirectory) EmailExists(_ context.Context, email string) (bool, error) {
	return directory.emails[email], nil
}

type fakeAdminFlags struct {
	admins map[string]bool
}

func (flags *fakeAdminFlags) AdminFlag(_ context.Context, userID string) (bool, error) {
	return flags.admins[userID], nil
}

type fakeResetTokens struct {
	tokens map[string]string
}

func newFakeResetTokens() *fakeResetTokens {
	return &fakeResetTokens{tokens: make(map[string]string)}
}

func (repo *fakeResetTokens) Set(_ context.Context, token, userID string, _ time.Duration) error {
	repo.tokens[token] = userID
	return nil
}

func (repo *fakeResetTokens) Get(_ context.Context, token string) (string, error) {
	if userID, ok := repo.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.Unauthorized("Invalid or expired reset token")
}

func (repo *fakeResetTokens) Delete(_ context.Context, token string) error {
	delete(repo.tokens, token)
	return nil
}

type memoryQueue struct {
	jobs []provision.Job
}

func (queue *memoryQueue) Enqueue(_ context.Context, job provision.Job) error {
	queue.jobs = append(queue.jobs, job)
	return nil
}

func (queue *memoryQueue) Dequeue(_ context.Context) (*provision.Job, error) {
	if len(queue.jobs) == 0 {
		return nil, nil
	}
	job := queue.jobs[0]
	queue.jobs = queue.jobs[1:]
	return &job, nil
}

type staticTokens struct{}

func (staticTokens) GenerateAccessToken(userID, username string, isAdmin bool, _ time.Duration) (string, error) {
	return fmt.Sprintf("token:%s:%s:%t", userID, username, isAdmin), nil
}

type signupFixture struct {
	service     *Service
	credentials *spyCredentialRepository
	directory   *fakeDirectory
	adminFlags  *fakeAdminFlags
	resetTokens *fakeResetTokens
	queue       *memoryQueue
}

func newSignupFixture() *signupFixture {
	fixture := &signupFixture{
		credentials: newSpyCredentialRepository(),
		directory: &fakeDirectory{
			usernames: make(map[string]bool),
			emails:    make(map[string]bool),
		},
		adminFlags:  &fakeAdminFlags{admins: make(map[string]bool)},
		resetTokens: newFakeResetTokens(),
		queue:       &memoryQueue{},
	}
	fixture.service = NewService(
		fixture.credentials,
		fixture.directory,
		fixture.adminFlags,
		fixture.resetTokens,
		fixture.queue,
		staticTokens{},
	)
	return fixture
}

/*
TestService_SignUp_ShortCircuit proves the validation order: a taken
username fails before the email check, a taken email fails before the
reserved-name check, and in every failure the credential store is never
called and no provisioning job is queued.
*/
func TestService_SignUp_ShortCircuit(t *testing.T) {
	tests := []struct {
		name        string
		input       SignUpInput
		taken       func(directory *fakeDirectory)
		wantCode    string
		wantMessage string
	}{
		{
			name:  "taken username wins even when email is also taken",
			input: SignUpInput{Email: "dup@example.com", Password: "hunter22", Username: "DemoUser"},
			taken: func(directory *fakeDirectory) {
				directory.usernames["DemoUser"] = true
				directory.emails["dup@example.com"] = true
			},
			wantCode:    "CONFLICT",
			wantMessage: "Username already taken. Please choose a different username.",
		},
		{
			name:  "taken email",
			input: SignUpInput{Email: "dup@example.com", Password: "hunter22", Username: "NewUser"},
			taken: func(directory *fakeDirectory) {
				directory.emails["dup@example.com"] = true
			},
			wantCode:    "CONFLICT",
			wantMessage: "Email already registered. Please use a different email or try signing in.",
		},
		{
			name:        "reserved username with the wrong email, both free",
			input:       SignUpInput{Email: "impostor@example.com", Password: "hunter22", Username: constants.OwnerUsername},
			taken:       func(directory *fakeDirectory) {},
			wantCode:    "FORBIDDEN",
			wantMessage: fmt.Sprintf("The username %s is reserved for the owner and must use the email %s", constants.OwnerUsername, constants.OwnerEmail),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fixture := newSignupFixture()
			tc.taken(fixture.directory)

			credential, err := fixture.service.SignUp(context.Background(), tc.input)

			require.Error(t, err)
			assert.Nil(t, credential)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tc.wantCode, appError.Code)
			assert.Equal(t, tc.wantMessage, appError.Message)
			assert.Empty(t, fixture.credentials.created, "credential store must not be touched")
			assert.Empty(t, fixture.queue.jobs, "no provisioning job must be queued")
		})
	}
}

/*
TestService_SignUp_CreatesCredentialAndQueuesProfile covers the happy
path: the stored credential carries a bcrypt hash rather than the plain
password, and exactly one provisioning job referencing it is queued.
*/
func TestService_SignUp_CreatesCredentialAndQueuesProfile(t *testing.T) {
	fixture := newSignupFixture()

	credential, err := fixture.service.SignUp(context.Background(), SignUpInput{
		Email:    "newbie@example.com",
		Password: "hunter22",
		Username: "Newbie",
	})

	require.NoError(t, err)
	require.NotNil(t, credential)
	assert.NotEmpty(t, credential.ID)
	assert.NotEqual(t, "hunter22", credential.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("hunter22", credential.PasswordHash))

	require.Len(t, fixture.credentials.created, 1)
	require.Len(t, fixture.queue.jobs, 1)
	job := fixture.queue.jobs[0]
	assert.Equal(t, credential.ID, job.UserID)
	assert.Equal(t, "Newbie", job.Username)
	assert.Equal(t, "newbie@example.com", job.Email)
}

// TestService_SignUp_OwnerWithOwnerEmail: the reserved username is
// allowed when bound to the owner's email.
func TestService_SignUp_OwnerWithOwnerEmail(t *testing.T) {
	fixture := newSignupFixture()

	credential, err := fixture.service.SignUp(context.Background(), SignUpInput{
		Email:    constants.OwnerEmail,
		Password: "hunter22",
		Username: constants.OwnerUsername,
	})

	require.NoError(t, err)
	assert.Equal(t, constants.OwnerUsername, credential.Username)
}

/*
TestService_SignIn_EnumerationSafe asserts that an unknown email and a
wrong password produce the exact same error, and that a valid login
embeds the admin flag in the token.
*/
func TestService_SignIn_EnumerationSafe(t *testing.T) {
	fixture := newSignupFixture()
	_, err := fixture.service.SignUp(context.Background(), SignUpInput{
		Email:    "member@example.com",
		Password: "hunter22",
		Username: "Member",
	})
	require.NoError(t, err)

	_, unknownErr := fixture.service.SignIn(context.Background(), SignInInput{
		Email:    "ghost@example.com",
		Password: "hunter22",
	})
	_, wrongErr := fixture.service.SignIn(context.Background(), SignInInput{
		Email:    "member@example.com",
		Password: "wrong",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Equal(t, "Invalid login credentials", unknownErr.Error())
}

func TestService_SignIn_Success(t *testing.T) {
	fixture := newSignupFixture()
	credential, err := fixture.service.SignUp(context.Background(), SignUpInput{
		Email:    "member@example.com",
		Password: "hunter22",
		Username: "Member",
	})
	require.NoError(t, err)
	fixture.adminFlags.admins[credential.ID] = true

	session, err := fixture.service.SignIn(context.Background(), SignInInput{
		Email:    "member@example.com",
		Password: "hunter22",
	})

	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("token:%s:Member:true", credential.ID), session.AccessToken)
	assert.Equal(t, credential.ID, session.User.ID)
	assert.WithinDuration(t, time.Now().Add(AccessTokenTTL), session.ExpiresAt, 5*time.Second)
}

/*
TestService_PasswordReset exercises the full recovery round trip and the
anti-enumeration behavior for unknown emails.
*/
func TestService_PasswordReset(t *testing.T) {
	fixture := newSignupFixture()
	credential, err := fixture.service.SignUp(context.Background(), SignUpInput{
		Email:    "member@example.com",
		Password: "oldpass",
		Username: "Member",
	})
	require.NoError(t, err)

	t.Run("unknown email reports success without a token", func(t *testing.T) {
		token, err := fixture.service.RequestPasswordReset(context.Background(), "ghost@example.com")
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("round trip", func(t *testing.T) {
		token, err := fixture.service.RequestPasswordReset(context.Background(), "member@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		require.NoError(t, fixture.service.ResetPassword(context.Background(), token, "newpass"))

		_, err = fixture.service.SignIn(context.Background(), SignInInput{Email: "member@example.com", Password: "oldpass"})
		require.Error(t, err)
		session, err := fixture.service.SignIn(context.Background(), SignInInput{Email: "member@example.com", Password: "newpass"})
		require.NoError(t, err)
		assert.Equal(t, credential.ID, session.User.ID)
	})

	t.Run("token is single use", func(t *testing.T) {
		token, err := fixture.service.RequestPasswordReset(context.Background(), "member@example.com")
		require.NoError(t, err)
		require.NoError(t, fixture.service.ResetPassword(context.Background(), token, "anotherpass"))

		err = fixture.service.ResetPassword(context.Background(), token, "thirdpass")
		require.Error(t, err)
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "UNAUTHORIZED", appError.Code)
	})
}

/*
TestGuestService asserts the guest-mode stub: every operation is
rejected with its own message, except sign-out which always succeeds.
*/
func TestGuestService(t *testing.T) {
	service := NewGuestService()

	_, err := service.SignUp(context.Background(), SignUpInput{Email: "a@b.c", Password: "x", Username: "X"})
	require.Error(t, err)
	assert.Equal(t, "Authentication is not available in guest mode. Please contact the administrator.", err.Error())
	assert.True(t, apperr.IsGuestMode(err))

	_, err = service.SignIn(context.Background(), SignInInput{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, "Authentication is not available in guest mode.", err.Error())

	_, err = service.RequestPasswordReset(context.Background(), "a@b.c")
	require.Error(t, err)
	assert.Equal(t, "Password reset is not available in guest mode.", err.Error())

	assert.NoError(t, service.SignOut(context.Background()))
}
