package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/mocks"
	"github.com/pangpangeats/pangpangeats-api/internal/service/auth"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(userStore *mocks.MockUserStore) *UserServiceImpl {
	return NewUserService(userStore, &mocks.MockPasswordVerifier{}, auth.NewDefaultPasswordPolicy(), nil, nil)
}

func TestRegister(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	svc := newUserService(userStore)

	user, err := svc.Register(context.Background(), "01012345678", "고객", "thePas123Q")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleClient, user.Role)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsVerified)
	assert.Equal(t, "hashed:thePas123Q", user.HashedPassword)
}

func TestRegisterDuplicatePhoneNumber(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	svc := newUserService(userStore)

	_, err := svc.Register(context.Background(), "01012345678", "먼저", "thePas123Q")
	require.NoError(t, err)

	// Second registration with the same phone number fails; the first
	// account is untouched.
	_, err = svc.Register(context.Background(), "01012345678", "나중", "otherPw12")
	assert.ErrorIs(t, err, store.ErrPhoneNumberExists)
	assert.Equal(t, "먼저", userStore.Users["01012345678"].Name)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"too short", "abc123"},
		{"entirely numeric", "123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := mocks.NewMockUserStore()
			svc := newUserService(userStore)

			_, err := svc.Register(context.Background(), "01012345678", "고객", tt.password)
			assert.ErrorIs(t, err, auth.ErrWeakPassword)
			assert.Empty(t, userStore.Users)
		})
	}
}

func TestRegisterRejectsBadPhoneNumber(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	svc := newUserService(userStore)

	_, err := svc.Register(context.Background(), "12345678", "고객", "thePas123Q")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateSuperuser(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	svc := newUserService(userStore)

	user, err := svc.CreateSuperuser(context.Background(), "01000000000", "관리자", "thePas123Q")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleEtc, user.Role)
	assert.True(t, user.IsAdmin)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsVerified)
}

func TestUpdateProfileOnlyName(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	svc := newUserService(userStore)

	created, err := svc.Register(context.Background(), "01012345678", "옛이름", "thePas123Q")
	require.NoError(t, err)

	newName := "새이름"
	updated, err := svc.UpdateProfile(context.Background(), created.ID, &newName)
	require.NoError(t, err)

	assert.Equal(t, "새이름", updated.Name)
	assert.Equal(t, "01012345678", updated.PhoneNumber)

	// A nil name leaves the profile untouched.
	same, err := svc.UpdateProfile(context.Background(), created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "새이름", same.Name)
}

func TestUpdateProfileRejectsLongName(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	svc := newUserService(userStore)

	created, err := svc.Register(context.Background(), "01012345678", "이름", "thePas123Q")
	require.NoError(t, err)

	tooLong := "12345678901"
	_, err = svc.UpdateProfile(context.Background(), created.ID, &tooLong)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteAccount(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	svc := newUserService(userStore)

	created, err := svc.Register(context.Background(), "01012345678", "고객", "thePas123Q")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(context.Background(), created.ID))
	assert.Empty(t, userStore.Users)
}

func TestDeleteAccountRefusedWhileDependentsExist(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	svc := newUserService(userStore)

	created, err := svc.Register(context.Background(), "01012345678", "고객", "thePas123Q")
	require.NoError(t, err)

	userStore.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
		return store.ErrDeleteProtected
	}

	err = svc.DeleteAccount(context.Background(), created.ID)
	assert.ErrorIs(t, err, store.ErrDeleteProtected)
	assert.Contains(t, userStore.Users, "01012345678")
}

func TestDeleteAccountUnknownUser(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	svc := newUserService(userStore)

	err := svc.DeleteAccount(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestSetPasswordReplacesCredential(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	svc := newUserService(userStore)

	created, err := svc.Register(context.Background(), "01012345678", "고객", "thePas123Q")
	require.NoError(t, err)

	require.NoError(t, svc.SetPassword(context.Background(), created.ID, "newSecret9x"))

	stored := userStore.Users["01012345678"]
	assert.Equal(t, "hashed:newSecret9x", stored.HashedPassword)
	assert.NotEqual(t, "hashed:thePas123Q", stored.HashedPassword)
}

func TestSetPasswordRejectsWeakPassword(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	svc := newUserService(userStore)

	created, err := svc.Register(context.Background(), "01012345678", "고객", "thePas123Q")
	require.NoError(t, err)

	err = svc.SetPassword(context.Background(), created.ID, "1234")
	assert.ErrorIs(t, err, auth.ErrWeakPassword)

	// The old credential survives.
	assert.Equal(t, "hashed:thePas123Q", userStore.Users["01012345678"].HashedPassword)
}
