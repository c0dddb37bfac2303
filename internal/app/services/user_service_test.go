package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
)

func TestSelectPackage(t *testing.T) {
	userRepo := newFakeUserRepo()
	packageRepo := newFakePackageRepo()
	users := NewUserService(userRepo, packageRepo, zerolog.Nop())

	user := &models.User{Email: "kid@example.com", Name: "Kid",
		Role: models.RoleStudent, SubscriptionStatus: models.SubscriptionPending, IsActive: true}
	require.NoError(t, userRepo.Create(context.Background(), user))

	pkg := &models.Package{Name: "Explorer", Price: "9.99", Duration: "monthly",
		PackageType: models.PackageIndividual, IsActive: true}
	require.NoError(t, packageRepo.Create(context.Background(), pkg))

	updated, err := users.SelectPackage(context.Background(), user.ID, pkg.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.PackageID)
	assert.Equal(t, pkg.ID, *updated.PackageID)
	assert.Equal(t, models.SubscriptionActive, updated.SubscriptionStatus)
	assert.NotNil(t, updated.SubscriptionStart)

	// Selecting another package overwrites the first choice.
	other := &models.Package{Name: "Builder", Price: "19.99", Duration: "monthly",
		PackageType: models.PackageIndividual, IsActive: true}
	require.NoError(t, packageRepo.Create(context.Background(), other))

	updated, err = users.SelectPackage(context.Background(), user.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, *updated.PackageID)
}

func TestSelectPackageErrors(t *testing.T) {
	userRepo := newFakeUserRepo()
	packageRepo := newFakePackageRepo()
	users := NewUserService(userRepo, packageRepo, zerolog.Nop())

	user := &models.User{Email: "kid@example.com", Name: "Kid",
		Role: models.RoleStudent, SubscriptionStatus: models.SubscriptionPending, IsActive: true}
	require.NoError(t, userRepo.Create(context.Background(), user))

	_, err := users.SelectPackage(context.Background(), user.ID, "package-404")
	assert.ErrorIs(t, err, apperrors.ErrPackageNotFound)

	inactive := &models.Package{Name: "Legacy", Price: "5.00", Duration: "monthly",
		PackageType: models.PackageIndividual, IsActive: false}
	require.NoError(t, packageRepo.Create(context.Background(), inactive))

	_, err = users.SelectPackage(context.Background(), user.ID, inactive.ID)
	assert.ErrorIs(t, err, apperrors.ErrPackageInactive)

	active := &models.Package{Name: "Explorer", Price: "9.99", Duration: "monthly",
		PackageType: models.PackageIndividual, IsActive: true}
	require.NoError(t, packageRepo.Create(context.Background(), active))

	_, err = users.SelectPackage(context.Background(), "user-404", active.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
