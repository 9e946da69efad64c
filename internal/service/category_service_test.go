package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func TestCategoryLifecycle(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "  Hardware ", " Physical equipment issues ")
	require.NoError(t, err)
	require.Equal(t, "Hardware", created.Name)
	require.Equal(t, "Physical equipment issues", created.Description)
	require.NotEmpty(t, created.ID)

	updated, err := svc.Update(ctx, created.ID, "Hardware & Peripherals", "")
	require.NoError(t, err)
	require.Equal(t, "Hardware & Peripherals", updated.Name)
	require.Empty(t, updated.Description)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCategoryCreateRequiresName(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())

	_, err := svc.Create(context.Background(), "   ", "description")
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestCategoryMissing(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())

	_, err := svc.Update(context.Background(), "missing", "name", "")
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	err = svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
