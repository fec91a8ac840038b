package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/internal/repository/document"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsUC() *SettingsUseCase {
	return NewSettingsUC(
		document.NewStore[domain.VideoSettings]("settings:video", document.NewMemoryBackend(), logger.Nop{}),
		document.NewStore[domain.AnalyticsSettings]("settings:analytics", document.NewMemoryBackend(), logger.Nop{}),
		NewValidator(),
		logger.Nop{},
	)
}

func TestSettingsUseCase_Video(t *testing.T) {
	ctx := context.Background()
	uc := newSettingsUC()

	empty, err := uc.Video(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.VideoSettings{}, empty)

	saved, err := uc.SaveVideo(ctx, domain.VideoSettings{
		HomePageVideoURL:   " https://www.youtube.com/embed/abc ",
		HomePageVideoTitle: "Огляд",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/embed/abc", saved.HomePageVideoURL)

	got, err := uc.Video(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = uc.SaveVideo(ctx, domain.VideoSettings{HomePageVideoURL: "not a url"})
	require.ErrorIs(t, err, e.ErrValidation)
	assert.Equal(t, "homePageVideoUrl", e.FieldOf(err))
}

func TestSettingsUseCase_Analytics(t *testing.T) {
	ctx := context.Background()
	uc := newSettingsUC()

	saved, err := uc.SaveAnalytics(ctx, domain.AnalyticsSettings{GoogleAnalyticsID: "G-ABC123", GoogleTagManagerID: "GTM-XYZ"})
	require.NoError(t, err)

	got, err := uc.Analytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	cleared, err := uc.SaveAnalytics(ctx, domain.AnalyticsSettings{})
	require.NoError(t, err)
	assert.Empty(t, cleared.GoogleAnalyticsID)
}
