package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
)

// SettingsUseCase хранит настройки витрины: видео на главной и счётчики аналитики.
type SettingsUseCase struct {
	video     VideoSettingsRepository
	analytics AnalyticsSettingsRepository
	validator *Validator
	logger    logger.Logger
}

func NewSettingsUC(
	video VideoSettingsRepository,
	analytics AnalyticsSettingsRepository,
	validator *Validator,
	logger logger.Logger,
) *SettingsUseCase {
	return &SettingsUseCase{
		video:     video,
		analytics: analytics,
		validator: validator,
		logger:    logger,
	}
}

func (s *SettingsUseCase) Video(ctx context.Context) (domain.VideoSettings, error) {
	settings, err := s.video.Get(ctx)
	if err != nil {
		return domain.VideoSettings{}, e.Wrap("SettingsUseCase.Video", err)
	}

	return settings, nil
}

func (s *SettingsUseCase) SaveVideo(ctx context.Context, in domain.VideoSettings) (domain.VideoSettings, error) {
	const op = "SettingsUseCase.SaveVideo"

	in.HomePageVideoURL = strings.TrimSpace(in.HomePageVideoURL)
	in.HomePageVideoTitle = strings.TrimSpace(in.HomePageVideoTitle)

	if err := s.validator.Var("homePageVideoUrl", in.HomePageVideoURL, "omitempty,url"); err != nil {
		return domain.VideoSettings{}, e.Wrap(op, err)
	}

	saved, err := s.video.Mutate(ctx, func(v *domain.VideoSettings) error {
		*v = in
		return nil
	})
	if err != nil {
		return domain.VideoSettings{}, e.Wrap(op, err)
	}

	s.logger.Infof("video settings updated")
	return saved, nil
}

func (s *SettingsUseCase) Analytics(ctx context.Context) (domain.AnalyticsSettings, error) {
	settings, err := s.analytics.Get(ctx)
	if err != nil {
		return domain.AnalyticsSettings{}, e.Wrap("SettingsUseCase.Analytics", err)
	}

	return settings, nil
}

func (s *SettingsUseCase) SaveAnalytics(ctx context.Context, in domain.AnalyticsSettings) (domain.AnalyticsSettings, error) {
	const op = "SettingsUseCase.SaveAnalytics"

	in.GoogleAnalyticsID = strings.TrimSpace(in.GoogleAnalyticsID)
	in.GoogleTagManagerID = strings.TrimSpace(in.GoogleTagManagerID)

	if err := s.validator.Var("googleAnalyticsId", in.GoogleAnalyticsID, "omitempty,max=32,printascii"); err != nil {
		return domain.AnalyticsSettings{}, e.Wrap(op, err)
	}
	if err := s.validator.Var("googleTagManagerId", in.GoogleTagManagerID, "omitempty,max=32,printascii"); err != nil {
		return domain.AnalyticsSettings{}, e.Wrap(op, err)
	}

	saved, err := s.analytics.Mutate(ctx, func(a *domain.AnalyticsSettings) error {
		*a = in
		return nil
	})
	if err != nil {
		return domain.AnalyticsSettings{}, e.Wrap(op, err)
	}

	s.logger.Infof("analytics settings updated")
	return saved, nil
}
