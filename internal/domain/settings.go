package domain

// VideoSettings — видео на главной странице.
type VideoSettings struct {
	HomePageVideoURL   string `json:"homePageVideoUrl"`
	HomePageVideoTitle string `json:"homePageVideoTitle"`
}

// AnalyticsSettings — идентификаторы счётчиков аналитики.
type AnalyticsSettings struct {
	GoogleAnalyticsID  string `json:"googleAnalyticsId"`
	GoogleTagManagerID string `json:"googleTagManagerId"`
}
